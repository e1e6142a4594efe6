package matrix

import (
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/calendar"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/code"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/employee"
)

// Source identifies which rule produced a resolved cell, in precedence
// order: a manual assignment always beats derivation from raw events,
// which beats the calendar defaults.
type Source string

const (
	SourceManual  Source = "manual"
	SourceDerived Source = "derived_from_events"
	SourceHoliday Source = "holiday_default"
	SourceWeekend Source = "weekend_default"
	SourceNone    Source = "none"
)

// TotalUnresolved is the row-totals bucket for cells with no data.
// Kept distinct from "absent": no data is not an absence.
const TotalUnresolved = "unresolved"

// ResolvedCell is the single effective code for one (employee, date)
// pair. A view, recomputed on demand; a pure function of the calendar
// day, the catalog and the stored cell.
type ResolvedCell struct {
	EmployeeID   string        `json:"employee_id"`
	Date         string        `json:"date"`
	Symbol       string        `json:"symbol"` // "" when unresolved
	Category     code.Category `json:"category,omitempty"`
	Source       Source        `json:"source"`
	Premium      float64       `json:"premium,omitempty"`
	Unknown      bool          `json:"unknown,omitempty"` // assigned symbol missing from catalog
	LastModified time.Time     `json:"last_modified"`
}

// TotalsBucket names the row-totals bucket the cell counts toward.
func (c ResolvedCell) TotalsBucket() string {
	if c.Source == SourceNone {
		return TotalUnresolved
	}
	return string(c.Category)
}

// RowTotals counts a row's days per category bucket. The buckets
// partition the month: summing every bucket yields the day count.
type RowTotals map[string]int

// ColumnTotals counts codes per day column, keyed by symbol.
type ColumnTotals []map[string]int

// EmployeeRow is one matrix row.
type EmployeeRow struct {
	Employee employee.Employee `json:"employee"`
	Cells    []ResolvedCell    `json:"cells"`
	Totals   RowTotals         `json:"totals"`
}

// MonthlyMatrix is the employee x day grid for one department and
// month. Its field names and per-day ordering are a contract consumed
// by the CSV/print exporters; keep them stable.
type MonthlyMatrix struct {
	DepartmentID string         `json:"department_id"`
	YearMonth    string         `json:"year_month"`
	Days         []calendar.Day `json:"days"`
	Rows         []EmployeeRow  `json:"rows"`
	ColumnTotals ColumnTotals   `json:"column_totals"`
	LastUpdated  time.Time      `json:"last_updated"`
	Incomplete   bool           `json:"incomplete"`
}

// CellChange is the event published after a cell mutation.
type CellChange struct {
	EmployeeID   string       `json:"employee_id"`
	Date         string       `json:"date"`
	Cell         ResolvedCell `json:"cell"`
	LastModified time.Time    `json:"last_modified"`
}

// NewerThan reports whether this change supersedes a previously seen
// timestamp. Clients and caches apply a change only when it is newer,
// so a late-arriving stale event can never overwrite fresher state.
func (c CellChange) NewerThan(lastSeen time.Time) bool {
	return c.LastModified.After(lastSeen)
}
