package matrix

import (
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/domain/attendance"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/calendar"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/code"
	"github.com/moundir-nedjm/ponpro-backend/internal/domain/matrix"
)

// Rules holds the organization-level resolution parameters.
type Rules struct {
	WorkdayStart  time.Duration // offset from midnight, local to the organization
	Grace         time.Duration
	PresentSymbol string
	LateSymbol    string
	HolidaySymbol string
	WeekendSymbol string
}

// CodeLookup resolves a symbol against a catalog snapshot.
type CodeLookup func(symbol string) (code.AttendanceCode, bool)

// Resolve computes the single effective code for one cell. Pure: the
// result depends only on the arguments, so recomputing one cell is
// always enough to invalidate it.
//
// Precedence, first match wins:
//  1. manually assigned code
//  2. derived from the raw check-in (present, or late past start+grace)
//  3. holiday default
//  4. weekend default
//  5. none (no data; rendered blank, never conflated with absent)
func Resolve(employeeID string, day calendar.Day, cell *attendance.Cell, lookup CodeLookup, rules Rules) matrix.ResolvedCell {
	resolved := matrix.ResolvedCell{
		EmployeeID: employeeID,
		Date:       calendar.DateKey(day.Date),
		Source:     matrix.SourceNone,
	}
	if cell != nil {
		resolved.LastModified = cell.LastModified
	}

	if cell != nil && cell.HasManualCode() {
		resolved.Source = matrix.SourceManual
		c, ok := lookup(*cell.AssignedSymbol)
		if !ok {
			// The symbol was deleted from the catalog after it was
			// assigned. Degrade to the unknown marker instead of
			// failing the whole month.
			c = code.UnknownCode()
			resolved.Unknown = true
		}
		resolved.Symbol = c.Symbol
		resolved.Category = c.Category
		if c.PaymentImpact == code.PaymentPremium {
			if cell.PremiumAmount != nil {
				resolved.Premium = *cell.PremiumAmount
			} else {
				resolved.Premium = c.DefaultPremiumAmount
			}
		}
		return resolved
	}

	if cell != nil && cell.CheckIn != nil {
		resolved.Source = matrix.SourceDerived
		symbol := rules.PresentSymbol
		if isLate(day, *cell.CheckIn, rules) {
			symbol = rules.LateSymbol
		}
		resolved.Symbol = symbol
		resolved.Category = categoryOrDefault(lookup, symbol, code.CategoryPresent)
		return resolved
	}

	if day.IsHoliday {
		resolved.Source = matrix.SourceHoliday
		resolved.Symbol = rules.HolidaySymbol
		resolved.Category = categoryOrDefault(lookup, rules.HolidaySymbol, code.CategoryHoliday)
		return resolved
	}

	if day.IsWeekend {
		resolved.Source = matrix.SourceWeekend
		resolved.Symbol = rules.WeekendSymbol
		resolved.Category = categoryOrDefault(lookup, rules.WeekendSymbol, code.CategoryWeekend)
		return resolved
	}

	return resolved
}

// isLate reports whether a check-in is past the workday start plus the
// grace period for the cell's day.
func isLate(day calendar.Day, checkIn time.Time, rules Rules) bool {
	threshold := day.Date.Add(rules.WorkdayStart + rules.Grace)
	return checkIn.After(threshold)
}

func categoryOrDefault(lookup CodeLookup, symbol string, fallback code.Category) code.Category {
	if c, ok := lookup(symbol); ok {
		return c.Category
	}
	return fallback
}
