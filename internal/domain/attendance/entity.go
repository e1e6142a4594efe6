package attendance

import (
	"time"
)

// Cell is the unit of truth for one (employee, calendar date) pair:
// raw check-in/out events and/or a manually assigned code. At most one
// live cell exists per pair; upserts replace, never append. Date is a
// date-only value at UTC midnight.
type Cell struct {
	ID             string
	EmployeeID     string
	Date           time.Time
	CheckIn        *time.Time
	CheckOut       *time.Time
	AssignedSymbol *string
	PremiumAmount  *float64
	LastModified   time.Time
	ModifiedBy     string
}

// HasManualCode reports whether an editor assigned a code to the cell.
func (c Cell) HasManualCode() bool {
	return c.AssignedSymbol != nil && *c.AssignedSymbol != ""
}

// Clone returns a deep copy so a snapshot handed to readers can never
// alias a cell being mutated.
func (c Cell) Clone() Cell {
	out := c
	if c.CheckIn != nil {
		v := *c.CheckIn
		out.CheckIn = &v
	}
	if c.CheckOut != nil {
		v := *c.CheckOut
		out.CheckOut = &v
	}
	if c.AssignedSymbol != nil {
		v := *c.AssignedSymbol
		out.AssignedSymbol = &v
	}
	if c.PremiumAmount != nil {
		v := *c.PremiumAmount
		out.PremiumAmount = &v
	}
	return out
}
