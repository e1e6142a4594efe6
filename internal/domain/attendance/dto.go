package attendance

import (
	"time"

	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/validator"
)

// CheckEventRequest records a raw check-in or check-out event.
type CheckEventRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"` // "YYYY-MM-DD"
	Time       string `json:"time"` // "HH:MM" or "HH:MM:SS"
}

func (r CheckEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if _, ok := validator.IsValidClock(r.Time); !ok {
		errs = append(errs, validator.ValidationError{Field: "time", Message: "time must be HH:MM or HH:MM:SS"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Timestamp combines the date and clock fields into one UTC instant.
// Validate must have succeeded first.
func (r CheckEventRequest) Timestamp() time.Time {
	date, _ := validator.IsValidDate(r.Date)
	clock, _ := validator.IsValidClock(r.Time)
	return date.Add(clock)
}

// AssignCodeRequest assigns a catalog code to a cell. EditorID is
// filled from the caller's claims, never from the request body.
type AssignCodeRequest struct {
	EmployeeID    string   `json:"employee_id"`
	Date          string   `json:"date"`
	Symbol        string   `json:"symbol"`
	PremiumAmount *float64 `json:"premium_amount,omitempty"`
	EditorID      string   `json:"-"`
}

func (r AssignCodeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"})
	}
	if validator.IsEmpty(r.Symbol) {
		errs = append(errs, validator.ValidationError{Field: "symbol", Message: "symbol is required"})
	} else if !validator.IsValidSymbol(r.Symbol) {
		errs = append(errs, validator.ValidationError{Field: "symbol", Message: "symbol must be 1-8 uppercase letters, digits or /+-"})
	}
	if r.PremiumAmount != nil && *r.PremiumAmount < 0 {
		errs = append(errs, validator.ValidationError{Field: "premium_amount", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CellResponse is the wire shape of a cell after a mutation.
type CellResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	Date           string   `json:"date"`
	CheckIn        *string  `json:"check_in,omitempty"`
	CheckOut       *string  `json:"check_out,omitempty"`
	AssignedSymbol *string  `json:"assigned_symbol,omitempty"`
	PremiumAmount  *float64 `json:"premium_amount,omitempty"`
	LastModified   string   `json:"last_modified"`
	ModifiedBy     string   `json:"modified_by"`
}
