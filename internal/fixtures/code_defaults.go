// Package fixtures holds seed data loaded into empty installations.
package fixtures

import "github.com/moundir-nedjm/ponpro-backend/internal/domain/code"

// DefaultCodes is the catalog an empty installation starts with. The
// symbols match the legend printed on the paper timesheets the matrix
// replaces, so existing HR staff can read the grid without retraining.
func DefaultCodes() []code.AttendanceCode {
	return []code.AttendanceCode{
		{
			Symbol:        "P",
			Description:   "Present",
			ColorHint:     "#2e7d32",
			Category:      code.CategoryPresent,
			PaymentImpact: code.PaymentFull,
		},
		{
			Symbol:        "RT",
			Description:   "Late arrival",
			ColorHint:     "#f9a825",
			Category:      code.CategoryPresent,
			PaymentImpact: code.PaymentFull,
		},
		{
			Symbol:        "A",
			Description:   "Unjustified absence",
			ColorHint:     "#c62828",
			Category:      code.CategoryAbsent,
			PaymentImpact: code.PaymentNone,
		},
		{
			Symbol:        "CA",
			Description:   "Annual leave",
			ColorHint:     "#1565c0",
			Category:      code.CategoryLeave,
			PaymentImpact: code.PaymentFull,
		},
		{
			Symbol:        "CM",
			Description:   "Sick leave",
			ColorHint:     "#6a1b9a",
			Category:      code.CategoryLeave,
			PaymentImpact: code.PaymentPartial,
		},
		{
			Symbol:        "JF",
			Description:   "Public holiday",
			ColorHint:     "#00838f",
			Category:      code.CategoryHoliday,
			PaymentImpact: code.PaymentFull,
		},
		{
			Symbol:        "W",
			Description:   "Weekend",
			ColorHint:     "#9e9e9e",
			Category:      code.CategoryWeekend,
			PaymentImpact: code.PaymentNone,
		},
		{
			Symbol:               "PP",
			Description:          "Premium presence",
			ColorHint:            "#ef6c00",
			Category:             code.CategoryPresent,
			PaymentImpact:        code.PaymentPremium,
			DefaultPremiumAmount: 1000,
			IsInfluencer:         true,
		},
		{
			Symbol:        "MS",
			Description:   "Mission",
			ColorHint:     "#4527a0",
			Category:      code.CategoryPresent,
			PaymentImpact: code.PaymentFull,
		},
	}
}
