package code

import "time"

// Category classifies what a code means for the row totals. Every
// resolved cell lands in exactly one category.
type Category string

const (
	CategoryPresent Category = "present"
	CategoryAbsent  Category = "absent"
	CategoryLeave   Category = "leave"
	CategoryHoliday Category = "holiday"
	CategoryWeekend Category = "weekend"
	CategoryOther   Category = "other"
)

// PaymentImpact describes how a code affects pay for the day.
type PaymentImpact string

const (
	PaymentFull    PaymentImpact = "full"
	PaymentPartial PaymentImpact = "partial"
	PaymentNone    PaymentImpact = "none"
	PaymentPremium PaymentImpact = "premium"
)

// AttendanceCode is one entry of the admin-editable code catalog.
// Symbol is the only stable key cells reference, so catalog edits
// never require cell rewrites.
type AttendanceCode struct {
	Symbol               string        `json:"symbol"`
	Description          string        `json:"description"`
	ColorHint            string        `json:"color_hint"`
	Category             Category      `json:"category"`
	PaymentImpact        PaymentImpact `json:"payment_impact"`
	DefaultPremiumAmount float64       `json:"default_premium_amount"`
	IsInfluencer         bool          `json:"is_influencer"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// UnknownSymbol is the synthetic marker used when a cell references a
// symbol no longer present in the catalog. One bad historical cell
// must never break rendering a whole month.
const UnknownSymbol = "?"

// UnknownCode returns the synthetic catalog entry for dangling symbols.
func UnknownCode() AttendanceCode {
	return AttendanceCode{
		Symbol:        UnknownSymbol,
		Description:   "Unknown code",
		ColorHint:     "#9e9e9e",
		Category:      CategoryOther,
		PaymentImpact: PaymentNone,
	}
}

var validCategories = []Category{
	CategoryPresent, CategoryAbsent, CategoryLeave,
	CategoryHoliday, CategoryWeekend, CategoryOther,
}

var validPaymentImpacts = []PaymentImpact{
	PaymentFull, PaymentPartial, PaymentNone, PaymentPremium,
}

func IsValidCategory(c Category) bool {
	for _, v := range validCategories {
		if v == c {
			return true
		}
	}
	return false
}

func IsValidPaymentImpact(p PaymentImpact) bool {
	for _, v := range validPaymentImpacts {
		if v == p {
			return true
		}
	}
	return false
}
