package code

import (
	"github.com/moundir-nedjm/ponpro-backend/internal/pkg/validator"
)

// UpsertCodeRequest creates or replaces a catalog entry.
type UpsertCodeRequest struct {
	Symbol               string        `json:"symbol"`
	Description          string        `json:"description"`
	ColorHint            string        `json:"color_hint"`
	Category             Category      `json:"category"`
	PaymentImpact        PaymentImpact `json:"payment_impact"`
	DefaultPremiumAmount float64       `json:"default_premium_amount"`
	IsInfluencer         bool          `json:"is_influencer"`
}

func (r UpsertCodeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Symbol) {
		errs = append(errs, validator.ValidationError{Field: "symbol", Message: "symbol is required"})
	} else if !validator.IsValidSymbol(r.Symbol) {
		errs = append(errs, validator.ValidationError{Field: "symbol", Message: "symbol must be 1-8 uppercase letters, digits or /+-"})
	}
	if r.Symbol == UnknownSymbol {
		errs = append(errs, validator.ValidationError{Field: "symbol", Message: "symbol is reserved"})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{Field: "description", Message: "description is required"})
	}
	if !IsValidCategory(r.Category) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "unknown category"})
	}
	if !IsValidPaymentImpact(r.PaymentImpact) {
		errs = append(errs, validator.ValidationError{Field: "payment_impact", Message: "unknown payment impact"})
	}
	if r.DefaultPremiumAmount < 0 {
		errs = append(errs, validator.ValidationError{Field: "default_premium_amount", Message: "must not be negative"})
	}
	if r.DefaultPremiumAmount > 0 && r.PaymentImpact != PaymentPremium {
		errs = append(errs, validator.ValidationError{Field: "default_premium_amount", Message: "only premium codes carry a default premium amount"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
