package dto

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// AmountScaleTag is the binding tag enforcing monetary precision on inbound
// amounts: non-negative, at most three fractional digits. Structurally
// malformed amounts are rejected here so the transfer engine only ever sees
// valid ones.
const AmountScaleTag = "amountscale"

// maxFractionalDigits matches the NUMERIC(19,3) scale of the stores.
const maxFractionalDigits = 3

// RegisterAmountScale registers the amountscale validation with the given
// validator engine. Must be called once at startup before any binding.
func RegisterAmountScale(v *validator.Validate) error {
	return v.RegisterValidation(AmountScaleTag, validateAmountScale)
}

func validateAmountScale(fl validator.FieldLevel) bool {
	amount, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}
	if amount.IsNegative() {
		return false
	}
	// Exponent is negative for fractional digits: 15.500 has exponent -3.
	return amount.Exponent() >= -maxFractionalDigits
}
