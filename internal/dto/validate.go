package dto

import (
	"sync"

	"github.com/SscSPs/vas_funding_ledger/internal/apperrors"
	"github.com/SscSPs/vas_funding_ledger/internal/core/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// Validator returns the shared validator, reading the same `binding` tags gin uses
// so commands arriving from the CLI are held to the HTTP rules.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.SetTagName("binding")
	})
	return validate
}

// amountCommand is implemented by commands carrying a funding amount.
type amountCommand interface {
	fundingAmount() decimal.Decimal
}

// Validate checks a command struct and wraps failures as validation errors.
// Funding amounts are also held to the ledger's sign, scale and range rules.
func Validate(cmd any) error {
	if err := Validator().Struct(cmd); err != nil {
		return apperrors.NewValidationError("invalid request", err)
	}
	if c, ok := cmd.(amountCommand); ok {
		return domain.ValidateAmount(c.fundingAmount())
	}
	return nil
}
