package payments

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPlan      = errors.New("unknown payment plan")
	ErrUnknownMode      = errors.New("unknown payment mode")
	ErrInstallmentIndex = errors.New("installment index out of range")

	// ErrAlreadyPaid protects the ledger: a paid installment is never rewritten.
	ErrAlreadyPaid = errors.New("installment is already paid")

	ErrFullyPaid = errors.New("every installment is already paid")

	// ErrPercentageSum is wrapped by the ValidationError returned from Recalculate.
	ErrPercentageSum = errors.New("installment percentages must add up to 100")

	// ErrRedistributionUndefined is returned when the total changes while more
	// than one installment is still unpaid. No split rule exists for that
	// case; it needs a product decision before anything is automated.
	ErrRedistributionUndefined = errors.New("total changed with several unpaid installments: no redistribution rule defined")

	ErrNegativePercentage = errors.New("installment percentage cannot be negative")

	// ErrPercentagePrecision rejects percentages finer than the stored scale.
	ErrPercentagePrecision = errors.New("installment percentage has more than 4 decimals")
)

// ValidationError is reported back to the user instead of being applied.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
