package services

import "errors"

var (
	ErrMissingSelection       = errors.New("missing required selection: catalog item, customer and date")
	ErrInstallmentsNotAllowed = errors.New("this catalog item cannot be paid in installments")

	// ErrPlanLocked is returned when the payment plan changes after a payment
	// was recorded.
	ErrPlanLocked = errors.New("payment plan cannot change once an installment is paid")

	ErrPercentageCount = errors.New("one percentage is required per installment")
	ErrTaskNotFound    = errors.New("task not found on this order")
	ErrInvalidReason   = errors.New("rejection reason not found")

	// ErrVersionRequired is returned when an edit does not carry the version
	// it was made against.
	ErrVersionRequired = errors.New("order version is required")
)
