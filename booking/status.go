// booking/status.go
package booking

import (
	"errors"
	"fmt"
)

// Status is the single business state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCanceled  Status = "canceled"
	StatusFullyPaid Status = "fully_paid"
)

var (
	ErrInvalidTransition = errors.New("order status transition not allowed")
	ErrUnknownStatus     = errors.New("unknown order status")

	// ErrOrderLocked blocks monetary edits on a fully paid order.
	ErrOrderLocked = errors.New("order is fully paid and can no longer be modified; create a new order for additional charges")

	ErrOrderCanceled = errors.New("order is canceled")
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCanceled, StatusFullyPaid},
	StatusConfirmed: {StatusCanceled, StatusFullyPaid},
	StatusCanceled:  {StatusConfirmed},
	StatusFullyPaid: nil,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := transitions[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition returns next when the move is allowed.
func (s Status) Transition(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return s, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
	}
	return next, nil
}

// Invoiced reports whether the order counts as billed in statistics.
func (s Status) Invoiced() bool {
	return s == StatusConfirmed || s == StatusFullyPaid
}

// EnsureEditable refuses monetary edits once every installment is paid.
func (s Status) EnsureEditable() error {
	if s == StatusFullyPaid {
		return ErrOrderLocked
	}
	return nil
}

// EnsurePayable refuses payments on canceled or completed orders.
func (s Status) EnsurePayable() error {
	switch s {
	case StatusCanceled:
		return ErrOrderCanceled
	case StatusFullyPaid:
		return ErrOrderLocked
	}
	return nil
}
