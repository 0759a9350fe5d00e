package payments

import (
	"slices"
	"time"
)

// LedgerUpdate is the outcome of recording a payment.
type LedgerUpdate struct {
	Installments  []Installment
	FullyPaid     bool
	FullyPaidDate *time.Time
}

// MarkPaid records installment index as paid with mode on date. now stamps
// FullyPaidDate when this payment completes the set.
func MarkPaid(installments []Installment, index int, mode Mode, date, now time.Time) (LedgerUpdate, error) {
	if index < 0 || index >= len(installments) {
		return LedgerUpdate{}, ErrInstallmentIndex
	}
	if !mode.Valid() {
		return LedgerUpdate{}, ErrUnknownMode
	}
	if installments[index].IsPaid {
		return LedgerUpdate{}, ErrAlreadyPaid
	}

	out := slices.Clone(installments)
	paidOn := date
	paidWith := mode
	out[index].IsPaid = true
	out[index].PaymentDate = &paidOn
	out[index].PaymentMode = &paidWith

	update := LedgerUpdate{
		Installments: out,
		FullyPaid:    AllPaid(out),
	}
	if update.FullyPaid {
		stamp := now
		update.FullyPaidDate = &stamp
	}
	return update, nil
}
