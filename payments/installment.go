// payments/installment.go
package payments

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PercentageScale and ValueScale are the decimals kept by the
// installment columns.
const (
	PercentageScale = 4
	ValueScale      = 4
)

// Installment is one scheduled partial payment of an order.
type Installment struct {
	Number      int             `json:"paymentNumber"`
	Percentage  decimal.Decimal `json:"percentage"`
	Value       decimal.Decimal `json:"value"`
	IsPaid      bool            `json:"isPaid"`
	PaymentDate *time.Time      `json:"paymentDate"`
	PaymentMode *Mode           `json:"paymentMode"`
}

// PlanInstallments splits total according to plan. Every value is computed
// on its own from the total; rounding drift is not pushed onto the last
// installment.
func PlanInstallments(total decimal.Decimal, plan Plan) ([]Installment, error) {
	if !plan.Valid() {
		return nil, ErrUnknownPlan
	}

	percentages := plan.Percentages()
	installments := make([]Installment, len(percentages))
	for i, pct := range percentages {
		installments[i] = Installment{
			Number:     i + 1,
			Percentage: pct,
			Value:      valueOf(total, pct),
		}
	}
	return installments, nil
}

// SetPercentage overrides the percentage of one unpaid installment. The
// others are left alone; call Recalculate to check the split and refresh
// values.
func SetPercentage(installments []Installment, index int, pct decimal.Decimal) ([]Installment, error) {
	if index < 0 || index >= len(installments) {
		return nil, ErrInstallmentIndex
	}
	if installments[index].IsPaid {
		return nil, ErrAlreadyPaid
	}
	if pct.IsNegative() {
		return nil, ErrNegativePercentage
	}
	if !pct.Equal(pct.Round(PercentageScale)) {
		return nil, ErrPercentagePrecision
	}

	out := slices.Clone(installments)
	out[index].Percentage = pct
	return out, nil
}

// Recalculate checks that the percentages add up to exactly 100 and derives
// each unpaid installment's value. Paid installments keep the value they
// were paid with. Without any payment a value is its percentage of total;
// once something is paid the balance still due is shared between the
// unpaid installments by their percentages, the last one taking the
// rounding, so the values always add up to total. When the check fails the
// returned error is a *ValidationError and nothing is recomputed.
func Recalculate(installments []Installment, total decimal.Decimal) ([]Installment, error) {
	sum := SumPercentages(installments)
	if !sum.Equal(hundred) {
		return nil, &ValidationError{
			Field:   "percentages",
			Message: "percentages add up to " + sum.String() + ", expected 100",
			Err:     ErrPercentageSum,
		}
	}

	out := slices.Clone(installments)
	if !AnyPaid(out) {
		for i := range out {
			out[i].Value = valueOf(total, out[i].Percentage)
		}
		return out, nil
	}

	last := -1
	unpaidPct := decimal.Zero
	for i, inst := range out {
		if !inst.IsPaid {
			last = i
			unpaidPct = unpaidPct.Add(inst.Percentage)
		}
	}
	if last < 0 {
		return out, nil
	}

	balance := total.Sub(PaidValue(out))
	allocated := decimal.Zero
	for i := range out {
		if out[i].IsPaid || i == last {
			continue
		}
		v := decimal.Zero
		if !unpaidPct.IsZero() {
			v = balance.Mul(out[i].Percentage).Div(unpaidPct).Round(ValueScale)
		}
		out[i].Value = v
		allocated = allocated.Add(v)
	}
	out[last].Value = balance.Sub(allocated)
	return out, nil
}

// AdjustRemainder moves a change of the order total onto the single unpaid
// installment. Values already paid are never touched.
func AdjustRemainder(installments []Installment, oldTotal, newTotal decimal.Decimal) ([]Installment, error) {
	delta := newTotal.Sub(oldTotal)
	if delta.IsZero() {
		return slices.Clone(installments), nil
	}

	unpaid := -1
	count := 0
	for i, inst := range installments {
		if !inst.IsPaid {
			unpaid = i
			count++
		}
	}

	switch {
	case count == 0:
		return nil, ErrFullyPaid
	case count > 1:
		return nil, ErrRedistributionUndefined
	}

	out := slices.Clone(installments)
	out[unpaid].Value = out[unpaid].Value.Add(delta)
	return out, nil
}

// DisplayPercentages back-computes each installment's share of total from
// its recorded value, rounded to two decimals. It is used for display and
// never written back.
func DisplayPercentages(installments []Installment, total decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(installments))
	if total.IsZero() {
		for i := range out {
			out[i] = decimal.Zero
		}
		return out
	}
	for i, inst := range installments {
		out[i] = inst.Value.Div(total).Mul(hundred).Round(2)
	}
	return out
}

func SumPercentages(installments []Installment) decimal.Decimal {
	sum := decimal.Zero
	for _, inst := range installments {
		sum = sum.Add(inst.Percentage)
	}
	return sum
}

func SumValues(installments []Installment) decimal.Decimal {
	sum := decimal.Zero
	for _, inst := range installments {
		sum = sum.Add(inst.Value)
	}
	return sum
}

// PaidValue is the amount already received.
func PaidValue(installments []Installment) decimal.Decimal {
	sum := decimal.Zero
	for _, inst := range installments {
		if inst.IsPaid {
			sum = sum.Add(inst.Value)
		}
	}
	return sum
}

func CountUnpaid(installments []Installment) int {
	n := 0
	for _, inst := range installments {
		if !inst.IsPaid {
			n++
		}
	}
	return n
}

func AnyPaid(installments []Installment) bool {
	return slices.ContainsFunc(installments, func(inst Installment) bool { return inst.IsPaid })
}

// AllPaid reports whether a non-empty set has every installment paid.
func AllPaid(installments []Installment) bool {
	return len(installments) > 0 && CountUnpaid(installments) == 0
}

func valueOf(total, pct decimal.Decimal) decimal.Decimal {
	return total.Mul(pct).Div(hundred)
}
