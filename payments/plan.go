// payments/plan.go
package payments

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Plan string

const (
	PlanNone  Plan = "none"
	PlanTwo   Plan = "2x"
	PlanThree Plan = "3x"
)

// ParsePlan accepts the stored spellings of the single payment plan as well
// as the canonical ones.
func ParsePlan(s string) (Plan, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "non", "null", "1x":
		return PlanNone, nil
	case "2x":
		return PlanTwo, nil
	case "3x":
		return PlanThree, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlan, s)
}

// Percentages returns the fixed split of the plan, first installment first.
func (p Plan) Percentages() []decimal.Decimal {
	switch p {
	case PlanTwo:
		return []decimal.Decimal{decimal.NewFromInt(50), decimal.NewFromInt(50)}
	case PlanThree:
		// Deposit first: 30, then 50, then 20.
		return []decimal.Decimal{decimal.NewFromInt(30), decimal.NewFromInt(50), decimal.NewFromInt(20)}
	default:
		return []decimal.Decimal{decimal.NewFromInt(100)}
	}
}

func (p Plan) Valid() bool {
	return p == PlanNone || p == PlanTwo || p == PlanThree
}

// Mode is how a staff member recorded an installment as paid.
type Mode string

const (
	ModeCard         Mode = "card"
	ModeCheck        Mode = "check"
	ModePayPal       Mode = "paypal"
	ModeBankTransfer Mode = "bank_transfer"
	ModeCash         Mode = "cash"
)

var modeLabels = map[Mode]string{
	ModeCard:         "Card",
	ModeCheck:        "Check",
	ModePayPal:       "PayPal",
	ModeBankTransfer: "Bank transfer",
	ModeCash:         "Cash",
}

func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
	return m, nil
}

func (m Mode) Valid() bool {
	_, ok := modeLabels[m]
	return ok
}

func (m Mode) Label() string {
	return modeLabels[m]
}

// Modes lists the accepted payment modes in display order.
func Modes() []Mode {
	return []Mode{ModeCard, ModeCheck, ModePayPal, ModeBankTransfer, ModeCash}
}
