package payments

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimals(t *testing.T, want []string, got []decimal.Decimal) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, dec(want[i]).Equal(got[i]), "index %d: want %s, got %s", i, want[i], got[i])
	}
}

func percentages(insts []Installment) []decimal.Decimal {
	out := make([]decimal.Decimal, len(insts))
	for i, inst := range insts {
		out[i] = inst.Percentage
	}
	return out
}

func values(insts []Installment) []decimal.Decimal {
	out := make([]decimal.Decimal, len(insts))
	for i, inst := range insts {
		out[i] = inst.Value
	}
	return out
}

func TestPlanInstallments(t *testing.T) {
	tests := []struct {
		name        string
		total       string
		plan        Plan
		percentages []string
		values      []string
	}{
		{"single payment", "108", PlanNone, []string{"100"}, []string{"108"}},
		{"two parts", "108", PlanTwo, []string{"50", "50"}, []string{"54", "54"}},
		{"three parts keeps deposit order", "108", PlanThree, []string{"30", "50", "20"}, []string{"32.4", "54", "21.6"}},
		{"no last entry adjustment", "100.01", PlanTwo, []string{"50", "50"}, []string{"50.005", "50.005"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanInstallments(dec(tt.total), tt.plan)
			require.NoError(t, err)

			assertDecimals(t, tt.percentages, percentages(got))
			assertDecimals(t, tt.values, values(got))
			for i, inst := range got {
				assert.Equal(t, i+1, inst.Number)
				assert.False(t, inst.IsPaid)
				assert.Nil(t, inst.PaymentDate)
				assert.Nil(t, inst.PaymentMode)
			}
		})
	}
}

func TestPlanInstallments_SumMatchesTotal(t *testing.T) {
	for _, plan := range []Plan{PlanNone, PlanTwo, PlanThree} {
		got, err := PlanInstallments(dec("108"), plan)
		require.NoError(t, err)
		assert.True(t, dec("108").Equal(SumValues(got)), "plan %s", plan)
		assert.True(t, dec("100").Equal(SumPercentages(got)), "plan %s", plan)
	}
}

func TestPlanInstallments_UnknownPlan(t *testing.T) {
	_, err := PlanInstallments(dec("10"), Plan("4x"))
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestParsePlan(t *testing.T) {
	for in, want := range map[string]Plan{"": PlanNone, "Non": PlanNone, "null": PlanNone, "2x": PlanTwo, "3X": PlanThree} {
		got, err := ParsePlan(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePlan("weekly")
	assert.ErrorIs(t, err, ErrUnknownPlan)
}

func TestRecalculate_RejectsBadSum(t *testing.T) {
	insts, err := PlanInstallments(dec("108"), PlanTwo)
	require.NoError(t, err)

	insts, err = SetPercentage(insts, 0, dec("40"))
	require.NoError(t, err)
	insts, err = SetPercentage(insts, 1, dec("40"))
	require.NoError(t, err)

	out, err := Recalculate(insts, dec("108"))
	require.Error(t, err)
	assert.Nil(t, out)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "percentages", verr.Field)
	assert.ErrorIs(t, err, ErrPercentageSum)

	// prior values survive the rejected recalculation
	assertDecimals(t, []string{"54", "54"}, values(insts))
}

func TestRecalculate_AppliesOverride(t *testing.T) {
	insts, err := PlanInstallments(dec("200"), PlanTwo)
	require.NoError(t, err)

	insts, err = SetPercentage(insts, 0, dec("25"))
	require.NoError(t, err)
	insts, err = SetPercentage(insts, 1, dec("75"))
	require.NoError(t, err)

	out, err := Recalculate(insts, dec("200"))
	require.NoError(t, err)
	assertDecimals(t, []string{"50", "150"}, values(out))
}

func TestRecalculate_KeepsPaidValues(t *testing.T) {
	paidOn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mode := ModeCash
	insts := []Installment{
		{Number: 1, Percentage: dec("50"), Value: dec("50"), IsPaid: true, PaymentDate: &paidOn, PaymentMode: &mode},
		{Number: 2, Percentage: dec("50"), Value: dec("50")},
	}

	out, err := Recalculate(insts, dec("120"))
	require.NoError(t, err)
	assertDecimals(t, []string{"50", "70"}, values(out))
	assert.True(t, dec("120").Equal(SumValues(out)))
	assert.True(t, dec("50").Equal(insts[1].Value), "input must not change")
}

func TestRecalculate_SharesBalanceAfterPayment(t *testing.T) {
	paidOn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	insts := []Installment{
		{Number: 1, Percentage: dec("10"), Value: dec("11"), IsPaid: true, PaymentDate: &paidOn},
		{Number: 2, Percentage: dec("30"), Value: dec("33")},
		{Number: 3, Percentage: dec("30"), Value: dec("33")},
		{Number: 4, Percentage: dec("30"), Value: dec("33")},
	}

	out, err := Recalculate(insts, dec("100"))
	require.NoError(t, err)
	assertDecimals(t, []string{"11", "29.6667", "29.6667", "29.6666"}, values(out))
	assert.True(t, dec("100").Equal(SumValues(out)))
}

func TestRecalculate_ZeroUnpaidPercentage(t *testing.T) {
	paidOn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	insts := []Installment{
		{Number: 1, Percentage: dec("100"), Value: dec("60"), IsPaid: true, PaymentDate: &paidOn},
		{Number: 2, Percentage: dec("0"), Value: dec("0")},
	}

	out, err := Recalculate(insts, dec("100"))
	require.NoError(t, err)
	assertDecimals(t, []string{"60", "40"}, values(out))
}

func TestSetPercentage_Errors(t *testing.T) {
	insts := []Installment{{Number: 1, Percentage: dec("100"), Value: dec("10"), IsPaid: true}}

	_, err := SetPercentage(insts, 0, dec("10"))
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	_, err = SetPercentage(insts, 2, dec("10"))
	assert.ErrorIs(t, err, ErrInstallmentIndex)

	insts[0].IsPaid = false
	_, err = SetPercentage(insts, 0, dec("-5"))
	assert.ErrorIs(t, err, ErrNegativePercentage)

	_, err = SetPercentage(insts, 0, dec("33.33333"))
	assert.ErrorIs(t, err, ErrPercentagePrecision)

	out, err := SetPercentage(insts, 0, dec("33.3333"))
	require.NoError(t, err)
	assertDecimals(t, []string{"33.3333"}, percentages(out))
}

func TestAdjustRemainder(t *testing.T) {
	paidOn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	insts := []Installment{
		{Number: 1, Percentage: dec("50"), Value: dec("50"), IsPaid: true, PaymentDate: &paidOn},
		{Number: 2, Percentage: dec("50"), Value: dec("50")},
	}

	out, err := AdjustRemainder(insts, dec("100"), dec("130"))
	require.NoError(t, err)

	assertDecimals(t, []string{"50", "80"}, values(out))
	assert.True(t, dec("130").Equal(SumValues(out)))
	assert.True(t, dec("50").Equal(insts[1].Value), "input must not change")
}

func TestAdjustRemainder_Decrease(t *testing.T) {
	insts := []Installment{
		{Number: 1, Percentage: dec("30"), Value: dec("30"), IsPaid: true},
		{Number: 2, Percentage: dec("50"), Value: dec("50"), IsPaid: true},
		{Number: 3, Percentage: dec("20"), Value: dec("20")},
	}

	out, err := AdjustRemainder(insts, dec("100"), dec("90"))
	require.NoError(t, err)
	assertDecimals(t, []string{"30", "50", "10"}, values(out))
}

func TestAdjustRemainder_SeveralUnpaid(t *testing.T) {
	insts, err := PlanInstallments(dec("100"), PlanThree)
	require.NoError(t, err)

	_, err = AdjustRemainder(insts, dec("100"), dec("150"))
	assert.ErrorIs(t, err, ErrRedistributionUndefined)

	out, err := AdjustRemainder(insts, dec("100"), dec("100"))
	require.NoError(t, err)
	assertDecimals(t, []string{"30", "50", "20"}, values(out))
}

func TestAdjustRemainder_AllPaid(t *testing.T) {
	insts := []Installment{{Number: 1, Percentage: dec("100"), Value: dec("100"), IsPaid: true}}
	_, err := AdjustRemainder(insts, dec("100"), dec("110"))
	assert.ErrorIs(t, err, ErrFullyPaid)
}

func TestDisplayPercentages(t *testing.T) {
	insts := []Installment{
		{Value: dec("50"), IsPaid: true},
		{Value: dec("80")},
	}
	assertDecimals(t, []string{"38.46", "61.54"}, DisplayPercentages(insts, dec("130")))
	assertDecimals(t, []string{"0", "0"}, DisplayPercentages(insts, decimal.Zero))
}
