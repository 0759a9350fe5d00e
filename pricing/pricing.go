// pricing/pricing.go
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Fee is an additive price adjustment attached to an order. A percentage
// fee is a share of the bare service price.
type Fee struct {
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	IsPercentage bool            `json:"isPercentage"`
}

// Discount is a subtractive price adjustment. A percentage discount is a
// share of the service price plus every resolved fee.
type Discount struct {
	Name         string          `json:"name"`
	Amount       decimal.Decimal `json:"amount"`
	IsPercentage bool            `json:"isPercentage"`
}

// Breakdown is the itemised result of a price computation.
type Breakdown struct {
	BasePrice     decimal.Decimal `json:"basePrice"`
	FeeTotal      decimal.Decimal `json:"feeTotal"`
	DiscountBase  decimal.Decimal `json:"discountBase"`
	DiscountTotal decimal.Decimal `json:"discountTotal"`
	Total         decimal.Decimal `json:"total"`
}

// Resolve returns the currency amount of the fee for the given base price.
func (f Fee) Resolve(basePrice decimal.Decimal) decimal.Decimal {
	if f.IsPercentage {
		return basePrice.Mul(f.Amount).Div(hundred)
	}
	return f.Amount
}

// Resolve returns the currency amount of the discount for the given
// discount base (service price plus fees).
func (d Discount) Resolve(discountBase decimal.Decimal) decimal.Decimal {
	if d.IsPercentage {
		return discountBase.Mul(d.Amount).Div(hundred)
	}
	return d.Amount
}

// Compute prices an order. The result is not floored at zero: discounts
// larger than the gross amount produce a negative total.
func Compute(basePrice decimal.Decimal, fees []Fee, discounts []Discount) Breakdown {
	feeTotal := decimal.Zero
	for _, fee := range fees {
		feeTotal = feeTotal.Add(fee.Resolve(basePrice))
	}

	discountBase := basePrice.Add(feeTotal)
	discountTotal := decimal.Zero
	for _, discount := range discounts {
		discountTotal = discountTotal.Add(discount.Resolve(discountBase))
	}

	return Breakdown{
		BasePrice:     basePrice,
		FeeTotal:      feeTotal,
		DiscountBase:  discountBase,
		DiscountTotal: discountTotal,
		Total:         discountBase.Sub(discountTotal),
	}
}

// ComputeTotal returns only the payable total of Compute.
func ComputeTotal(basePrice decimal.Decimal, fees []Fee, discounts []Discount) decimal.Decimal {
	return Compute(basePrice, fees, discounts).Total
}

// Validate checks the inputs of Compute before an order is saved.
func Validate(basePrice decimal.Decimal, fees []Fee, discounts []Discount) error {
	if basePrice.IsNegative() {
		return ErrNegativePrice
	}
	for i, fee := range fees {
		if fee.Name == "" {
			return fmt.Errorf("fee %d: %w", i+1, ErrUnnamedAdjustment)
		}
	}
	for i, discount := range discounts {
		if discount.Name == "" {
			return fmt.Errorf("discount %d: %w", i+1, ErrUnnamedAdjustment)
		}
	}
	return nil
}
