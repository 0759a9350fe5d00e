package pricing

import "slices"

// The helpers below never modify the slice they receive.

func AddFee(fees []Fee, fee Fee) []Fee {
	return append(slices.Clip(fees), fee)
}

func RemoveFee(fees []Fee, index int) ([]Fee, error) {
	return removeAt(fees, index)
}

func ReplaceFee(fees []Fee, index int, fee Fee) ([]Fee, error) {
	return replaceAt(fees, index, fee)
}

func AddDiscount(discounts []Discount, discount Discount) []Discount {
	return append(slices.Clip(discounts), discount)
}

func RemoveDiscount(discounts []Discount, index int) ([]Discount, error) {
	return removeAt(discounts, index)
}

func ReplaceDiscount(discounts []Discount, index int, discount Discount) ([]Discount, error) {
	return replaceAt(discounts, index, discount)
}

func removeAt[T any](s []T, index int) ([]T, error) {
	if index < 0 || index >= len(s) {
		return nil, ErrIndexOutOfRange
	}
	out := make([]T, 0, len(s)-1)
	out = append(out, s[:index]...)
	return append(out, s[index+1:]...), nil
}

func replaceAt[T any](s []T, index int, v T) ([]T, error) {
	if index < 0 || index >= len(s) {
		return nil, ErrIndexOutOfRange
	}
	out := slices.Clone(s)
	out[index] = v
	return out, nil
}
