// Package money converts between major-unit float amounts and the integer
// cent values stored in the database. Cents are the source of truth; floats
// only appear at the accessor boundary.
package money

import "github.com/shopspring/decimal"

// ToCents converts a major-unit amount to cents, truncating anything below a
// cent. Going through decimal keeps amounts like 15444.45 exact instead of
// inheriting float64 representation error.
func ToCents(amount float64) int64 {
	return decimal.NewFromFloat(amount).Shift(2).Truncate(0).IntPart()
}

// FromCents converts stored cents back to a major-unit amount.
func FromCents(cents int64) float64 {
	value, _ := decimal.NewFromInt(cents).Shift(-2).Float64()
	return value
}
