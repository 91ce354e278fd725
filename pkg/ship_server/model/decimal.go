package model

import "github.com/shopspring/decimal"

// Decimal keeps exact values (carton weights) that arrive either as JSON numbers or
// quoted strings and marshals them back as bare numbers.
type Decimal struct {
	value decimal.Decimal
}

func NewDecimalFromString(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{
		value: d,
	}, nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.value.String()), nil
}

func (d *Decimal) UnmarshalJSON(b []byte) error {
	return d.value.UnmarshalJSON(b)
}

func (d Decimal) String() string {
	return d.value.String()
}

func (d Decimal) InexactFloat64() float64 {
	return d.value.InexactFloat64()
}
