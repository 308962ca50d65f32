package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ISU is the platform's unit of account. It is an immutable, non-negative
// decimal amount; all balance arithmetic goes through its methods so a
// negative amount can never be constructed.
type ISU struct {
	amount decimal.Decimal
}

// NewISU creates an ISU amount, rejecting negative values.
func NewISU(amount decimal.Decimal) (ISU, error) {
	if amount.IsNegative() {
		return ISU{}, NewValidationError("ISU amount cannot be negative")
	}
	return ISU{amount: amount}, nil
}

// NewISUFromFloat creates an ISU amount from a float64.
func NewISUFromFloat(amount float64) (ISU, error) {
	return NewISU(decimal.NewFromFloat(amount))
}

// NewISUFromString creates an ISU amount from a decimal string.
func NewISUFromString(amount string) (ISU, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return ISU{}, NewValidationError("invalid ISU amount")
	}
	return NewISU(d)
}

// ZeroISU returns the zero amount.
func ZeroISU() ISU {
	return ISU{amount: decimal.Zero}
}

// Amount returns the underlying decimal value.
func (i ISU) Amount() decimal.Decimal {
	return i.amount
}

// Add returns i + other. The sum of two non-negative amounts cannot go
// negative, so addition never fails.
func (i ISU) Add(other ISU) ISU {
	return ISU{amount: i.amount.Add(other.amount)}
}

// Subtract returns i - other, failing if the result would be negative.
func (i ISU) Subtract(other ISU) (ISU, error) {
	if i.amount.LessThan(other.amount) {
		return ISU{}, NewValidationError("insufficient ISU balance")
	}
	return ISU{amount: i.amount.Sub(other.amount)}, nil
}

// Multiply returns i × multiplier, failing for a negative multiplier.
func (i ISU) Multiply(multiplier decimal.Decimal) (ISU, error) {
	if multiplier.IsNegative() {
		return ISU{}, NewValidationError("multiplier cannot be negative")
	}
	return ISU{amount: i.amount.Mul(multiplier)}, nil
}

// GreaterThanOrEqual reports whether i >= other.
func (i ISU) GreaterThanOrEqual(other ISU) bool {
	return i.amount.GreaterThanOrEqual(other.amount)
}

// Equal reports whether i and other are the same amount.
func (i ISU) Equal(other ISU) bool {
	return i.amount.Equal(other.amount)
}

// IsZero reports whether the amount is zero.
func (i ISU) IsZero() bool {
	return i.amount.IsZero()
}

func (i ISU) String() string {
	return fmt.Sprintf("%s ISU", i.amount.String())
}

// ISURate is an hourly billing rate in ISU. Like ISU it is immutable and
// non-negative.
type ISURate struct {
	rate decimal.Decimal
}

// NewISURate creates a rate, rejecting negative values.
func NewISURate(rate decimal.Decimal) (ISURate, error) {
	if rate.IsNegative() {
		return ISURate{}, NewValidationError("ISU rate cannot be negative")
	}
	return ISURate{rate: rate}, nil
}

// NewISURateFromFloat creates a rate from a float64.
func NewISURateFromFloat(rate float64) (ISURate, error) {
	return NewISURate(decimal.NewFromFloat(rate))
}

// Rate returns the underlying decimal value.
func (r ISURate) Rate() decimal.Decimal {
	return r.rate
}

// Total converts the rate into a total ISU amount for the given duration
// in hours.
func (r ISURate) Total(hours decimal.Decimal) (ISU, error) {
	if hours.IsNegative() {
		return ISU{}, NewValidationError("hours cannot be negative")
	}
	return NewISU(r.rate.Mul(hours))
}

// Equal reports whether r and other are the same rate.
func (r ISURate) Equal(other ISURate) bool {
	return r.rate.Equal(other.rate)
}

func (r ISURate) String() string {
	return fmt.Sprintf("%s ISU/hour", r.rate.String())
}
