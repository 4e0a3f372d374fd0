package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencyScale is the number of fractional digits kept for every stored amount.
const CurrencyScale = 2

// Amount limits
const (
	MinAmount = "0.01"
	MaxAmount = "1000000000" // 1 billion
)

// maxAmountLength bounds the raw input so decimal arithmetic stays cheap.
const maxAmountLength = 32

// amountPattern is plain positional notation. Exponents are rejected.
var amountPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

var (
	minAmount = decimal.RequireFromString(MinAmount)
	maxAmount = decimal.RequireFromString(MaxAmount)
)

// ParseAmount parses a user-supplied decimal string into a positive amount
// with at most two fractional digits.
func ParseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, fmt.Errorf("amount is required")
	}

	if len(raw) > maxAmountLength || !amountPattern.MatchString(raw) {
		return decimal.Zero, fmt.Errorf("amount must be a decimal number")
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount must be a decimal number")
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("amount must be greater than 0")
	}

	if amount.Exponent() < -CurrencyScale && !amount.Equal(amount.Truncate(CurrencyScale)) {
		return decimal.Zero, fmt.Errorf("amount must have at most %d decimal places", CurrencyScale)
	}

	if amount.LessThan(minAmount) {
		return decimal.Zero, fmt.Errorf("amount must be at least %s", MinAmount)
	}

	if amount.GreaterThan(maxAmount) {
		return decimal.Zero, fmt.Errorf("amount must not exceed %s", MaxAmount)
	}

	return RoundMoney(amount), nil
}

// RoundMoney rounds d half away from zero to the currency scale.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(CurrencyScale)
}

// FormatMoney renders d with exactly two fractional digits, e.g. "1284.50".
func FormatMoney(d decimal.Decimal) string {
	return d.StringFixed(CurrencyScale)
}
