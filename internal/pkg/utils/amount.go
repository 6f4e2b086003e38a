package utils

import (
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// BalanceFractionDigits is the fixed precision used when rendering native
// and token balances. Every hydrated balance carries exactly this many
// fractional digits.
const BalanceFractionDigits = 4

// FiatFractionDigits is the fixed precision of fiat values.
const FiatFractionDigits = 2

// FormatAtomic converts an integer atomic amount (e.g. wei) into a decimal
// string with exactly four fractional digits, dividing by 10^decimals.
// Example: amount=1000000000000000000, decimals=18 => "1.0000".
func FormatAtomic(amount *big.Int, decimals int32) string {
	if amount == nil {
		return decimal.Zero.StringFixed(BalanceFractionDigits)
	}
	return decimal.NewFromBigInt(amount, -decimals).StringFixed(BalanceFractionDigits)
}

// ZeroBalance is the formatted balance used when every balance source failed.
func ZeroBalance() string {
	return decimal.Zero.StringFixed(BalanceFractionDigits)
}

// MultiplyToFiat computes rate * balance and renders it with exactly two
// fractional digits. balance is a decimal string as produced by FormatAtomic.
func MultiplyToFiat(rate float64, balance string) (string, error) {
	bal, err := decimal.NewFromString(balance)
	if err != nil {
		return "", fmt.Errorf("invalid balance string %q: %w", balance, err)
	}
	return decimal.NewFromFloat(rate).Mul(bal).StringFixed(FiatFractionDigits), nil
}

// SumDecimalStrings adds decimal integer strings (atomic amounts) and returns
// the sum as a decimal integer string. Unparseable entries are skipped.
func SumDecimalStrings(values []string) string {
	sum := new(big.Int)
	for _, v := range values {
		if v == "" {
			continue
		}
		n, ok := new(big.Int).SetString(strings.TrimSpace(v), 10)
		if !ok {
			continue
		}
		sum.Add(sum, n)
	}
	return sum.String()
}

// GetEnv returns the value of the environment variable or the fallback when
// it is unset or empty.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
