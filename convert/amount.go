package convert

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"go-currency-converter/domain"
)

// AmountPolicy decides how raw amount text is turned into a number
type AmountPolicy int

const (
	// Strict the whole text must be a number
	Strict AmountPolicy = iota
	// Loose the longest leading number is used and the rest ignored, so "12abc" reads as 12
	Loose
)

func (p AmountPolicy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Loose:
		return "loose"
	default:
		return fmt.Sprintf("AmountPolicy(%d)", int(p))
	}
}

// ParsePolicy parses "strict" or "loose"
func ParsePolicy(s string) (AmountPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "strict":
		return Strict, nil
	case "loose":
		return Loose, nil
	default:
		return Strict, fmt.Errorf("unknown amount policy %q", s)
	}
}

// Bounds on accepted amounts. Larger exponents would make decimal arithmetic
// allocate a digit per power of ten.
const (
	maxIntegerDigits  = 15
	maxFractionDigits = 18
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount reads raw as a non-negative amount according to policy
func ParseAmount(raw string, policy AmountPolicy) (decimal.Decimal, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return decimal.Zero, fmt.Errorf("empty amount: %w", domain.ErrInvalidAmount)
	}

	if policy == Loose {
		prefix := leadingNumber.FindString(text)
		if prefix == "" {
			return decimal.Zero, fmt.Errorf("amount %q is not a number: %w", raw, domain.ErrInvalidAmount)
		}
		text = prefix
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q is not a number: %w", raw, domain.ErrInvalidAmount)
	}
	if amount.Exponent() < -maxFractionDigits {
		return decimal.Zero, fmt.Errorf("amount %q has too many decimal places: %w", raw, domain.ErrInvalidAmount)
	}
	if amount.NumDigits()+int(amount.Exponent()) > maxIntegerDigits {
		return decimal.Zero, fmt.Errorf("amount %q is too large: %w", raw, domain.ErrInvalidAmount)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %q is negative: %w", raw, domain.ErrInvalidAmount)
	}
	return amount, nil
}
