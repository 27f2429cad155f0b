package ratetable

import (
	"fmt"

	"go-currency-converter/domain"
)

// Builtin returns the fixed table shipped with the converter.
// The rates are not reciprocal of each other.
func Builtin() map[domain.Currency]domain.Rates {
	return map[domain.Currency]domain.Rates{
		"USD": {"EUR": 0.85, "GBP": 0.75, "INR": 75},
		"EUR": {"USD": 1.18, "GBP": 0.88, "INR": 88},
		"GBP": {"USD": 1.33, "EUR": 1.14, "INR": 100},
		"INR": {"USD": 0.013, "EUR": 0.011, "GBP": 0.01},
	}
}

// Static a fixed nested rate table. It is never mutated after construction.
type Static struct {
	rates map[domain.Currency]domain.Rates
}

// NewStatic constructs a Static table from a copy of rates
func NewStatic(rates map[domain.Currency]domain.Rates) (*Static, error) {
	copied := make(map[domain.Currency]domain.Rates, len(rates))
	for base, targets := range rates {
		if err := checkRates(base, targets); err != nil {
			return nil, err
		}
		inner := make(domain.Rates, len(targets))
		for target, r := range targets {
			inner[target] = r
		}
		copied[base] = inner
	}
	return &Static{rates: copied}, nil
}

// NewBuiltin constructs a Static table holding the Builtin rates
func NewBuiltin() *Static {
	s, err := NewStatic(Builtin())
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Static) Rate(base, target domain.Currency) (domain.Rate, error) {
	targets, ok := s.rates[base]
	if !ok {
		return 0, fmt.Errorf("unknown 'from' currency %v: %w", base, domain.ErrUnsupportedPair)
	}
	if base == target {
		return 1, nil
	}
	rate, ok := targets[target]
	if !ok {
		return 0, fmt.Errorf("unknown 'to' currency %v: %w", target, domain.ErrUnsupportedPair)
	}
	return rate, nil
}

func (s *Static) Currencies() []domain.Currency {
	return sortedKeys(s.rates)
}
