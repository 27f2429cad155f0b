package ratetable

import (
	"fmt"
	"math"
	"sort"

	"go-currency-converter/domain"
)

// Table resolves conversion factors between currency codes.
// Implementations must be concurrency-safe.
type Table interface {
	// Rate returns the factor that converts an amount in base into target
	Rate(base, target domain.Currency) (domain.Rate, error)

	// Currencies returns the known currency codes, sorted
	Currencies() []domain.Currency
}

func validRate(r domain.Rate) bool {
	f := float64(r)
	return f > 0 && !math.IsInf(f, 0) && !math.IsNaN(f)
}

func sortedKeys[V any](m map[domain.Currency]V) []domain.Currency {
	keys := make([]domain.Currency, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func checkRates(base domain.Currency, rates domain.Rates) error {
	for target, r := range rates {
		if !validRate(r) {
			return fmt.Errorf("rate %v -> %v must be positive and finite: %v", base, target, r)
		}
	}
	return nil
}
