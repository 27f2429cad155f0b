package convert

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go-currency-converter/domain"
	"go-currency-converter/ratetable"
)

// Service interface for converting an amount from one currency to another
type Service interface {
	Convert(ctx context.Context, amount string, from domain.Currency, to domain.Currency) (domain.Exchanged, error)
}

type service struct {
	// table to resolve conversion factors. Only ever read.
	table ratetable.Table

	policy AmountPolicy
}

// NewService constructs a valid Service
func NewService(table ratetable.Table, policy AmountPolicy) Service {
	return &service{
		table:  table,
		policy: policy,
	}
}

// Convert validates the raw amount and converts it with the current rate.
// The converted amount is rounded half up to two decimal places.
func (s *service) Convert(_ context.Context, amount string, from domain.Currency, to domain.Currency) (domain.Exchanged, error) {
	value, err := ParseAmount(amount, s.policy)
	if err != nil {
		return domain.Exchanged{}, err
	}

	rate, err := s.table.Rate(from, to)
	if err != nil {
		return domain.Exchanged{}, fmt.Errorf("%w: %w", domain.ErrConversionFailed, err)
	}

	result := domain.Exchanged{
		Rate:     rate,
		Amount:   value.Mul(decimal.NewFromFloat(float64(rate))).Round(2),
		Currency: to,
	}

	return result, nil
}
