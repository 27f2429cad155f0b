package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency a currency code
type Currency string

// Rate an exchange rate
type Rate float64

type Rates map[Currency]Rate

// Exchanged the outcome of a conversion. Amount is always rounded to two places.
type Exchanged struct {
	Rate     Rate
	Amount   decimal.Decimal
	Currency Currency
}

// String renders the result the way the form displays it, e.g. "85.00 EUR"
func (e Exchanged) String() string {
	return fmt.Sprintf("%s %s", e.Amount.StringFixed(2), e.Currency)
}

// Swap exchanges the base and target selections.
func Swap(base, target Currency) (Currency, Currency) {
	return target, base
}
