package ratetable

import (
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-currency-converter/domain"
)

// loggingTable decorates a Table with debug logging of lookups
type loggingTable struct {
	next   Table
	logger log.Logger
}

// NewLoggingTable returns a new logging Table
func NewLoggingTable(logger log.Logger, t Table) Table {
	return &loggingTable{
		next:   t,
		logger: logger,
	}
}

func (t *loggingTable) Rate(base, target domain.Currency) (rate domain.Rate, err error) {
	defer func() {
		level.Debug(t.logger).Log(
			"method", "rate",
			"base", base,
			"target", target,
			"rate", rate,
			"err", err,
		)
	}()
	return t.next.Rate(base, target)
}

func (t *loggingTable) Currencies() []domain.Currency {
	return t.next.Currencies()
}
