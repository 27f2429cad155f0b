package ratetable

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-currency-converter/domain"
	"go-currency-converter/fixer"
	"golang.org/x/sync/singleflight"
)

// Remote a rate table populated from a rate provider. All rates are expressed
// relative to a single anchor currency chosen by the provider.
// The table is empty until the first successful Load and is only ever replaced wholesale.
type Remote struct {
	// source the provider to load rates from
	source fixer.Service

	logger log.Logger

	// group collapses concurrent loads into a single fetch
	group singleflight.Group

	startOnce sync.Once
	done      chan struct{}

	// lock guards anchor, rates and err
	lock   sync.RWMutex
	anchor domain.Currency
	rates  domain.Rates
	err    error
}

// NewRemote constructs an empty Remote table
func NewRemote(source fixer.Service, logger log.Logger) *Remote {
	return &Remote{
		source: source,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Load fetches the latest rates once. On success the whole table is replaced,
// on failure the previous table is kept and the error is recorded.
func (r *Remote) Load(ctx context.Context) error {
	_, err, _ := r.group.Do("latest", func() (interface{}, error) {
		snapshot, err := r.source.Latest(ctx)
		if err == nil && len(snapshot.Rates) == 0 {
			err = errors.New("provider returned no rates")
		}
		if err == nil {
			err = checkRates(snapshot.Anchor, snapshot.Rates)
		}
		if err != nil {
			err = fmt.Errorf("loading rates: %w: %w", domain.ErrFetchFailed, err)
			r.lock.Lock()
			r.err = err
			r.lock.Unlock()
			return nil, err
		}

		rates := make(domain.Rates, len(snapshot.Rates))
		for k, v := range snapshot.Rates {
			rates[k] = v
		}

		r.lock.Lock()
		defer r.lock.Unlock()
		r.anchor = snapshot.Anchor
		r.rates = rates
		r.err = nil
		return nil, nil
	})
	return err
}

// Start issues a single asynchronous Load. Later calls do nothing.
// The returned channel is closed once the load attempt has finished.
func (r *Remote) Start(ctx context.Context) <-chan struct{} {
	r.startOnce.Do(func() {
		go func() {
			defer close(r.done)
			if err := r.Load(ctx); err != nil {
				level.Error(r.logger).Log("msg", "initial rate load failed", "err", err)
				return
			}
			level.Info(r.logger).Log("msg", "rates loaded", "anchor", r.Anchor(), "currencies", len(r.Currencies()))
		}()
	})
	return r.done
}

func (r *Remote) Rate(base, target domain.Currency) (domain.Rate, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if len(r.rates) == 0 {
		return 0, fmt.Errorf("no rates loaded: %w", domain.ErrRatesUnavailable)
	}
	from, ok := r.rates[base]
	if !ok {
		return 0, fmt.Errorf("unknown 'from' currency %v: %w", base, domain.ErrRatesUnavailable)
	}
	to, ok := r.rates[target]
	if !ok {
		return 0, fmt.Errorf("unknown 'to' currency %v: %w", target, domain.ErrRatesUnavailable)
	}
	if base == target {
		return 1, nil
	}
	return to / from, nil
}

func (r *Remote) Currencies() []domain.Currency {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return sortedKeys(r.rates)
}

// Loaded reports whether a load has ever succeeded
func (r *Remote) Loaded() bool {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.rates) > 0
}

// Anchor the currency all loaded rates are relative to
func (r *Remote) Anchor() domain.Currency {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.anchor
}

// Err the error of the most recent failed load, nil after a successful one
func (r *Remote) Err() error {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return r.err
}
