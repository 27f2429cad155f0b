package fixer

import (
	"context"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// loggingService decorates a fixer.Service with logging
type loggingService struct {
	next   Service
	logger log.Logger
}

// NewLoggingService return a new logging service
func NewLoggingService(logger log.Logger, s Service) Service {
	return &loggingService{
		next:   s,
		logger: logger,
	}
}

func (s *loggingService) Latest(ctx context.Context) (snapshot Snapshot, err error) {
	defer func(begin time.Time) {
		l := level.Info(s.logger)
		if err != nil {
			l = level.Error(s.logger)
		}
		l.Log(
			"method", "latest",
			"anchor", snapshot.Anchor,
			"rates", len(snapshot.Rates),
			"took", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Latest(ctx)
}
