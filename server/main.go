package main

import (
	"context"
	nhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"go-currency-converter/config"
	"go-currency-converter/convert"
	"go-currency-converter/fixer"
	"go-currency-converter/http"
	"go-currency-converter/ratetable"
)

func main() {
	w := log.NewSyncWriter(os.Stderr)
	logger := log.NewLogfmtLogger(w)
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	cfg, err := config.Load()
	if err != nil {
		level.Error(logger).Log("msg", "loading configuration", "err", err)
		os.Exit(1)
	}
	logger = level.NewFilter(logger, level.Allow(level.ParseDefault(cfg.LogLevel, level.InfoValue())))

	policy, err := convert.ParsePolicy(cfg.AmountPolicy)
	if err != nil {
		level.Error(logger).Log("msg", "loading configuration", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var table ratetable.Table
	var status http.Status
	switch cfg.RatesSource {
	case config.SourceRemote:
		fixerService := fixer.NewService(fixer.Options{
			URL:       cfg.Provider.URL,
			AccessKey: cfg.Provider.AccessKey,
			Timeout:   cfg.Provider.Timeout,
			RateLimit: cfg.Provider.RateLimit,
		})
		fixerService = fixer.NewLoggingService(log.With(logger, "component", "fixer"), fixerService)

		remote := ratetable.NewRemote(fixerService, log.With(logger, "component", "rates"))
		remote.Start(ctx)
		table, status = remote, remote
	default:
		table = ratetable.NewBuiltin()
	}
	table = ratetable.NewLoggingTable(log.With(logger, "component", "rates"), table)

	convertService := convert.NewService(table, policy)
	convertService = convert.NewLoggingService(log.With(logger, "component", "convert"), convertService)

	handler := http.NewServer(convertService, table, status, log.With(logger, "component", "http"))
	server := &nhttp.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	level.Info(logger).Log("msg", "listening", "addr", cfg.ListenAddr, "rates_source", cfg.RatesSource, "amount_policy", policy)
	if err := server.ListenAndServe(); err != nil && err != nhttp.ErrServerClosed {
		level.Error(logger).Log("msg", "http server", "err", err)
		os.Exit(1)
	}
}
