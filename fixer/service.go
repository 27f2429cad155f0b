package fixer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"go-currency-converter/domain"

	"golang.org/x/time/rate"
)

const ApiUrlBase = "http://data.fixer.io/api"

// Snapshot all rates published by the provider, expressed relative to Anchor.
type Snapshot struct {
	Anchor domain.Currency
	Rates  domain.Rates
}

// Service wraps the fixer REST API
type Service interface {
	Latest(ctx context.Context) (Snapshot, error)
}

// Options for NewService. Zero values fall back to defaults.
type Options struct {
	URL       string
	AccessKey string
	Timeout   time.Duration
	// RateLimit max requests per second against the provider quota
	RateLimit float64
}

// service fixer API
type service struct {
	// url base API url
	url string

	// client for HTTP requests, injects the access key
	client http.Client

	// limiter guards the provider quota
	limiter *rate.Limiter
}

// NewService constructs a valid fixer Service.
func NewService(opts Options) Service {
	if opts.URL == "" {
		opts.URL = ApiUrlBase
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 1
	}

	return &service{
		url: opts.URL,
		client: http.Client{
			Timeout:   opts.Timeout,
			Transport: accessKeyTransport(opts.AccessKey, http.DefaultTransport),
		},
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
	}
}

// Latest loads the latest rates. A single attempt is made.
func (s *service) Latest(ctx context.Context) (Snapshot, error) {
	type Response struct {
		Success bool
		Base    string
		Rates   map[string]float64
		Error   struct {
			Code int
			Type string
			Info string
		}
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	url := fmt.Sprintf("%v/latest", s.url)

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("building http request: %w", err)
	}
	httpResponse, err := s.client.Do(request)
	if err != nil {
		return Snapshot{}, fmt.Errorf("http get: %w", err)
	}
	defer httpResponse.Body.Close()

	if httpResponse.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("unexpected status code: %d", httpResponse.StatusCode)
	}

	bytes, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return Snapshot{}, fmt.Errorf("reading json: %w", err)
	}

	var response Response
	err = json.Unmarshal(bytes, &response)
	if err != nil {
		return Snapshot{}, fmt.Errorf("decoding json: %w", err)
	}

	if !response.Success {
		return Snapshot{}, fmt.Errorf("provider error %d %s: %s", response.Error.Code, response.Error.Type, response.Error.Info)
	}

	rates := domain.Rates{}
	for k, v := range response.Rates {
		if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
			return Snapshot{}, fmt.Errorf("bad rate value for %v: %v", k, v)
		}
		rates[domain.Currency(k)] = domain.Rate(v)
	}

	return Snapshot{Anchor: domain.Currency(response.Base), Rates: rates}, nil
}

type roundTripperFn func(*http.Request) (*http.Response, error)

func (fn roundTripperFn) RoundTrip(r *http.Request) (*http.Response, error) {
	return fn(r)
}

// accessKeyTransport adds the access_key query parameter to every request
func accessKeyTransport(accessKey string, next http.RoundTripper) http.RoundTripper {
	return roundTripperFn(func(req *http.Request) (*http.Response, error) {
		req = req.Clone(req.Context())
		params := req.URL.Query()
		params.Set("access_key", accessKey)
		req.URL.RawQuery = params.Encode()
		return next.RoundTrip(req)
	})
}
