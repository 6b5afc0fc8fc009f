// Package resilience wraps outbound HTTP calls with a circuit breaker,
// per-request timeouts and retry with exponential backoff. Used for the
// reasoning service, the only network dependency of the analysis pipeline.
package resilience

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/andinolabs/altura/internal/resilience"

// Predefined errors for resilient operations.
var (
	// ErrCircuitOpen is returned when the circuit breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// ClientConfig holds configuration for the resilient HTTP client.
type ClientConfig struct {
	// Name identifies this client for circuit breaker naming.
	Name string

	// Timeout is the per-attempt HTTP timeout. Default: 10s.
	Timeout time.Duration

	// MaxRetries caps retry attempts on transient failures. Default: 2.
	MaxRetries uint64

	// InitialInterval is the first retry backoff delay. Default: 100ms.
	InitialInterval time.Duration

	// MaxInterval caps the backoff delay. Default: 5s.
	MaxInterval time.Duration

	// BreakerTimeout is how long the breaker stays open before probing.
	// Default: 60s.
	BreakerTimeout time.Duration
}

// DefaultClientConfig returns sensible defaults for the resilient client.
func DefaultClientConfig(name string) ClientConfig {
	return ClientConfig{
		Name:            name,
		Timeout:         10 * time.Second,
		MaxRetries:      2,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     5 * time.Second,
		BreakerTimeout:  60 * time.Second,
	}
}

// Client is an HTTP client with circuit breaker and retry logic.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
	config     ClientConfig

	callDuration metric.Float64Histogram
	callTotal    metric.Int64Counter
}

// NewClient creates a new resilient HTTP client.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 100 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 5 * time.Second
	}
	if cfg.BreakerTimeout == 0 {
		cfg.BreakerTimeout = 60 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip on a 50%+ failure rate once 5 requests have been seen.
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && ratio >= 0.5
		},
	})

	meter := otel.Meter(meterName)
	callDuration, _ := meter.Float64Histogram(
		"outbound.call.duration",
		metric.WithDescription("Duration of outbound calls in seconds"),
		metric.WithUnit("s"),
	)
	callTotal, _ := meter.Int64Counter(
		"outbound.call.total",
		metric.WithDescription("Total number of outbound calls"),
		metric.WithUnit("{call}"),
	)

	return &Client{
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		breaker:      breaker,
		config:       cfg,
		callDuration: callDuration,
		callTotal:    callTotal,
	}
}

// Do executes an HTTP request, retrying transient failures (network errors
// and 5xx responses) with exponential backoff. Returns ErrCircuitOpen
// without attempting the request when the breaker is open.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	started := time.Now()

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.config.InitialInterval
	bo.MaxInterval = c.config.MaxInterval
	bo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, c.config.MaxRetries), ctx)

	var lastResp *http.Response

	operation := func() error {
		resp, err := c.breaker.Execute(func() (*http.Response, error) {
			r, err := c.httpClient.Do(req.Clone(ctx))
			if err != nil {
				return nil, err
			}
			// 5xx counts as a failure so the breaker sees it.
			if r.StatusCode >= 500 {
				return r, &ServerError{StatusCode: r.StatusCode}
			}
			return r, nil
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if resp != nil {
				lastResp = resp
			}
			return err
		}

		lastResp = resp
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		// A 5xx that exhausted retries still carries a body worth reading.
		if lastResp != nil {
			c.record(ctx, started, true)
			return lastResp, nil
		}
		c.record(ctx, started, true)
		return nil, err
	}

	c.record(ctx, started, false)
	return lastResp, nil
}

// record emits call metrics. Instruments can be nil when instrument
// creation failed at construction time.
func (c *Client) record(ctx context.Context, started time.Time, failed bool) {
	if c.callDuration == nil || c.callTotal == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("client.name", c.config.Name),
		attribute.Bool("error", failed),
	}
	c.callDuration.Record(ctx, time.Since(started).Seconds(), metric.WithAttributes(attrs...))
	c.callTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// State returns the current circuit breaker state.
func (c *Client) State() gobreaker.State {
	return c.breaker.State()
}

// ServerError represents an HTTP 5xx server error.
type ServerError struct {
	StatusCode int
}

func (e *ServerError) Error() string {
	return "server error: " + http.StatusText(e.StatusCode)
}

// WithTimeout derives a context bounded by the client's per-attempt timeout
// plus headroom for retries.
func (c *Client) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	total := c.config.Timeout * time.Duration(c.config.MaxRetries+1)
	return context.WithTimeout(ctx, total)
}
