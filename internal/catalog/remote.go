package catalog

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/GriffinCanCode/ucalc/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/ucalc/internal/units"
)

// ErrRemoteRejected reports a 4xx answer from a definition server. It does
// not count against the circuit breaker.
var ErrRemoteRejected = errors.New("remote rejected request")

// RemoteConfig tunes the remote definition client.
type RemoteConfig struct {
	Timeout      time.Duration
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
	// RateLimit caps requests per second; zero means unlimited.
	RateLimit float64
	UserAgent string
}

// DefaultRemoteConfig returns settings suited to an occasional catalogue
// refresh.
func DefaultRemoteConfig() RemoteConfig {
	return RemoteConfig{
		Timeout:      10 * time.Second,
		RetryMax:     3,
		RetryWaitMin: 500 * time.Millisecond,
		RetryWaitMax: 5 * time.Second,
		RateLimit:    1,
		UserAgent:    "ucalc/1.0",
	}
}

// RemoteClient downloads definition documents over HTTP.
type RemoteClient struct {
	resty   *resty.Client
	limiter *rate.Limiter
	breaker *resilience.Breaker
	log     *zap.Logger
}

// NewRemoteClient builds a client whose transport retries transient
// failures and whose calls pass through a circuit breaker.
func NewRemoteClient(cfg RemoteConfig, log *zap.Logger) *RemoteClient {
	if log == nil {
		log = zap.NewNop()
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = cfg.RetryMax
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.Logger = nil

	client := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json, application/yaml, application/toml").
		SetHeader("User-Agent", cfg.UserAgent)

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(1, int(cfg.RateLimit)))
	}

	breaker := resilience.New("units-remote", resilience.Settings{
		Cooldown:   30 * time.Second,
		ShouldTrip: resilience.ConsecutiveFailures(3),
		IsFailure: func(err error) bool {
			return !errors.Is(err, ErrRemoteRejected) && !errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to resilience.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})

	return &RemoteClient{resty: client, limiter: limiter, breaker: breaker, log: log}
}

// Fetch downloads and decodes the definition document at rawURL. The format
// comes from the URL extension, then the Content-Type header, then the
// body itself.
func (c *RemoteClient) Fetch(ctx context.Context, rawURL string) ([]units.FundamentalUnit, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	start := time.Now()
	resp, err := resilience.Call(ctx, c.breaker, func(ctx context.Context) (*resty.Response, error) {
		resp, err := c.resty.R().SetContext(ctx).Get(rawURL)
		if err != nil {
			return nil, err
		}
		if code := resp.StatusCode(); code >= 400 && code < 500 {
			return nil, fmt.Errorf("%w: %s returned %s", ErrRemoteRejected, rawURL, resp.Status())
		}
		if resp.IsError() {
			return nil, fmt.Errorf("%s returned %s", rawURL, resp.Status())
		}
		return resp, nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch units: %w", err)
	}

	format, err := remoteFormat(rawURL, resp.Header().Get("Content-Type"), resp.Body())
	if err != nil {
		return nil, err
	}
	list, err := Decode(resp.Body(), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", rawURL, err)
	}

	c.log.Info("Fetched remote unit definitions",
		zap.String("url", rawURL),
		zap.Int("count", len(list)),
		zap.Duration("duration", time.Since(start)),
	)
	return list, nil
}

// BreakerState exposes the breaker position for health reporting.
func (c *RemoteClient) BreakerState() resilience.State {
	return c.breaker.State()
}

func remoteFormat(rawURL, contentType string, body []byte) (Format, error) {
	if u, err := url.Parse(rawURL); err == nil {
		if f, err := FormatFromPath(u.Path); err == nil {
			return f, nil
		}
	}
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "yaml"):
		return FormatYAML, nil
	case strings.Contains(ct, "toml"):
		return FormatTOML, nil
	case strings.Contains(ct, "json"):
		return FormatJSON, nil
	}
	// only JSON can be told apart from plain text
	if mimetype.Detect(body).Is("application/json") {
		return FormatJSON, nil
	}
	return "", fmt.Errorf("%w: cannot tell format of %s (%q)", ErrUnsupportedFormat, rawURL, contentType)
}
