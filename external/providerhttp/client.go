// Package providerhttp is the HTTP plumbing shared by the provider clients:
// one rate limiter and one circuit breaker per provider, retries with linear
// backoff on transient failures and pooled body reads.
package providerhttp

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/platform/resilience"
	"github.com/riskibarqy/esport-datanal/internal/usecase"
)

const (
	maxBodyBytes   = 6 << 20
	maxBodyExcerpt = 240
)

var errTransient = crerr.New("provider transient failure")

type Config struct {
	Name              string
	HTTPClient        *http.Client
	Timeout           time.Duration
	MaxRetries        int
	RequestsPerSecond float64
	Logger            *logging.Logger
	CircuitBreaker    resilience.CircuitBreakerConfig
	// Backoff returns the wait before retry attempt+1. Defaults to
	// (attempt+1) seconds.
	Backoff func(attempt int) time.Duration
}

type Client struct {
	name       string
	httpClient *http.Client
	maxRetries int
	limiter    *resilience.RateLimiter
	breaker    *resilience.CircuitBreaker
	logger     *logging.Logger
	backoff    func(attempt int) time.Duration
}

func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	backoff := cfg.Backoff
	if backoff == nil {
		backoff = func(attempt int) time.Duration { return time.Duration(attempt+1) * time.Second }
	}

	breakerCfg := cfg.CircuitBreaker
	if breakerCfg.OnStateChange == nil {
		breakerCfg.OnStateChange = func(name string, from, to resilience.CircuitState) {
			logger.Warn("provider circuit breaker state changed", "provider", name, "from", from, "to", to)
		}
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		name:       cfg.Name,
		httpClient: httpClient,
		maxRetries: maxRetries,
		limiter:    resilience.NewRateLimiter(cfg.RequestsPerSecond),
		breaker:    breakerCfg.Build(cfg.Name),
		logger:     logger,
		backoff:    backoff,
	}
}

// Request is one outbound call. Form, when set, is sent url-encoded as a POST
// body; otherwise the request is a GET.
type Request struct {
	URL  string
	Form url.Values
	// Redact hides credentials in urls and errors before they are logged.
	Redact func(string) string
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// StatusError is a non-2xx answer that is not worth retrying.
type StatusError struct {
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider status=%d body=%s", e.StatusCode, abbreviateBody(e.Body))
}

// AsStatusError unwraps a StatusError from err.
func AsStatusError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if stderrors.As(err, &statusErr) {
		return statusErr, true
	}
	return nil, false
}

// Do sends req through the rate limiter, retrying transient failures. The
// breaker only counts transient failures.
func (c *Client) Do(ctx context.Context, req Request) (Response, error) {
	redact := req.Redact
	if redact == nil {
		redact = func(s string) string { return s }
	}

	if err := c.breaker.Allow(); err != nil {
		c.logger.WarnContext(ctx, "provider circuit breaker rejected request",
			"provider", c.name,
			"state", c.breaker.State(),
		)
		return Response{}, fmt.Errorf("%w: %s is temporarily unavailable", usecase.ErrDependencyUnavailable, c.name)
	}

	resp, err := c.execute(ctx, req, redact)
	c.breaker.Record(err != nil && stderrors.Is(err, errTransient))
	return resp, err
}

func (c *Client) execute(ctx context.Context, req Request, redact func(string) string) (Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Acquire(ctx); err != nil {
			return Response{}, err
		}

		httpReq, err := c.newRequest(ctx, req)
		if err != nil {
			return Response{}, fmt.Errorf("build request: %w", err)
		}

		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return Response{}, ctx.Err()
			}
			lastErr = fmt.Errorf("%w: send request: %s", errTransient, redact(err.Error()))
		} else {
			raw, readErr := readBody(resp.Body)
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: raw}, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: raw},
					&StatusError{StatusCode: resp.StatusCode, Body: raw}
			}
		}

		if attempt == c.maxRetries {
			break
		}
		timer := time.NewTimer(c.backoff(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return Response{}, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "provider request failed",
		"provider", c.name,
		"url", redact(req.URL),
		"error", lastErr,
	)
	return Response{}, lastErr
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	if req.Form == nil {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("accept", "application/json")
		return httpReq, nil
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.URL, strings.NewReader(req.Form.Encode()))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("accept", "application/json")
	httpReq.Header.Set("content-type", "application/x-www-form-urlencoded")
	return httpReq, nil
}

func readBody(body io.Reader) ([]byte, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(body, maxBodyBytes)); err != nil {
		return nil, err
	}
	return append([]byte(nil), buf.B...), nil
}

// IsTransient reports whether err was a retryable network or server failure.
func IsTransient(err error) bool {
	return err != nil && stderrors.Is(err, errTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// abbreviateBody keeps at most maxBodyExcerpt bytes without splitting a rune.
func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= maxBodyExcerpt {
		return text
	}
	cut := maxBodyExcerpt
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}

// RedactParam replaces the value of param in rawURL, and every occurrence of
// secret in the text, with REDACTED.
func RedactParam(text, param, secret string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return text
	}
	if secret != "" {
		text = strings.ReplaceAll(text, secret, "REDACTED")
	}
	if parsed, err := url.Parse(text); err == nil && parsed.RawQuery != "" {
		query := parsed.Query()
		if query.Has(param) {
			query.Set(param, "REDACTED")
			parsed.RawQuery = query.Encode()
			return parsed.String()
		}
	}
	return text
}
