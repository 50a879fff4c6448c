// Package provider1 is the HTTP client of the provider1 API. Every call
// carries an OAuth access token obtained with client credentials.
package provider1

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/esport-datanal/external/providerhttp"
	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/platform/resilience"
	"github.com/riskibarqy/esport-datanal/internal/provider"
	"github.com/riskibarqy/esport-datanal/internal/usecase"
)

const (
	DefaultRequestsPerSecond = 1.0

	tokenParam        = "access_token"
	invalidTokenError = "Access token is not valid."
)

type ClientConfig struct {
	Transport         providerhttp.Config
	BaseURL           string
	ClientID          string
	ClientSecret      string
	RequestsPerSecond float64
	Logger            *logging.Logger
}

type Client struct {
	http         *providerhttp.Client
	baseURL      string
	clientID     string
	clientSecret string
	logger       *logging.Logger

	mu     sync.RWMutex
	token  string
	flight resilience.SingleFlight[string]
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpCfg := cfg.Transport
	httpCfg.Name = esport.ProviderOne.String()
	httpCfg.Logger = logger
	httpCfg.RequestsPerSecond = cfg.RequestsPerSecond
	if httpCfg.RequestsPerSecond <= 0 {
		httpCfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Client{
		http:         providerhttp.NewClient(httpCfg),
		baseURL:      strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		clientID:     strings.TrimSpace(cfg.ClientID),
		clientSecret: strings.TrimSpace(cfg.ClientSecret),
		logger:       logger,
	}
}

// TournamentScopes walks the live listing once per tournament since the
// series endpoint filters by a single tournament id. The history listing is
// unfiltered and walked once.
func (c *Client) TournamentScopes(mode provider.ListMode, ids []int64) [][]int64 {
	if mode == provider.ListHistory {
		return [][]int64{ids}
	}
	out := make([][]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, []int64{id})
	}
	return out
}

func (c *Client) ListMatches(ctx context.Context, q provider.ListQuery) (provider.Page, error) {
	query := url.Values{}
	query.Set("games[]", strconv.FormatInt(q.Game.Provider1ID, 10))
	query.Set("with[]", "matches")
	if q.Mode == provider.ListRecent {
		query.Set("is_over", "true")
		if len(q.TournamentIDs) > 0 {
			query.Set("tournaments[]", strconv.FormatInt(q.TournamentIDs[0], 10))
		}
	}
	query.Set("page", strconv.Itoa(q.Page))

	doc, err := c.get(ctx, "series", query)
	if err != nil {
		return provider.Page{}, fmt.Errorf("list series: %w", err)
	}
	if !doc.Body.Has("data") {
		c.logger.WarnContext(ctx, "provider1 listing has no data", "url", doc.URL)
	}
	return provider.Page{
		URL:      doc.URL,
		Matches:  providerhttp.Objects(doc.Body["data"]),
		LastPage: int(doc.Body.Int64("last_page")),
	}, nil
}

// ExpandMatch loads the series together with its matches.
func (c *Client) ExpandMatch(ctx context.Context, _ esport.GameConfig, listing provider.Payload) (provider.Document, error) {
	query := url.Values{}
	query.Set("with[]", "matches")
	doc, err := c.get(ctx, "series/"+strconv.FormatInt(listing.Int64("id"), 10), query)
	if err != nil {
		return provider.Document{}, fmt.Errorf("get series %d: %w", listing.Int64("id"), err)
	}
	return doc, nil
}

func (c *Client) FetchGame(ctx context.Context, _ esport.GameConfig, gameID int64) (provider.Document, error) {
	query := url.Values{}
	query.Set("with[]", "summary")
	doc, err := c.get(ctx, "matches/"+strconv.FormatInt(gameID, 10), query)
	if err != nil {
		return provider.Document{}, fmt.Errorf("get match %d: %w", gameID, err)
	}
	return doc, nil
}

// Monitor times a fresh token request.
func (c *Client) Monitor(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if _, err := c.authenticate(ctx, ""); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// get calls endpoint with the current token, authenticating first when there
// is none. A rejected token is renewed once and the call repeated.
func (c *Client) get(ctx context.Context, endpoint string, query url.Values) (provider.Document, error) {
	token := c.currentToken()
	if token == "" {
		var err error
		if token, err = c.authenticate(ctx, ""); err != nil {
			return provider.Document{}, err
		}
	}

	displayURL := c.endpointURL(endpoint, query)
	resp, err := c.send(ctx, endpoint, query, token)
	if statusErr, ok := providerhttp.AsStatusError(err); ok && statusErr.StatusCode == http.StatusUnauthorized {
		description := errorDescription(statusErr.Body)
		if description != invalidTokenError {
			return provider.Document{}, fmt.Errorf("%w: provider1 rejected request: %s", usecase.ErrAuthentication, description)
		}
		c.logger.InfoContext(ctx, "provider1 token rejected, reauthenticating", "url", displayURL)
		if token, err = c.authenticate(ctx, token); err != nil {
			return provider.Document{}, err
		}
		resp, err = c.send(ctx, endpoint, query, token)
		if statusErr, ok := providerhttp.AsStatusError(err); ok && statusErr.StatusCode == http.StatusUnauthorized {
			return provider.Document{}, fmt.Errorf("%w: provider1 rejected renewed token: %s", usecase.ErrAuthentication, errorDescription(statusErr.Body))
		}
	}
	if err != nil {
		return provider.Document{}, err
	}

	body, err := providerhttp.DecodeObject(resp.Body)
	if err != nil {
		return provider.Document{}, err
	}
	return provider.Document{URL: displayURL, Body: body}, nil
}

func (c *Client) send(ctx context.Context, endpoint string, query url.Values, token string) (providerhttp.Response, error) {
	withToken := url.Values{}
	for key, values := range query {
		withToken[key] = values
	}
	withToken.Set(tokenParam, token)
	return c.http.Do(ctx, providerhttp.Request{
		URL:    c.endpointURL(endpoint, withToken),
		Redact: c.redact(token),
	})
}

// authenticate requests a new token unless another caller already replaced
// stale. Concurrent callers share one token request.
func (c *Client) authenticate(ctx context.Context, stale string) (string, error) {
	token, err, _ := c.flight.Do("token", func() (string, error) {
		if current := c.currentToken(); current != "" && stale != "" && current != stale {
			return current, nil
		}

		form := url.Values{}
		form.Set("grant_type", "client_credentials")
		form.Set("client_id", c.clientID)
		form.Set("client_secret", c.clientSecret)

		resp, err := c.http.Do(ctx, providerhttp.Request{
			URL:    c.baseURL + "/oauth/access_token",
			Form:   form,
			Redact: c.redact(c.clientSecret),
		})
		if err != nil {
			if statusErr, ok := providerhttp.AsStatusError(err); ok {
				return "", fmt.Errorf("%w: provider1 authentication: %s", usecase.ErrAuthentication, errorDescription(statusErr.Body))
			}
			return "", fmt.Errorf("provider1 authentication: %w", err)
		}

		var grant tokenResponse
		if err := sonic.Unmarshal(resp.Body, &grant); err != nil {
			return "", fmt.Errorf("decode token response: %w", err)
		}
		if grant.Error != "" || grant.AccessToken == "" {
			return "", fmt.Errorf("%w: provider1 authentication: %s", usecase.ErrAuthentication, grant.ErrorDescription)
		}

		c.mu.Lock()
		c.token = grant.AccessToken
		c.mu.Unlock()
		return grant.AccessToken, nil
	})
	if err != nil {
		c.logger.WarnContext(ctx, "provider1 authentication failed", "error", err)
		return "", err
	}
	return token, nil
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) endpointURL(endpoint string, query url.Values) string {
	fullURL := c.baseURL + "/" + endpoint
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL
}

func (c *Client) redact(secret string) func(string) string {
	return func(text string) string {
		return providerhttp.RedactParam(text, tokenParam, secret)
	}
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func errorDescription(body []byte) string {
	var out tokenResponse
	if err := sonic.Unmarshal(body, &out); err != nil {
		return strings.TrimSpace(string(body))
	}
	if out.ErrorDescription != "" {
		return out.ErrorDescription
	}
	return out.Error
}
