// Package provider2 is the HTTP client of the provider2 API. Calls carry a
// static token and listings paginate through X-Total / X-Per-Page headers.
package provider2

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/riskibarqy/esport-datanal/external/providerhttp"
	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/provider"
	"github.com/riskibarqy/esport-datanal/internal/usecase"
)

const (
	DefaultRequestsPerSecond = 2.5

	tokenParam = "token"
	pageSize   = 100
)

type ClientConfig struct {
	Transport         providerhttp.Config
	BaseURL           string
	Token             string
	RequestsPerSecond float64
	Logger            *logging.Logger
}

type Client struct {
	http    *providerhttp.Client
	baseURL string
	token   string
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpCfg := cfg.Transport
	httpCfg.Name = esport.ProviderTwo.String()
	httpCfg.Logger = logger
	httpCfg.RequestsPerSecond = cfg.RequestsPerSecond
	if httpCfg.RequestsPerSecond <= 0 {
		httpCfg.RequestsPerSecond = DefaultRequestsPerSecond
	}

	return &Client{
		http:    providerhttp.NewClient(httpCfg),
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		token:   strings.TrimSpace(cfg.Token),
		logger:  logger,
	}
}

// TournamentScopes returns one scope: the listing filters by every league
// at once.
func (c *Client) TournamentScopes(_ provider.ListMode, ids []int64) [][]int64 {
	return [][]int64{ids}
}

// ListMatches reads one page of finished matches. Live and history listings
// share the endpoint.
func (c *Client) ListMatches(ctx context.Context, q provider.ListQuery) (provider.Page, error) {
	leagues := make([]string, 0, len(q.TournamentIDs))
	for _, id := range q.TournamentIDs {
		leagues = append(leagues, strconv.FormatInt(id, 10))
	}

	query := url.Values{}
	query.Set("filter[status]", "finished")
	query.Set("filter[league_id]", strings.Join(leagues, ","))
	query.Set("page[size]", strconv.Itoa(pageSize))
	query.Set("page[number]", strconv.Itoa(q.Page))

	endpoint := q.Game.Provider2Slug + "/matches/past"
	resp, err := c.get(ctx, endpoint, query)
	if err != nil {
		return provider.Page{}, fmt.Errorf("list matches: %w", err)
	}
	matches, err := providerhttp.DecodeList(resp.Body)
	if err != nil {
		return provider.Page{}, err
	}
	return provider.Page{
		URL:      c.endpointURL(endpoint, query),
		Matches:  matches,
		LastPage: lastPage(resp.Header),
	}, nil
}

// ExpandMatch returns the listing as is; listed matches already embed their
// games.
func (c *Client) ExpandMatch(_ context.Context, cfg esport.GameConfig, listing provider.Payload) (provider.Document, error) {
	endpoint := cfg.Provider2Slug + "/matches/" + strconv.FormatInt(listing.Int64("id"), 10)
	return provider.Document{URL: c.endpointURL(endpoint, nil), Body: listing}, nil
}

func (c *Client) FetchGame(ctx context.Context, cfg esport.GameConfig, gameID int64) (provider.Document, error) {
	endpoint := cfg.Provider2Slug + "/games/" + strconv.FormatInt(gameID, 10)
	resp, err := c.get(ctx, endpoint, nil)
	if err != nil {
		return provider.Document{}, fmt.Errorf("get game %d: %w", gameID, err)
	}
	body, err := providerhttp.DecodeObject(resp.Body)
	if err != nil {
		return provider.Document{}, err
	}
	if problem := body.String("error"); problem != "" {
		return provider.Document{}, fmt.Errorf("get game %d: provider error: %s", gameID, problem)
	}
	return provider.Document{URL: c.endpointURL(endpoint, nil), Body: body}, nil
}

// Monitor times an authenticated request to the live listing.
func (c *Client) Monitor(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if _, err := c.get(ctx, "lives", nil); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values) (providerhttp.Response, error) {
	withToken := url.Values{}
	for key, values := range query {
		withToken[key] = values
	}
	withToken.Set(tokenParam, c.token)

	resp, err := c.http.Do(ctx, providerhttp.Request{
		URL: c.endpointURL(endpoint, withToken),
		Redact: func(text string) string {
			return providerhttp.RedactParam(text, tokenParam, c.token)
		},
	})
	if statusErr, ok := providerhttp.AsStatusError(err); ok && statusErr.StatusCode == http.StatusUnauthorized {
		return providerhttp.Response{}, fmt.Errorf("%w: provider2 rejected token: %s", usecase.ErrAuthentication, errorMessage(statusErr.Body))
	}
	return resp, err
}

func (c *Client) endpointURL(endpoint string, query url.Values) string {
	fullURL := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL
}

// lastPage is ceil(X-Total / X-Per-Page), or 0 when the headers are absent.
func lastPage(header http.Header) int {
	total, err := strconv.Atoi(header.Get("X-Total"))
	if err != nil || total <= 0 {
		return 0
	}
	perPage, err := strconv.Atoi(header.Get("X-Per-Page"))
	if err != nil || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

func errorMessage(body []byte) string {
	payload, err := providerhttp.DecodeObject(body)
	if err != nil {
		return strings.TrimSpace(string(body))
	}
	return payload.String("error")
}
