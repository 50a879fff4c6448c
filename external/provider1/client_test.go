package provider1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/esport-datanal/external/providerhttp"
	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/provider"
	"github.com/riskibarqy/esport-datanal/internal/usecase"
)

type fakeAPI struct {
	tokens    atomic.Int32
	validFrom atomic.Int32
	series    atomic.Int32
}

func (f *fakeAPI) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("client_secret") != "secret" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"Client authentication failed."}`))
			return
		}
		n := f.tokens.Add(1)
		_, _ = w.Write([]byte(`{"access_token":"token-` + string(rune('0'+n)) + `"}`))
	})
	mux.HandleFunc("GET /series", func(w http.ResponseWriter, r *http.Request) {
		f.series.Add(1)
		if !f.accepts(r) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_token","error_description":"Access token is not valid."}`))
			return
		}
		if r.URL.Query().Get("tournaments[]") != "42" || r.URL.Query().Get("is_over") != "true" {
			t.Fatalf("unexpected listing query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":7,"tournament_id":42,"end":"2026-03-01 12:00:00"}],"last_page":3}`))
	})
	mux.HandleFunc("GET /matches/{id}", func(w http.ResponseWriter, r *http.Request) {
		if !f.accepts(r) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"invalid_token","error_description":"Access token is not valid."}`))
			return
		}
		if r.URL.Query().Get("with[]") != "summary" {
			t.Fatalf("unexpected detail query: %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"id":` + r.PathValue("id") + `,"match_summary":{}}`))
	})
	return mux
}

// accepts treats tokens issued from validFrom onwards as valid.
func (f *fakeAPI) accepts(r *http.Request) bool {
	token := r.URL.Query().Get("access_token")
	if len(token) != len("token-1") {
		return false
	}
	return int32(token[len(token)-1]-'0') >= f.validFrom.Load()
}

func newTestClient(srv *httptest.Server, secret string) *Client {
	return NewClient(ClientConfig{
		Transport: providerhttp.Config{
			HTTPClient: srv.Client(),
			Backoff:    func(int) time.Duration { return time.Millisecond },
		},
		BaseURL:           srv.URL + "/",
		ClientID:          "client",
		ClientSecret:      secret,
		RequestsPerSecond: 1000,
		Logger:            logging.NewNop(),
	})
}

func TestClientListMatches_AuthenticatesAndPaginates(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	client := newTestClient(srv, "secret")
	page, err := client.ListMatches(context.Background(), provider.ListQuery{
		Mode:          provider.ListRecent,
		Game:          esport.GameConfig{Provider1ID: 5},
		TournamentIDs: []int64{42},
		Page:          1,
	})
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(page.Matches) != 1 || page.Matches[0].Int64("id") != 7 {
		t.Fatalf("unexpected matches: %+v", page.Matches)
	}
	if page.LastPage != 3 {
		t.Fatalf("unexpected last page: got=%d want=%d", page.LastPage, 3)
	}
	if got := api.tokens.Load(); got != 1 {
		t.Fatalf("unexpected token requests: got=%d want=%d", got, 1)
	}
}

func TestClientFetchGame_ReauthenticatesOnceOnInvalidToken(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	client := newTestClient(srv, "secret")
	ctx := context.Background()
	if _, err := client.FetchGame(ctx, esport.GameConfig{}, 11); err != nil {
		t.Fatalf("first fetch: %v", err)
	}

	// The provider expires the first token.
	api.validFrom.Store(2)
	doc, err := client.FetchGame(ctx, esport.GameConfig{}, 12)
	if err != nil {
		t.Fatalf("fetch after expiry: %v", err)
	}
	if doc.Body.Int64("id") != 12 {
		t.Fatalf("unexpected body: %+v", doc.Body)
	}
	if got := api.tokens.Load(); got != 2 {
		t.Fatalf("unexpected token requests: got=%d want=%d", got, 2)
	}
	if want := srv.URL + "/matches/12?with%5B%5D=summary"; doc.URL != want {
		t.Fatalf("unexpected document url: got=%s want=%s", doc.URL, want)
	}
}

func TestClientMonitor_AuthenticationFailure(t *testing.T) {
	t.Parallel()

	api := &fakeAPI{}
	srv := httptest.NewServer(api.handler(t))
	defer srv.Close()

	client := newTestClient(srv, "wrong")
	_, err := client.Monitor(context.Background())
	if !errors.Is(err, usecase.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
	if api.series.Load() != 0 {
		t.Fatalf("expected no data requests")
	}
}

func TestClientTournamentScopes(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{BaseURL: "http://unused"})
	recent := client.TournamentScopes(provider.ListRecent, []int64{1, 2})
	if len(recent) != 2 || recent[1][0] != 2 {
		t.Fatalf("unexpected recent scopes: %v", recent)
	}
	history := client.TournamentScopes(provider.ListHistory, []int64{1, 2})
	if len(history) != 1 || len(history[0]) != 2 {
		t.Fatalf("unexpected history scopes: %v", history)
	}
}
