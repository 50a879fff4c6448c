package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/infrastructure/repository/memory"
	providermock "github.com/riskibarqy/esport-datanal/internal/mocks/provider"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
	"github.com/riskibarqy/esport-datanal/internal/provider"
	"github.com/riskibarqy/esport-datanal/internal/provider/provider1"
	"github.com/riskibarqy/esport-datanal/internal/provider/provider2"
	"github.com/riskibarqy/esport-datanal/internal/usecase"
	"github.com/stretchr/testify/mock"
)

const testJobToken = "job-token"

type testEnv struct {
	router http.Handler
	one    *providermock.Source
	two    *providermock.Source
}

type envelope struct {
	APIVersion string         `json:"apiVersion"`
	Data       map[string]any `json:"data"`
	Error      *struct {
		Code   int    `json:"code"`
		Status string `json:"status"`
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	configs := esport.DefaultGameConfigs()
	one := providermock.NewSource(t)
	two := providermock.NewSource(t)
	registry, err := provider.NewRegistry(
		provider.Adapter{
			Provider:    esport.ProviderOne,
			Source:      one,
			Reader:      provider1.NewReader(),
			Validator:   provider1.NewValidator(configs),
			Transformer: provider1.NewTransformer(configs),
		},
		provider.Adapter{
			Provider:    esport.ProviderTwo,
			Source:      two,
			Reader:      provider2.NewReader(),
			Validator:   provider2.NewValidator(),
			Transformer: provider2.NewTransformer(),
		},
	)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	logger := logging.NewNop()
	store := memory.NewStore()
	settings := usecase.NewSettingsService(memory.NewWatchLimitStore(0), memory.NewTournamentRepository(nil), configs, 20)
	watcher := usecase.NewWatcherService(registry, store, settings, nil, time.Minute, logger)
	handler := NewHandler(
		watcher,
		usecase.NewGrabberService(registry, store, settings, nil, 0, logger),
		usecase.NewAnalyzerService(registry, store, settings, logger),
		usecase.NewMonitorService(registry, time.Second, logger),
		usecase.NewCycleService(watcher, registry, settings, 2, logger),
		settings,
		logger,
	)

	return testEnv{
		router: NewRouter(handler, logger, testJobToken),
		one:    one,
		two:    two,
	}
}

func (e testEnv) do(t *testing.T, method, path, body string, withToken bool) (int, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if withToken {
		req.Header.Set(internalJobTokenHeader, testJobToken)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var out envelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal response body %q: %v", rec.Body.String(), err)
	}
	return rec.Code, out
}

func errorReason(t *testing.T, body envelope) string {
	t.Helper()
	if body.Error == nil || len(body.Error.Errors) == 0 {
		t.Fatalf("expected error body, got %+v", body)
	}
	return body.Error.Errors[0].Reason
}

func TestHealthz_NoTokenRequired(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	code, body := env.do(t, http.MethodGet, "/healthz", "", false)
	if code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", code, http.StatusOK)
	}
	if body.Data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %+v", body.Data)
	}
}

func TestInternalRoutes_RequireToken(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/v1/internal/providers/provider1/games/csgo/watch"},
		{http.MethodPost, "/v1/internal/providers/provider1/games/csgo/collect"},
		{http.MethodPost, "/v1/internal/providers/provider1/games/csgo/grab"},
		{http.MethodPost, "/v1/internal/providers/provider1/games/csgo/analyze"},
		{http.MethodGet, "/v1/internal/providers/provider1/monitor"},
		{http.MethodGet, "/v1/internal/monitor"},
		{http.MethodGet, "/v1/internal/settings/watch-limit"},
		{http.MethodGet, "/v1/internal/settings/games/csgo/tournaments"},
		{http.MethodPost, "/v1/internal/jobs/watch-cycle"},
	}
	for _, tc := range paths {
		code, body := env.do(t, tc.method, tc.path, "", false)
		if code != http.StatusUnauthorized {
			t.Fatalf("%s %s: unexpected status: got=%d want=%d", tc.method, tc.path, code, http.StatusUnauthorized)
		}
		if reason := errorReason(t, body); reason != "unauthorized" {
			t.Fatalf("%s %s: unexpected reason %q", tc.method, tc.path, reason)
		}
	}
}

func TestWatchCurrentGames_ErrorMapping(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	code, body := env.do(t, http.MethodPost, "/v1/internal/providers/provider3/games/csgo/watch", "", true)
	if code != http.StatusBadRequest || errorReason(t, body) != "unknownProvider" {
		t.Fatalf("unknown provider: got=%d reason=%q", code, errorReason(t, body))
	}

	code, body = env.do(t, http.MethodPost, "/v1/internal/providers/provider1/games/chess/watch", "", true)
	if code != http.StatusBadRequest || errorReason(t, body) != "invalidInput" {
		t.Fatalf("unknown game: got=%d reason=%q", code, errorReason(t, body))
	}

	code, body = env.do(t, http.MethodPost, "/v1/internal/providers/provider1/games/csgo/watch", "", true)
	if code != http.StatusNotFound || errorReason(t, body) != "noTournaments" {
		t.Fatalf("no tournaments: got=%d reason=%q", code, errorReason(t, body))
	}
}

func TestGrabAndAnalyze_RejectInvalidBodies(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	cases := []struct {
		name string
		path string
		body string
	}{
		{name: "unknown field", path: "/v1/internal/providers/provider1/games/csgo/grab", body: `{"since":"2024-01-01"}`},
		{name: "bad date", path: "/v1/internal/providers/provider1/games/csgo/grab", body: `{"date_from":"01/02/2024"}`},
		{name: "malformed json", path: "/v1/internal/providers/provider2/games/dota2/grab", body: `{`},
		{name: "zero tournament", path: "/v1/internal/providers/provider1/games/lol/analyze", body: `{"tournament_id":0}`},
	}
	for _, tc := range cases {
		code, body := env.do(t, http.MethodPost, tc.path, tc.body, true)
		if code != http.StatusBadRequest {
			t.Fatalf("%s: unexpected status: got=%d want=%d", tc.name, code, http.StatusBadRequest)
		}
		if reason := errorReason(t, body); reason != "invalidInput" {
			t.Fatalf("%s: unexpected reason %q", tc.name, reason)
		}
	}
}

func TestAnalyze_NothingWatched(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	code, body := env.do(t, http.MethodPost, "/v1/internal/providers/provider1/games/csgo/analyze", "", true)
	if code != http.StatusNotFound {
		t.Fatalf("unexpected status: got=%d want=%d", code, http.StatusNotFound)
	}
	if reason := errorReason(t, body); reason != "nothingToAnalyze" {
		t.Fatalf("unexpected reason %q", reason)
	}
}

func TestWatchLimit_RoundTrip(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	code, body := env.do(t, http.MethodGet, "/v1/internal/settings/watch-limit", "", true)
	if code != http.StatusOK || body.Data["minutes"] != float64(20) {
		t.Fatalf("default watch limit: got=%d data=%+v", code, body.Data)
	}

	code, body = env.do(t, http.MethodPut, "/v1/internal/settings/watch-limit", `{"minutes":0}`, true)
	if code != http.StatusBadRequest {
		t.Fatalf("zero watch limit: got=%d want=%d", code, http.StatusBadRequest)
	}

	code, _ = env.do(t, http.MethodPut, "/v1/internal/settings/watch-limit", `{"minutes":45}`, true)
	if code != http.StatusOK {
		t.Fatalf("set watch limit: got=%d want=%d", code, http.StatusOK)
	}
	code, body = env.do(t, http.MethodGet, "/v1/internal/settings/watch-limit", "", true)
	if code != http.StatusOK || body.Data["minutes"] != float64(45) {
		t.Fatalf("updated watch limit: got=%d data=%+v", code, body.Data)
	}
}

func TestTournaments_ReplaceAndList(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	payload := `{"tournaments":[{"id":"major","name":"Major","provider1_tournament_id":11,"provider2_league_id":22}]}`
	code, _ := env.do(t, http.MethodPut, "/v1/internal/settings/games/csgo/tournaments", payload, true)
	if code != http.StatusOK {
		t.Fatalf("replace tournaments: got=%d want=%d", code, http.StatusOK)
	}

	code, body := env.do(t, http.MethodGet, "/v1/internal/settings/games/csgo/tournaments", "", true)
	if code != http.StatusOK {
		t.Fatalf("list tournaments: got=%d want=%d", code, http.StatusOK)
	}
	items, _ := body.Data["tournaments"].([]any)
	if len(items) != 1 {
		t.Fatalf("unexpected tournaments count: got=%d want=%d", len(items), 1)
	}

	duplicate := `{"tournaments":[{"id":"a"},{"id":"a"}]}`
	code, _ = env.do(t, http.MethodPut, "/v1/internal/settings/games/csgo/tournaments", duplicate, true)
	if code != http.StatusBadRequest {
		t.Fatalf("duplicate tournaments: got=%d want=%d", code, http.StatusBadRequest)
	}

	code, _ = env.do(t, http.MethodPut, "/v1/internal/settings/games/csgo/tournaments", `{"tournaments":[{"id":""}]}`, true)
	if code != http.StatusBadRequest {
		t.Fatalf("missing id: got=%d want=%d", code, http.StatusBadRequest)
	}
}

func TestMonitor_ProviderAndAll(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.one.On("Monitor", mock.Anything).Return(500*time.Millisecond, nil)
	env.two.On("Monitor", mock.Anything).Return(time.Second, nil)

	code, body := env.do(t, http.MethodGet, "/v1/internal/providers/provider1/monitor", "", true)
	if code != http.StatusOK {
		t.Fatalf("monitor provider1: got=%d want=%d", code, http.StatusOK)
	}
	if body.Data["available"] != true || body.Data["elapsed_seconds"] != 0.5 {
		t.Fatalf("unexpected monitor payload: %+v", body.Data)
	}

	code, body = env.do(t, http.MethodGet, "/v1/internal/monitor", "", true)
	if code != http.StatusOK {
		t.Fatalf("monitor all: got=%d want=%d", code, http.StatusOK)
	}
	providers, _ := body.Data["providers"].([]any)
	if len(providers) != 2 {
		t.Fatalf("unexpected providers count: got=%d want=%d", len(providers), 2)
	}

	code, _ = env.do(t, http.MethodGet, "/v1/internal/providers/provider9/monitor", "", true)
	if code != http.StatusBadRequest {
		t.Fatalf("unknown provider: got=%d want=%d", code, http.StatusBadRequest)
	}
}

func TestRunWatchCycle_SkipsTargetsWithoutTournaments(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	code, body := env.do(t, http.MethodPost, "/v1/internal/jobs/watch-cycle", "", true)
	if code != http.StatusOK {
		t.Fatalf("watch cycle: got=%d want=%d", code, http.StatusOK)
	}
	if body.Data["target_count"] != float64(6) || body.Data["skipped_count"] != float64(6) {
		t.Fatalf("unexpected cycle payload: %+v", body.Data)
	}

	code, _ = env.do(t, http.MethodPost, "/v1/internal/jobs/watch-cycle", `{"targets":[{"provider":"provider1"}]}`, true)
	if code != http.StatusBadRequest {
		t.Fatalf("target without game: got=%d want=%d", code, http.StatusBadRequest)
	}
}
