package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/config"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	t.Parallel()

	cfg := config.Config{ServiceName: "esport-datanal", ServiceVersion: "dev", AppEnv: config.EnvDev}
	tel, err := Start(cfg, "api", logging.NewNop())
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if got := len(tel.Running()); got != 0 {
		t.Fatalf("unexpected running components: got=%d want=%d", got, 0)
	}
	if err := tel.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestStart_EmptyUptraceDSNIsNoop(t *testing.T) {
	t.Parallel()

	cfg := config.Config{UptraceEnabled: true, UptraceDSN: "  ", ServiceName: "esport-datanal"}
	tel, err := Start(cfg, "scheduler", nil)
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if got := len(tel.Running()); got != 0 {
		t.Fatalf("unexpected running components: got=%v", tel.Running())
	}
}

func TestStart_PprofServesAndStops(t *testing.T) {
	t.Parallel()

	cfg := config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}
	tel, err := Start(cfg, "api", logging.NewNop())
	if err != nil {
		t.Fatalf("start telemetry: %v", err)
	}
	if got := tel.Running(); len(got) != 1 || got[0] != "pprof" {
		t.Fatalf("unexpected running components: got=%v", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := tel.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestPprofMux_ServesIndex(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusOK)
	}
}

func TestServiceName(t *testing.T) {
	t.Parallel()

	cases := map[string]string{"api": "esport-datanal", "": "esport-datanal", "scheduler": "esport-datanal-scheduler"}
	for process, want := range cases {
		if got := serviceName("esport-datanal", process); got != want {
			t.Fatalf("serviceName(%q): got=%q want=%q", process, got, want)
		}
	}
}
