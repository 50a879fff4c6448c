package httpapi

import (
	"net/http"

	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
)

// NewRouter mounts /healthz openly and every /v1/internal route behind the
// job token. Requests pass tracing, then logging, then panic recovery.
func NewRouter(handler *Handler, logger *logging.Logger, internalJobToken string) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handler.Healthz)
	registerGuarded(mux, internalJobToken,
		providerRoutes(handler),
		settingsRoutes(handler),
		jobRoutes(handler),
	)

	var h http.Handler = mux
	h = recoverPanic(logger, h)
	h = RequestLogging(logger, h)
	return RequestTracing(h)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
			writeInternalError(w)
		}()
		next.ServeHTTP(w, r)
	})
}
