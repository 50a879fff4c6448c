package httpapi

import "net/http"

// route is one guarded endpoint under /v1/internal.
type route struct {
	pattern string
	handle  http.HandlerFunc
}

func providerRoutes(h *Handler) []route {
	return []route{
		{"POST /v1/internal/providers/{provider}/games/{game}/watch", h.WatchCurrentGames},
		{"POST /v1/internal/providers/{provider}/games/{game}/collect", h.CollectCurrentData},
		{"POST /v1/internal/providers/{provider}/games/{game}/grab", h.GrabPastData},
		{"POST /v1/internal/providers/{provider}/games/{game}/analyze", h.AnalyzeCurrentData},
		{"GET /v1/internal/providers/{provider}/monitor", h.MonitorProvider},
		{"GET /v1/internal/monitor", h.MonitorProviders},
	}
}

func settingsRoutes(h *Handler) []route {
	return []route{
		{"GET /v1/internal/settings/watch-limit", h.GetWatchLimit},
		{"PUT /v1/internal/settings/watch-limit", h.SetWatchLimit},
		{"GET /v1/internal/settings/games/{game}/tournaments", h.ListTournaments},
		{"PUT /v1/internal/settings/games/{game}/tournaments", h.ReplaceTournaments},
	}
}

func jobRoutes(h *Handler) []route {
	return []route{
		{"POST /v1/internal/jobs/watch-cycle", h.RunWatchCycle},
	}
}

func registerGuarded(mux *http.ServeMux, token string, groups ...[]route) {
	for _, group := range groups {
		for _, rt := range group {
			mux.Handle(rt.pattern, RequireInternalJobToken(token, rt.handle))
		}
	}
}
