package httpapi

import "net/http"

func (h *Handler) MonitorProvider(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "MonitorProvider")
	defer span.End()

	providerName := r.PathValue("provider")
	result, err := h.monitorService.Monitor(ctx, providerName)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !result.Available {
		h.logger.WarnContext(ctx, "provider unavailable", "provider", providerName, "error", result.Error)
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *Handler) MonitorProviders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "MonitorProviders")
	defer span.End()

	writeSuccess(w, http.StatusOK, map[string]any{
		"providers": h.monitorService.MonitorAll(ctx),
	})
}
