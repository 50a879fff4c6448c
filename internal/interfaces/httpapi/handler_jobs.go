package httpapi

import (
	"net/http"

	"github.com/riskibarqy/esport-datanal/internal/usecase"
)

type watchCycleTargetRequest struct {
	Provider string `json:"provider" validate:"required"`
	Game     string `json:"game" validate:"required"`
}

type watchCycleRequest struct {
	Targets []watchCycleTargetRequest `json:"targets" validate:"dive"`
}

// RunWatchCycle runs discover then collect for the requested targets, or for
// every provider and game when the body is empty.
func (h *Handler) RunWatchCycle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "RunWatchCycle")
	defer span.End()

	var req watchCycleRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	targets := make([]usecase.CycleTarget, 0, len(req.Targets))
	for _, target := range req.Targets {
		targets = append(targets, usecase.CycleTarget{Provider: target.Provider, Game: target.Game})
	}

	result, err := h.cycleService.RunWatchCycle(ctx, targets)
	if err != nil {
		h.logger.ErrorContext(ctx, "run watch cycle failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if result.FailedCount > 0 {
		h.logger.WarnContext(ctx, "watch cycle finished with failures",
			"target_count", result.TargetCount,
			"failed_count", result.FailedCount,
		)
	}

	writeSuccess(w, http.StatusOK, result)
}
