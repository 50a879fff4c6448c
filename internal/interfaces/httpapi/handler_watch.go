package httpapi

import (
	"net/http"

	"github.com/riskibarqy/esport-datanal/internal/usecase"
)

type grabRequest struct {
	DateFrom  string `json:"date_from" validate:"omitempty,datetime=2006-01-02"`
	DateTo    string `json:"date_to" validate:"omitempty,datetime=2006-01-02"`
	DeleteOld bool   `json:"delete_old"`
}

type analyzeRequest struct {
	TournamentID *int64 `json:"tournament_id" validate:"omitempty,gt=0"`
}

func (h *Handler) WatchCurrentGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "WatchCurrentGames")
	defer span.End()

	providerName, gameName := r.PathValue("provider"), r.PathValue("game")
	result, err := h.watcherService.WatchCurrentGames(ctx, providerName, gameName)
	if err != nil {
		h.logger.WarnContext(ctx, "watch current games failed", "provider", providerName, "game", gameName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *Handler) CollectCurrentData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "CollectCurrentData")
	defer span.End()

	providerName, gameName := r.PathValue("provider"), r.PathValue("game")
	result, err := h.watcherService.CollectCurrentData(ctx, providerName, gameName)
	if err != nil {
		h.logger.WarnContext(ctx, "collect current data failed", "provider", providerName, "game", gameName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *Handler) GrabPastData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GrabPastData")
	defer span.End()

	var req grabRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	providerName, gameName := r.PathValue("provider"), r.PathValue("game")
	result, err := h.grabberService.GrabPastData(ctx, providerName, gameName, usecase.GrabInput{
		DateFrom:  req.DateFrom,
		DateTo:    req.DateTo,
		DeleteOld: req.DeleteOld,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "grab past data failed", "provider", providerName, "game", gameName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, result)
}

func (h *Handler) AnalyzeCurrentData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "AnalyzeCurrentData")
	defer span.End()

	var req analyzeRequest
	if err := decodeOptionalJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	providerName, gameName := r.PathValue("provider"), r.PathValue("game")
	report, err := h.analyzerService.Analyze(ctx, providerName, gameName, usecase.AnalyzeInput{TournamentID: req.TournamentID})
	if err != nil {
		h.logger.WarnContext(ctx, "analyze current data failed", "provider", providerName, "game", gameName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, report)
}
