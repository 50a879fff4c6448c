package httpapi

import (
	"net/http"

	"github.com/riskibarqy/esport-datanal/internal/domain/tournament"
)

type watchLimitDTO struct {
	Minutes int `json:"minutes" validate:"required,gt=0"`
}

type tournamentDTO struct {
	ID                    string `json:"id" validate:"required"`
	Name                  string `json:"name,omitempty"`
	Provider1TournamentID int64  `json:"provider1_tournament_id" validate:"gte=0"`
	Provider2LeagueID     int64  `json:"provider2_league_id" validate:"gte=0"`
}

type replaceTournamentsRequest struct {
	Tournaments []tournamentDTO `json:"tournaments" validate:"dive"`
}

func (h *Handler) GetWatchLimit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "GetWatchLimit")
	defer span.End()

	minutes, err := h.settingsService.GetWatchLimitMinutes(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get watch limit failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, watchLimitDTO{Minutes: minutes})
}

func (h *Handler) SetWatchLimit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "SetWatchLimit")
	defer span.End()

	var req watchLimitDTO
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.settingsService.SetWatchLimitMinutes(ctx, req.Minutes); err != nil {
		h.logger.ErrorContext(ctx, "set watch limit failed", "minutes", req.Minutes, "error", err)
		writeError(ctx, w, err)
		return
	}
	h.logger.InfoContext(ctx, "watch limit updated", "minutes", req.Minutes)

	writeSuccess(w, http.StatusOK, req)
}

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ListTournaments")
	defer span.End()

	items, err := h.settingsService.ListTournaments(ctx, r.PathValue("game"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	out := make([]tournamentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, tournamentToDTO(item))
	}
	writeSuccess(w, http.StatusOK, map[string]any{"tournaments": out})
}

func (h *Handler) ReplaceTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startHandlerSpan(r, "ReplaceTournaments")
	defer span.End()

	var req replaceTournamentsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]tournament.Tournament, 0, len(req.Tournaments))
	for _, item := range req.Tournaments {
		items = append(items, tournament.Tournament{
			ID:                    item.ID,
			Name:                  item.Name,
			Provider1TournamentID: item.Provider1TournamentID,
			Provider2LeagueID:     item.Provider2LeagueID,
		})
	}

	gameName := r.PathValue("game")
	if err := h.settingsService.ReplaceTournaments(ctx, gameName, items); err != nil {
		h.logger.WarnContext(ctx, "replace tournaments failed", "game", gameName, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"tournaments": req.Tournaments})
}

func tournamentToDTO(item tournament.Tournament) tournamentDTO {
	return tournamentDTO{
		ID:                    item.ID,
		Name:                  item.Name,
		Provider1TournamentID: item.Provider1TournamentID,
		Provider2LeagueID:     item.Provider2LeagueID,
	}
}
