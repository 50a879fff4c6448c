package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/backfill"
	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
)

type backfillRepository struct {
	st *state
}

func (r backfillRepository) Reset(_ context.Context, provider esport.Provider, game esport.Game) error {
	for id, g := range r.st.pastGames {
		if g.Provider == provider && g.Game == game {
			delete(r.st.pastGames, id)
			delete(r.st.pastRows, id)
		}
	}
	key := summaryKey{provider: provider, game: game}
	if _, ok := r.st.summaries[key]; ok {
		r.st.summaries[key] = backfill.Summary{Provider: provider, Game: game}
	}
	return nil
}

func (r backfillRepository) FindByExternalID(_ context.Context, provider esport.Provider, externalID int64) (backfill.Game, bool, error) {
	for _, g := range r.st.pastGames {
		if g.Provider == provider && g.ExternalID == externalID {
			return g, true, nil
		}
	}
	return backfill.Game{}, false, nil
}

func (r backfillRepository) Insert(_ context.Context, item backfill.Game) (int64, error) {
	item.ID = r.st.nextID()
	r.st.pastGames[item.ID] = item
	return item.ID, nil
}

func (r backfillRepository) Update(_ context.Context, id int64, item backfill.Game, columns []string, at time.Time) error {
	stored, ok := r.st.pastGames[id]
	if !ok {
		return fmt.Errorf("past game %d not found", id)
	}
	for _, column := range columns {
		switch column {
		case backfill.ColumnSourceURL:
			stored.SourceURL = item.SourceURL
		case backfill.ColumnTitle:
			stored.Title = item.Title
		case backfill.ColumnStartAt:
			stored.StartAt = item.StartAt
		case backfill.ColumnFinishAt:
			stored.FinishAt = item.FinishAt
		case backfill.ColumnTournamentID:
			stored.TournamentID = item.TournamentID
		case backfill.ColumnTournamentTitle:
			stored.TournamentTitle = item.TournamentTitle
		default:
			return fmt.Errorf("unknown past game column %q", column)
		}
	}
	stored.UpdatedAt = &at
	r.st.pastGames[id] = stored
	return nil
}

func (r backfillRepository) ReplaceStats(_ context.Context, gameID int64, sourceURL string, teams, players gamestats.EntitySet) error {
	if _, ok := r.st.pastGames[gameID]; !ok {
		return fmt.Errorf("past game %d not found", gameID)
	}
	rows := make([]pastRow, 0, len(teams)+len(players))
	for _, id := range teams.IDs() {
		rows = append(rows, pastRow{Kind: gamestats.KindTeam, EntityID: id, SourceURL: sourceURL, Values: teams[id].Clone()})
	}
	for _, id := range players.IDs() {
		rows = append(rows, pastRow{Kind: gamestats.KindPlayer, EntityID: id, SourceURL: sourceURL, Values: players[id].Clone()})
	}
	r.st.pastRows[gameID] = rows
	return nil
}

func (r backfillRepository) AccumulateSummary(_ context.Context, pass backfill.Summary, at time.Time) error {
	key := summaryKey{provider: pass.Provider, game: pass.Game}
	total, ok := r.st.summaries[key]
	if !ok {
		total = backfill.Summary{Provider: pass.Provider, Game: pass.Game}
	}
	total.Add(pass)
	total.UpdatedAt = &at
	r.st.summaries[key] = total
	return nil
}

func (r backfillRepository) GetSummary(_ context.Context, provider esport.Provider, game esport.Game) (backfill.Summary, bool, error) {
	total, ok := r.st.summaries[summaryKey{provider: provider, game: game}]
	return total, ok, nil
}
