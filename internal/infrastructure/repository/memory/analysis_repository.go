package memory

import (
	"context"

	"github.com/riskibarqy/esport-datanal/internal/domain/analysis"
)

type analysisRepository struct {
	st *state
}

// Save keeps one report per (provider, game, tournament); a nil tournament
// is stored under id 0.
func (r analysisRepository) Save(_ context.Context, report analysis.Report) error {
	key := analysisKey{provider: report.Provider, game: report.Game}
	if report.TournamentID != nil {
		key.tournamentID = *report.TournamentID
	}
	r.st.analyses[key] = report
	return nil
}
