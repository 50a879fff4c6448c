package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/analysis"
)

const analysisTable = "current_game_analysis"

// allTournaments keys the report computed over every tournament.
const allTournaments int64 = 0

type analysisTableModel struct {
	Provider                              string  `db:"data_src"`
	Game                                  string  `db:"game_name"`
	TournamentID                          int64   `db:"data_src_tournament_id"`
	GamesWatchCount                       int     `db:"games_watch_count"`
	GamesWithStatsCount                   int     `db:"games_watch_with_stats_count"`
	GamesWithStatsPercent                 float64 `db:"games_watch_with_stats_percent"`
	GamesCorrectedCount                   int     `db:"games_watch_with_stats_corrected_count"`
	GamesCorrectedPercent                 float64 `db:"games_watch_with_stats_corrected_percent"`
	CorrectionCount                       int     `db:"games_stats_correction_count"`
	CorrectionPerGameAverage              float64 `db:"games_stats_correction_per_game_average_count"`
	EndToFirstStatsAverageSeconds         float64 `db:"games_stats_game_end_save_stats_average_seconds_diff"`
	FirstToLastCorrectionAverageSeconds   float64 `db:"games_stats_save_stats_last_correction_average_seconds_diff"`
	DatapointsStatsCount                  int     `db:"datapoints_stats_count"`
	DatapointsCorrectionCount             int     `db:"datapoints_stats_correction_count"`
	DatapointsCorrectionPercent           float64 `db:"datapoints_stats_correction_percent"`
	DatapointsCorrectionPerSnapshotMax    int     `db:"datapoints_stats_correction_per_game_max"`
	DatapointsCorrectionPerSnapshotMedian float64 `db:"datapoints_stats_correction_per_game_median"`
	UpdatedAt                             time.Time `db:"analysis_update_datetime"`
}

type analysisRepository struct {
	q dbtx
}

// Save upserts the report keyed by provider, game and tournament.
func (r analysisRepository) Save(ctx context.Context, report analysis.Report) error {
	tournamentID := allTournaments
	if report.TournamentID != nil {
		tournamentID = *report.TournamentID
	}
	model := analysisTableModel{
		Provider:                              report.Provider.String(),
		Game:                                  report.Game.String(),
		TournamentID:                          tournamentID,
		GamesWatchCount:                       report.GamesWatchCount,
		GamesWithStatsCount:                   report.GamesWithStatsCount,
		GamesWithStatsPercent:                 report.GamesWithStatsPercent,
		GamesCorrectedCount:                   report.GamesCorrectedCount,
		GamesCorrectedPercent:                 report.GamesCorrectedPercent,
		CorrectionCount:                       report.CorrectionCount,
		CorrectionPerGameAverage:              report.CorrectionPerGameAverage,
		EndToFirstStatsAverageSeconds:         report.EndToFirstStatsAverageSeconds,
		FirstToLastCorrectionAverageSeconds:   report.FirstToLastCorrectionAverageSeconds,
		DatapointsStatsCount:                  report.DatapointsStatsCount,
		DatapointsCorrectionCount:             report.DatapointsCorrectionCount,
		DatapointsCorrectionPercent:           report.DatapointsCorrectionPercent,
		DatapointsCorrectionPerSnapshotMax:    report.DatapointsCorrectionPerSnapshotMax,
		DatapointsCorrectionPerSnapshotMedian: report.DatapointsCorrectionPerSnapshotMedian,
		UpdatedAt:                             report.UpdatedAt.UTC(),
	}

	query, args, err := insertQuery(analysisTable, model, analysisUpsertSuffix())
	if err != nil {
		return fmt.Errorf("build upsert analysis query: %w", err)
	}
	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert analysis: %w", err)
	}
	return nil
}

func analysisUpsertSuffix() string {
	columns := []string{
		"games_watch_count",
		"games_watch_with_stats_count",
		"games_watch_with_stats_percent",
		"games_watch_with_stats_corrected_count",
		"games_watch_with_stats_corrected_percent",
		"games_stats_correction_count",
		"games_stats_correction_per_game_average_count",
		"games_stats_game_end_save_stats_average_seconds_diff",
		"games_stats_save_stats_last_correction_average_seconds_diff",
		"datapoints_stats_count",
		"datapoints_stats_correction_count",
		"datapoints_stats_correction_percent",
		"datapoints_stats_correction_per_game_max",
		"datapoints_stats_correction_per_game_median",
		"analysis_update_datetime",
	}
	sets := make([]string, 0, len(columns))
	for _, column := range columns {
		sets = append(sets, column+" = EXCLUDED."+column)
	}
	return "ON CONFLICT (data_src, game_name, data_src_tournament_id) DO UPDATE SET " + strings.Join(sets, ", ")
}
