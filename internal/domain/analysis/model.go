package analysis

import (
	"math"
	"sort"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
)

var (
	ErrNoWatchedGames = crerr.New("no games to watch")
	ErrNoStats        = crerr.New("no games with stats")
)

// Report is the watch quality summary stored in current_game_analysis.
type Report struct {
	Provider                              esport.Provider `json:"provider"`
	Game                                  esport.Game     `json:"game"`
	TournamentID                          *int64          `json:"tournament_id,omitempty"`
	GamesWatchCount                       int             `json:"games_watch_count"`
	GamesWithStatsCount                   int             `json:"games_with_stats_count"`
	GamesWithStatsPercent                 float64         `json:"games_with_stats_percent"`
	GamesCorrectedCount                   int             `json:"games_corrected_count"`
	GamesCorrectedPercent                 float64         `json:"games_corrected_percent"`
	CorrectionCount                       int             `json:"correction_count"`
	CorrectionPerGameAverage              float64         `json:"correction_per_game_average"`
	EndToFirstStatsAverageSeconds         float64         `json:"end_to_first_stats_average_seconds"`
	FirstToLastCorrectionAverageSeconds   float64         `json:"first_to_last_correction_average_seconds"`
	DatapointsStatsCount                  int             `json:"datapoints_stats_count"`
	DatapointsCorrectionCount             int             `json:"datapoints_correction_count"`
	DatapointsCorrectionPercent           float64         `json:"datapoints_correction_percent"`
	DatapointsCorrectionPerSnapshotMax    int             `json:"datapoints_correction_per_snapshot_max"`
	DatapointsCorrectionPerSnapshotMedian float64         `json:"datapoints_correction_per_snapshot_median"`
	UpdatedAt                             time.Time       `json:"updated_at"`
}

// SnapshotStat is one retained stats snapshot and the number of datapoints
// it changed relative to the previous one of the same game.
type SnapshotStat struct {
	ID         int64
	InsertedAt time.Time
	Changes    int
}

// GameHistory is the snapshot timeline of one watched game, oldest first.
type GameHistory struct {
	WatchID   int64
	FinishAt  *time.Time
	Snapshots []SnapshotStat
}

// Compute summarises the histories. datapoints is the per-player datapoint
// count of the game.
func Compute(histories []GameHistory, datapoints int) (Report, error) {
	var report Report
	report.GamesWatchCount = len(histories)
	if report.GamesWatchCount == 0 {
		return Report{}, ErrNoWatchedGames
	}

	var (
		endToFirst      []float64
		firstToLast     []float64
		perSnapshot     []int
		snapshotsInGame = 0
	)
	for _, h := range histories {
		if len(h.Snapshots) == 0 {
			continue
		}
		report.GamesWithStatsCount++
		snapshotsInGame += len(h.Snapshots)

		first := h.Snapshots[0]
		if h.FinishAt != nil {
			endToFirst = append(endToFirst, first.InsertedAt.Sub(*h.FinishAt).Seconds())
		}
		if len(h.Snapshots) < 2 {
			continue
		}

		report.GamesCorrectedCount++
		report.CorrectionCount += len(h.Snapshots) - 1
		last := h.Snapshots[len(h.Snapshots)-1]
		firstToLast = append(firstToLast, last.InsertedAt.Sub(first.InsertedAt).Seconds())
		for i, s := range h.Snapshots {
			changes := s.Changes
			if i == 0 {
				changes = 0
			}
			perSnapshot = append(perSnapshot, changes)
		}
	}
	if report.GamesWithStatsCount == 0 {
		return Report{}, ErrNoStats
	}

	report.GamesWithStatsPercent = percent(report.GamesWithStatsCount, report.GamesWatchCount)
	report.GamesCorrectedPercent = percent(report.GamesCorrectedCount, report.GamesWithStatsCount)
	if report.GamesCorrectedCount > 0 {
		report.CorrectionPerGameAverage = round2(float64(report.CorrectionCount) / float64(report.GamesCorrectedCount))
	}
	report.EndToFirstStatsAverageSeconds = round2(mean(endToFirst))
	report.FirstToLastCorrectionAverageSeconds = round2(mean(firstToLast))

	report.DatapointsStatsCount = esport.PlayersPerTeam * datapoints * snapshotsInGame
	for _, n := range perSnapshot {
		report.DatapointsCorrectionCount += n
		if n > report.DatapointsCorrectionPerSnapshotMax {
			report.DatapointsCorrectionPerSnapshotMax = n
		}
	}
	report.DatapointsCorrectionPercent = percent(report.DatapointsCorrectionCount, report.DatapointsStatsCount)
	report.DatapointsCorrectionPerSnapshotMedian = round2(median(perSnapshot))

	return report, nil
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) * 100 / float64(total))
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
