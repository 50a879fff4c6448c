package backfill

import (
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
)

// Column names of past_game_stats that a re-grab may update.
const (
	ColumnSourceURL       = "data_src_url"
	ColumnTitle           = "data_src_game_title"
	ColumnStartAt         = "data_src_start_datetime"
	ColumnFinishAt        = "data_src_finish_datetime"
	ColumnTournamentID    = "data_src_tournament_id"
	ColumnTournamentTitle = "data_src_tournament_title"
)

// Game is a historical game (past_game_stats).
type Game struct {
	ID              int64
	Provider        esport.Provider
	Game            esport.Game
	SourceURL       string
	ExternalID      int64
	Title           string
	StartAt         *time.Time
	FinishAt        *time.Time
	TournamentID    int64
	TournamentTitle *string
	InsertedAt      time.Time
	UpdatedAt       *time.Time
}

// Delta lists the columns whose incoming value differs from stored.
func Delta(stored, incoming Game) []string {
	var out []string
	if stored.SourceURL != incoming.SourceURL {
		out = append(out, ColumnSourceURL)
	}
	if stored.Title != incoming.Title {
		out = append(out, ColumnTitle)
	}
	if !sameTime(stored.StartAt, incoming.StartAt) {
		out = append(out, ColumnStartAt)
	}
	if !sameTime(stored.FinishAt, incoming.FinishAt) {
		out = append(out, ColumnFinishAt)
	}
	if stored.TournamentID != incoming.TournamentID {
		out = append(out, ColumnTournamentID)
	}
	if !sameString(stored.TournamentTitle, incoming.TournamentTitle) {
		out = append(out, ColumnTournamentTitle)
	}
	return out
}

func sameTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func sameString(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Summary holds the backfill counters of past_game_analysis. One grab pass
// produces a Summary which is then added onto the stored totals.
type Summary struct {
	Provider              esport.Provider `json:"provider"`
	Game                  esport.Game     `json:"game"`
	MatchesTotal          int             `json:"matches_total_count"`
	MatchesInvalid        int             `json:"matches_invalid_count"`
	GamesTotal            int             `json:"games_total_count"`
	GamesInvalid          int             `json:"games_invalid_count"`
	DatapointsWanted      int             `json:"datapoints_wanted_count"`
	DatapointsMissing     int             `json:"datapoints_missing_count"`
	DatapointsUnavailable int             `json:"datapoints_unavailable_count"`
	UpdatedAt             *time.Time      `json:"updated_at,omitempty"`
}

func (s Summary) ValidGames() int {
	return s.GamesTotal - s.GamesInvalid
}

// Add accumulates the counters of other into s.
func (s *Summary) Add(other Summary) {
	s.MatchesTotal += other.MatchesTotal
	s.MatchesInvalid += other.MatchesInvalid
	s.GamesTotal += other.GamesTotal
	s.GamesInvalid += other.GamesInvalid
	s.DatapointsWanted += other.DatapointsWanted
	s.DatapointsMissing += other.DatapointsMissing
	s.DatapointsUnavailable += other.DatapointsUnavailable
}

// Finalize derives the datapoint totals of a pass from its valid game count.
func (s *Summary) Finalize(cfg esport.GameConfig) {
	valid := s.ValidGames()
	s.DatapointsWanted = esport.PlayersPerTeam * cfg.Datapoints * valid
	s.DatapointsMissing += esport.PlayersPerTeam * cfg.MissingDatapoints(s.Provider) * valid
}

// DateRange bounds a backfill by the game's start and finish. Either side may
// be open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

const dateLayout = "2006-01-02"

var ErrInvertedDateRange = crerr.New("date_from is after date_to")

// ParseDateRange builds [from 00:00:00, to 23:59:59] in UTC from YYYY-MM-DD
// strings; empty strings leave that side open. A single day is allowed.
func ParseDateRange(from, to string) (DateRange, error) {
	var out DateRange
	if from != "" {
		t, err := time.Parse(dateLayout, from)
		if err != nil {
			return DateRange{}, err
		}
		out.From = &t
	}
	if to != "" {
		t, err := time.Parse(dateLayout, to)
		if err != nil {
			return DateRange{}, err
		}
		if out.From != nil && out.From.After(t) {
			return DateRange{}, crerr.Wrapf(ErrInvertedDateRange, "%s > %s", from, to)
		}
		t = t.Add(24*time.Hour - time.Second)
		out.To = &t
	}
	return out, nil
}

// Excludes reports whether a game with the given start and finish falls
// outside the range. Unknown timestamps never exclude.
func (r DateRange) Excludes(start, finish *time.Time) bool {
	if r.From != nil && start != nil && start.Before(*r.From) {
		return true
	}
	if r.To != nil && finish != nil && finish.After(*r.To) {
		return true
	}
	return false
}

// AddUnavailable books n unavailable stat values. Provider1 reports them as
// missing datapoints, provider2 as unavailable ones.
func (s *Summary) AddUnavailable(n int) {
	if s.Provider == esport.ProviderOne {
		s.DatapointsMissing += n
		return
	}
	s.DatapointsUnavailable += n
}
