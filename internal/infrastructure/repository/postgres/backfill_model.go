package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/backfill"
	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
)

type pastGameTableModel struct {
	ID              int64          `db:"id,readonly"`
	Provider        string         `db:"data_src"`
	Game            string         `db:"game_name"`
	SourceURL       string         `db:"data_src_url"`
	ExternalID      int64          `db:"data_src_game_id"`
	Title           string         `db:"data_src_game_title"`
	StartAt         sql.NullTime   `db:"data_src_start_datetime"`
	FinishAt        sql.NullTime   `db:"data_src_finish_datetime"`
	TournamentID    int64          `db:"data_src_tournament_id"`
	TournamentTitle sql.NullString `db:"data_src_tournament_title"`
	InsertedAt      time.Time      `db:"insert_datetime"`
	UpdatedAt       sql.NullTime   `db:"update_datetime,readonly"`
}

func pastGameRowFromDomain(item backfill.Game) pastGameTableModel {
	return pastGameTableModel{
		Provider:        item.Provider.String(),
		Game:            item.Game.String(),
		SourceURL:       item.SourceURL,
		ExternalID:      item.ExternalID,
		Title:           item.Title,
		StartAt:         nullTime(item.StartAt),
		FinishAt:        nullTime(item.FinishAt),
		TournamentID:    item.TournamentID,
		TournamentTitle: nullString(item.TournamentTitle),
		InsertedAt:      item.InsertedAt.UTC(),
	}
}

func (m pastGameTableModel) toDomain() backfill.Game {
	return backfill.Game{
		ID:              m.ID,
		Provider:        esport.Provider(m.Provider),
		Game:            esport.Game(m.Game),
		SourceURL:       m.SourceURL,
		ExternalID:      m.ExternalID,
		Title:           m.Title,
		StartAt:         nullTimePtr(m.StartAt),
		FinishAt:        nullTimePtr(m.FinishAt),
		TournamentID:    m.TournamentID,
		TournamentTitle: nullStringPtr(m.TournamentTitle),
		InsertedAt:      m.InsertedAt,
		UpdatedAt:       nullTimePtr(m.UpdatedAt),
	}
}

type pastSummaryTableModel struct {
	Provider              string       `db:"data_src"`
	Game                  string       `db:"game_name"`
	MatchesTotal          int          `db:"matches_total_count"`
	MatchesInvalid        int          `db:"matches_invalid_count"`
	GamesTotal            int          `db:"games_total_count"`
	GamesInvalid          int          `db:"games_invalid_count"`
	DatapointsWanted      int          `db:"datapoints_wanted_count"`
	DatapointsMissing     int          `db:"datapoints_missing_count"`
	DatapointsUnavailable int          `db:"datapoints_unavailable_count"`
	UpdatedAt             sql.NullTime `db:"update_datetime"`
}

func (m pastSummaryTableModel) toDomain() backfill.Summary {
	return backfill.Summary{
		Provider:              esport.Provider(m.Provider),
		Game:                  esport.Game(m.Game),
		MatchesTotal:          m.MatchesTotal,
		MatchesInvalid:        m.MatchesInvalid,
		GamesTotal:            m.GamesTotal,
		GamesInvalid:          m.GamesInvalid,
		DatapointsWanted:      m.DatapointsWanted,
		DatapointsMissing:     m.DatapointsMissing,
		DatapointsUnavailable: m.DatapointsUnavailable,
		UpdatedAt:             nullTimePtr(m.UpdatedAt),
	}
}

// summaryCounterColumns are the past_game_analysis counters a pass adds onto.
var summaryCounterColumns = []string{
	"matches_total_count",
	"matches_invalid_count",
	"games_total_count",
	"games_invalid_count",
	"datapoints_wanted_count",
	"datapoints_missing_count",
	"datapoints_unavailable_count",
}

func summaryCounters(s backfill.Summary) []any {
	return []any{
		s.MatchesTotal,
		s.MatchesInvalid,
		s.GamesTotal,
		s.GamesInvalid,
		s.DatapointsWanted,
		s.DatapointsMissing,
		s.DatapointsUnavailable,
	}
}
