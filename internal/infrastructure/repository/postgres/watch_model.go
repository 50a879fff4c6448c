package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/watch"
)

type watchTableModel struct {
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
	IsWatching      bool           `db:"is_watching"`
	IsDeleted       bool           `db:"is_deleted"`
}

func watchRowFromDomain(entry watch.Entry) watchTableModel {
	return watchTableModel{
		Provider:        entry.Provider.String(),
		Game:            entry.Game.String(),
		SourceURL:       entry.SourceURL,
		ExternalID:      entry.ExternalID,
		Title:           entry.Title,
		StartAt:         nullTime(entry.StartAt),
		FinishAt:        nullTime(entry.FinishAt),
		TournamentID:    entry.TournamentID,
		TournamentTitle: nullString(entry.TournamentTitle),
		InsertedAt:      entry.InsertedAt.UTC(),
		IsWatching:      entry.IsWatching,
		IsDeleted:       entry.IsDeleted,
	}
}

func (m watchTableModel) toDomain() watch.Entry {
	return watch.Entry{
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
		IsWatching:      m.IsWatching,
		IsDeleted:       m.IsDeleted,
		InsertedAt:      m.InsertedAt,
	}
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	t := value.Time.UTC()
	return &t
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	s := value.String
	return &s
}
