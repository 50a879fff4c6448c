package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/esport-datanal/internal/domain/analysis"
	"github.com/riskibarqy/esport-datanal/internal/domain/audit"
	"github.com/riskibarqy/esport-datanal/internal/domain/backfill"
	"github.com/riskibarqy/esport-datanal/internal/domain/snapshot"
	"github.com/riskibarqy/esport-datanal/internal/domain/unitofwork"
	"github.com/riskibarqy/esport-datanal/internal/domain/watch"
	"github.com/riskibarqy/esport-datanal/internal/platform/logging"
)

// dbtx is the query surface shared by *sqlx.DB and *sqlx.Tx.
type dbtx interface {
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryxContext(ctx context.Context, query string, args ...any) (*sqlx.Rows, error)
}

const defaultBeginAttempts = 3

// Store runs every pass inside one postgres transaction.
type Store struct {
	db            *sqlx.DB
	logger        *logging.Logger
	beginAttempts int
	beginBackoff  time.Duration
}

func NewStore(db *sqlx.DB, logger *logging.Logger) *Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &Store{
		db:            db,
		logger:        logger,
		beginAttempts: defaultBeginAttempts,
		beginBackoff:  200 * time.Millisecond,
	}
}

// InTx commits when fn succeeds and rolls back otherwise. Transient failures
// to open the transaction are retried; nothing is retried once fn has run.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, store unitofwork.Store) error) error {
	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(ctx, txStore{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Ping reports whether the database answers.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) begin(ctx context.Context) (*sqlx.Tx, error) {
	var lastErr error
	for attempt := 0; attempt < s.beginAttempts; attempt++ {
		tx, err := s.db.BeginTxx(ctx, nil)
		if err == nil {
			return tx, nil
		}
		lastErr = err
		if !isTransient(err) || attempt == s.beginAttempts-1 {
			break
		}

		s.logger.WarnContext(ctx, "begin transaction failed, retrying",
			"attempt", attempt+1,
			"error", err,
		)
		timer := time.NewTimer(time.Duration(attempt+1) * s.beginBackoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, fmt.Errorf("begin transaction: %w", lastErr)
}

type txStore struct {
	q dbtx
}

func (s txStore) Watches() watch.Repository { return watchRepository{q: s.q} }
func (s txStore) Snapshots() snapshot.Repository { return snapshotRepository{q: s.q} }
func (s txStore) Audits() audit.Repository { return auditRepository{q: s.q} }
func (s txStore) Backfill() backfill.Repository { return backfillRepository{q: s.q} }
func (s txStore) Analyses() analysis.Repository { return analysisRepository{q: s.q} }
