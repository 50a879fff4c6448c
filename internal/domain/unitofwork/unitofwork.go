// Package unitofwork groups the repositories that a watch, grab or analysis
// pass must change atomically.
package unitofwork

import (
	"context"

	"github.com/riskibarqy/esport-datanal/internal/domain/analysis"
	"github.com/riskibarqy/esport-datanal/internal/domain/audit"
	"github.com/riskibarqy/esport-datanal/internal/domain/backfill"
	"github.com/riskibarqy/esport-datanal/internal/domain/snapshot"
	"github.com/riskibarqy/esport-datanal/internal/domain/watch"
)

// Store exposes the repositories bound to one unit of work.
type Store interface {
	Watches() watch.Repository
	Snapshots() snapshot.Repository
	Audits() audit.Repository
	Backfill() backfill.Repository
	Analyses() analysis.Repository
}

// Transactor runs fn in a single transaction. A returned error rolls back
// every write fn made through the store.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}
