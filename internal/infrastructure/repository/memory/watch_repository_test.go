package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/unitofwork"
	"github.com/riskibarqy/esport-datanal/internal/domain/watch"
)

func TestWatchRepository_InsertSamePairTwice(t *testing.T) {
	t.Parallel()

	store := NewStore()
	entry := watch.Entry{Provider: esport.ProviderOne, ExternalID: 77, IsWatching: true}

	var firstID int64
	err := store.InTx(context.Background(), func(ctx context.Context, tx unitofwork.Store) error {
		var err error
		firstID, err = tx.Watches().Insert(ctx, entry)
		return err
	})
	if err != nil {
		t.Fatalf("first insert: %v", err)
	}

	err = store.InTx(context.Background(), func(ctx context.Context, tx unitofwork.Store) error {
		_, err := tx.Watches().Insert(ctx, entry)
		return err
	})
	if !errors.Is(err, watch.ErrAlreadyWatched) {
		t.Fatalf("expected ErrAlreadyWatched, got %v", err)
	}
	if _, ok := store.Watch(firstID); !ok {
		t.Fatalf("first entry missing after rejected duplicate")
	}
}

func TestWatchRepository_InsertAfterInvalidate(t *testing.T) {
	t.Parallel()

	store := NewStore()
	entry := watch.Entry{Provider: esport.ProviderOne, ExternalID: 78, IsWatching: true}

	err := store.InTx(context.Background(), func(ctx context.Context, tx unitofwork.Store) error {
		id, err := tx.Watches().Insert(ctx, entry)
		if err != nil {
			return err
		}
		if err := tx.Watches().Invalidate(ctx, id); err != nil {
			return err
		}
		_, err = tx.Watches().Insert(ctx, entry)
		return err
	})
	if err != nil {
		t.Fatalf("re-insert after invalidate: %v", err)
	}
}
