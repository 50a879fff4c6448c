package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/tournament"
	tournamentmock "github.com/riskibarqy/esport-datanal/internal/mocks/domain/tournament"
	usecasemock "github.com/riskibarqy/esport-datanal/internal/mocks/usecase"
	"github.com/stretchr/testify/mock"
)

func TestTournamentRepository_CachesUntilReplace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := tournamentmock.NewRepository(t)
	repo := NewTournamentRepository(next, 0)

	first := []tournament.Tournament{{ID: "major", Provider1TournamentID: 1}}
	second := []tournament.Tournament{{ID: "worlds", Provider2LeagueID: 2}}
	next.On("ListByGame", mock.Anything, esport.GameCSGO).Return(first, nil).Once()
	next.On("ReplaceByGame", mock.Anything, esport.GameCSGO, second).Return(nil).Once()
	next.On("ListByGame", mock.Anything, esport.GameCSGO).Return(second, nil).Once()

	for i := 0; i < 3; i++ {
		items, err := repo.ListByGame(ctx, esport.GameCSGO)
		if err != nil {
			t.Fatalf("list tournaments: %v", err)
		}
		if len(items) != 1 || items[0].ID != "major" {
			t.Fatalf("unexpected cached tournaments: %+v", items)
		}
	}

	if err := repo.ReplaceByGame(ctx, esport.GameCSGO, second); err != nil {
		t.Fatalf("replace tournaments: %v", err)
	}
	items, err := repo.ListByGame(ctx, esport.GameCSGO)
	if err != nil {
		t.Fatalf("list tournaments: %v", err)
	}
	if len(items) != 1 || items[0].ID != "worlds" {
		t.Fatalf("unexpected tournaments after replace: %+v", items)
	}
}

func TestWatchLimitStore_CachesAndInvalidates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := usecasemock.NewWatchLimitStore(t)
	store := NewWatchLimitStore(next, 0)

	next.On("GetWatchLimit", mock.Anything).Return(20, true, nil).Once()
	next.On("SaveWatchLimit", mock.Anything, 30).Return(nil).Once()
	next.On("GetWatchLimit", mock.Anything).Return(30, true, nil).Once()

	for i := 0; i < 2; i++ {
		minutes, found, err := store.GetWatchLimit(ctx)
		if err != nil || !found || minutes != 20 {
			t.Fatalf("unexpected cached limit: minutes=%d found=%v err=%v", minutes, found, err)
		}
	}
	if err := store.SaveWatchLimit(ctx, 30); err != nil {
		t.Fatalf("save watch limit: %v", err)
	}
	minutes, _, err := store.GetWatchLimit(ctx)
	if err != nil || minutes != 30 {
		t.Fatalf("unexpected limit after save: got=%d want=%d err=%v", minutes, 30, err)
	}
}

func TestWatchLimitStore_ErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := usecasemock.NewWatchLimitStore(t)
	store := NewWatchLimitStore(next, 0)

	next.On("GetWatchLimit", mock.Anything).Return(0, false, errors.New("redis down")).Once()
	next.On("GetWatchLimit", mock.Anything).Return(15, true, nil).Once()

	if _, _, err := store.GetWatchLimit(ctx); err == nil {
		t.Fatalf("expected backing store error")
	}
	minutes, found, err := store.GetWatchLimit(ctx)
	if err != nil || !found || minutes != 15 {
		t.Fatalf("unexpected limit after recovery: minutes=%d found=%v err=%v", minutes, found, err)
	}
}
