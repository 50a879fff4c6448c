package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/tournament"
	tournamentmock "github.com/riskibarqy/esport-datanal/internal/mocks/domain/tournament"
	usecasemock "github.com/riskibarqy/esport-datanal/internal/mocks/usecase"
	"github.com/stretchr/testify/mock"
)

func TestSettingsService_WatchLimit_DefaultsWhenUnsetUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	limits := usecasemock.NewWatchLimitStore(t)
	service := NewSettingsService(limits, tournamentmock.NewRepository(t), nil, 0)

	limits.On("GetWatchLimit", ctx).Return(0, false, nil).Once()

	got, err := service.WatchLimit(ctx)
	if err != nil {
		t.Fatalf("watch limit: %v", err)
	}
	if got != 20*time.Minute {
		t.Fatalf("unexpected watch limit: got=%s want=%s", got, 20*time.Minute)
	}
}

func TestSettingsService_SetWatchLimitMinutesUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	limits := usecasemock.NewWatchLimitStore(t)
	service := NewSettingsService(limits, tournamentmock.NewRepository(t), nil, 0)

	if err := service.SetWatchLimitMinutes(ctx, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	limits.On("SaveWatchLimit", mock.Anything, 45).Return(nil).Once()
	if err := service.SetWatchLimitMinutes(ctx, 45); err != nil {
		t.Fatalf("set watch limit: %v", err)
	}
}

func TestSettingsService_ReplaceTournamentsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	service := NewSettingsService(usecasemock.NewWatchLimitStore(t), repo, nil, 0)

	duplicate := []tournament.Tournament{{ID: "major"}, {ID: "major"}}
	if err := service.ReplaceTournaments(ctx, "csgo", duplicate); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for duplicates, got %v", err)
	}

	items := []tournament.Tournament{{ID: "major", Provider1TournamentID: 4610}}
	repo.On("ReplaceByGame", mock.Anything, esport.GameCSGO, items).Return(nil).Once()
	if err := service.ReplaceTournaments(ctx, "csgo", items); err != nil {
		t.Fatalf("replace tournaments: %v", err)
	}
}

func TestSettingsService_TournamentIDsUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	service := NewSettingsService(usecasemock.NewWatchLimitStore(t), repo, nil, 0)

	repo.On("ListByGame", ctx, esport.GameLoL).Return([]tournament.Tournament{
		{ID: "worlds", Provider1TournamentID: 4101, Provider2LeagueID: 297},
		{ID: "msi", Provider1TournamentID: 4002},
	}, nil).Twice()

	got, err := service.TournamentIDs(ctx, esport.GameLoL, esport.ProviderOne)
	if err != nil {
		t.Fatalf("tournament ids: %v", err)
	}
	if len(got) != 2 || got[0] != 4002 || got[1] != 4101 {
		t.Fatalf("unexpected provider1 ids: %v", got)
	}

	got, err = service.TournamentIDs(ctx, esport.GameLoL, esport.ProviderTwo)
	if err != nil || len(got) != 1 || got[0] != 297 {
		t.Fatalf("unexpected provider2 ids: %v err=%v", got, err)
	}
}

func TestSettingsService_TournamentIDs_NoneConfiguredUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := tournamentmock.NewRepository(t)
	service := NewSettingsService(usecasemock.NewWatchLimitStore(t), repo, nil, 0)

	repo.On("ListByGame", ctx, esport.GameDota2).Return([]tournament.Tournament{{ID: "ti", Provider1TournamentID: 3952}}, nil).Once()

	if _, err := service.TournamentIDs(ctx, esport.GameDota2, esport.ProviderTwo); !errors.Is(err, ErrNoTournaments) {
		t.Fatalf("expected ErrNoTournaments, got %v", err)
	}
}
