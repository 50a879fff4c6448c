package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/audit"
	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

func seedHistory(env *testEnv, title string) {
	finished := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	current := matchPayload(20, 7, finished, 201, 202)
	current["games"].([]any)[0].(map[string]any)["title"] = title
	env.source.pages[1] = provider.Page{
		URL:      "https://stub/past?page=1",
		LastPage: 1,
		Matches: []provider.Payload{
			current,
			matchPayload(21, 7, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 211),
			matchPayload(22, 99, finished, 221),
		},
	}
	env.source.setGame(201, map[string]any{
		"teams": []any{
			map[string]any{"id": float64(1), "round_win": float64(16)},
			map[string]any{"id": float64(2), "round_win": float64(12)},
		},
		"players": []any{
			map[string]any{"id": float64(11), "kill": float64(20), "death": float64(3)},
			map[string]any{"id": float64(12), "kill": nil, "death": float64(7)},
		},
	})
	env.source.setGame(202, map[string]any{"broken": true})
}

func TestGrabberService_GrabPastData_StoresGamesAndSummary(t *testing.T) {
	t.Parallel()

	env := newTestEnv(watchStart)
	seedHistory(env, "Game 201")
	input := GrabInput{DateFrom: "2026-02-01", DateTo: "2026-02-28"}

	got, err := env.grabber.GrabPastData(context.Background(), "provider2", "csgo", input)
	if err != nil {
		t.Fatalf("grab past data: %v", err)
	}
	if env.source.queries[0].Mode != provider.ListHistory {
		t.Fatalf("expected history listing, got mode=%d", env.source.queries[0].Mode)
	}
	pass := got.Pass
	if pass.MatchesTotal != 1 || pass.GamesTotal != 2 || pass.GamesInvalid != 1 {
		t.Fatalf("unexpected pass counts: %+v", pass)
	}
	if pass.DatapointsWanted != 20 || pass.DatapointsUnavailable != 1 || pass.DatapointsMissing != 0 {
		t.Fatalf("unexpected datapoint counts: %+v", pass)
	}
	if got.Total.GamesTotal != 2 {
		t.Fatalf("unexpected total games: got=%d want=%d", got.Total.GamesTotal, 2)
	}

	games := env.store.PastGames()
	if len(games) != 2 {
		t.Fatalf("unexpected past game count: got=%d want=%d", len(games), 2)
	}
	players := env.store.PastRows(games[0].ID, gamestats.KindPlayer)
	if len(players) != 2 || players[12][gamestats.FieldKill].Available() {
		t.Fatalf("unexpected player rows: %+v", players)
	}

	invalid := env.store.Invalid()
	if len(invalid) != 1 || invalid[0].Scope != audit.ScopePast || *invalid[0].ParentID != games[1].ID {
		t.Fatalf("unexpected audit rows: %+v", invalid)
	}
}

func TestGrabberService_GrabPastData_RegrabAccumulatesAndUpdates(t *testing.T) {
	t.Parallel()

	env := newTestEnv(watchStart)
	ctx := context.Background()
	input := GrabInput{DateFrom: "2026-02-01"}

	seedHistory(env, "Game 201")
	if _, err := env.grabber.GrabPastData(ctx, "provider2", "csgo", input); err != nil {
		t.Fatalf("first grab: %v", err)
	}

	env.clock.Advance(time.Hour)
	seedHistory(env, "Game 201 rematch")
	got, err := env.grabber.GrabPastData(ctx, "provider2", "csgo", input)
	if err != nil {
		t.Fatalf("second grab: %v", err)
	}
	if got.Total.GamesTotal != 4 || got.Total.DatapointsWanted != 40 {
		t.Fatalf("unexpected accumulated totals: %+v", got.Total)
	}
	games := env.store.PastGames()
	if len(games) != 2 {
		t.Fatalf("expected upsert to keep 2 games, got=%d", len(games))
	}
	if games[0].Title != "Game 201 rematch" || games[0].UpdatedAt == nil {
		t.Fatalf("expected changed title written, got %+v", games[0])
	}

	input.DeleteOld = true
	got, err = env.grabber.GrabPastData(ctx, "provider2", "csgo", input)
	if err != nil {
		t.Fatalf("grab with delete old: %v", err)
	}
	if got.Total.GamesTotal != 2 {
		t.Fatalf("expected totals reset, got=%d", got.Total.GamesTotal)
	}
}

func TestGrabberService_GrabPastData_InvalidDates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input GrabInput
	}{
		{"bad layout", GrabInput{DateFrom: "01-02-2026"}},
		{"from after to", GrabInput{DateFrom: "2026-02-10", DateTo: "2026-02-01"}},
	}
	for _, tc := range cases {
		env := newTestEnv(watchStart)
		_, err := env.grabber.GrabPastData(context.Background(), "provider2", "csgo", tc.input)
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
		if n := len(env.store.PastGames()); n != 0 {
			t.Fatalf("%s: expected no past games, got=%d", tc.name, n)
		}
	}
}

func TestGrabberService_GrabPastData_TimeoutRollsBack(t *testing.T) {
	t.Parallel()

	env := newTestEnv(watchStart)
	env.grabber.passTimeout = time.Minute
	seedHistory(env, "Game 201")
	env.source.onFetch = func(int64) { env.clock.Advance(2 * time.Minute) }

	_, err := env.grabber.GrabPastData(context.Background(), "provider2", "csgo", GrabInput{})
	if !errors.Is(err, ErrTimeoutExceeded) {
		t.Fatalf("expected ErrTimeoutExceeded, got %v", err)
	}
	if !IsRetryable(err) {
		t.Fatalf("expected timeout to be retryable")
	}
	if n := len(env.store.PastGames()); n != 0 {
		t.Fatalf("expected past games rolled back, got=%d", n)
	}
}
