package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/tournament"
)

func TestFileWatchLimitStore_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewFileWatchLimitStore(t.TempDir())

	if _, found, err := store.GetWatchLimit(ctx); err != nil || found {
		t.Fatalf("expected no stored limit, found=%v err=%v", found, err)
	}
	if err := store.SaveWatchLimit(ctx, 45); err != nil {
		t.Fatalf("save watch limit: %v", err)
	}
	minutes, found, err := store.GetWatchLimit(ctx)
	if err != nil || !found {
		t.Fatalf("get watch limit: found=%v err=%v", found, err)
	}
	if minutes != 45 {
		t.Fatalf("unexpected minutes: got=%d want=%d", minutes, 45)
	}
}

func TestFileTournamentRepository_ReplaceAndReload(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dir := t.TempDir()
	repo := NewFileTournamentRepository(dir)

	items, err := repo.ListByGame(ctx, esport.GameCSGO)
	if err != nil {
		t.Fatalf("list tournaments: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("unexpected tournaments: got=%d want=%d", len(items), 0)
	}

	want := []tournament.Tournament{{ID: "major", Provider1TournamentID: 30, Provider2LeagueID: 4}}
	if err := repo.ReplaceByGame(ctx, esport.GameCSGO, want); err != nil {
		t.Fatalf("replace tournaments: %v", err)
	}
	items, err = repo.ListByGame(ctx, esport.GameCSGO)
	if err != nil {
		t.Fatalf("list tournaments: %v", err)
	}
	if len(items) != 1 || items[0].Provider1TournamentID != 30 {
		t.Fatalf("unexpected tournaments after replace: %+v", items)
	}

	reopened := NewFileTournamentRepository(dir)
	items, err = reopened.ListByGame(ctx, esport.GameCSGO)
	if err != nil {
		t.Fatalf("list tournaments from disk: %v", err)
	}
	if len(items) != 1 || items[0].ID != "major" {
		t.Fatalf("unexpected persisted tournaments: %+v", items)
	}
}

func TestLoadGameConfigs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	configs, err := LoadGameConfigs(dir)
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if got := len(configs); got != len(esport.Games()) {
		t.Fatalf("unexpected config count: got=%d want=%d", got, len(esport.Games()))
	}

	override := `{"provider1_id":9,"provider1_sides":["ct","t"],"provider2_slug":"cs2","datapoints":7}`
	if err := os.MkdirAll(filepath.Join(dir, gamesDir), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, gamesDir, "csgo.json"), []byte(override), 0o600); err != nil {
		t.Fatalf("write override: %v", err)
	}
	configs, err = LoadGameConfigs(dir)
	if err != nil {
		t.Fatalf("load override: %v", err)
	}
	cfg := configs[esport.GameCSGO]
	if cfg.Game != esport.GameCSGO || cfg.Provider2Slug != "cs2" || cfg.Datapoints != 7 {
		t.Fatalf("unexpected override: %+v", cfg)
	}

	if err := os.WriteFile(filepath.Join(dir, gamesDir, "lol.json"), []byte(`{"provider1_id":2}`), 0o600); err != nil {
		t.Fatalf("write invalid override: %v", err)
	}
	if _, err := LoadGameConfigs(dir); err == nil {
		t.Fatalf("expected validation error for incomplete override")
	}
}
