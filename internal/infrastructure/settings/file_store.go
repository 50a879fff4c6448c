// Package settings persists operator settings: the watch limit flag, the
// tracked tournaments and per-game configuration overrides.
package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/tournament"
)

const (
	watchLimitFile = "watch_limit.json"
	tournamentsDir = "tournaments"
	gamesDir       = "games"
)

type watchLimitDocument struct {
	Minutes int `json:"minutes"`
}

// FileWatchLimitStore keeps the watch limit in {dir}/watch_limit.json.
type FileWatchLimitStore struct {
	mu   sync.Mutex
	path string
}

func NewFileWatchLimitStore(dir string) *FileWatchLimitStore {
	return &FileWatchLimitStore{path: filepath.Join(dir, watchLimitFile)}
}

func (s *FileWatchLimitStore) GetWatchLimit(_ context.Context) (int, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc watchLimitDocument
	found, err := readJSON(s.path, &doc)
	if err != nil || !found {
		return 0, false, err
	}
	return doc.Minutes, doc.Minutes > 0, nil
}

func (s *FileWatchLimitStore) SaveWatchLimit(_ context.Context, minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeJSON(s.path, watchLimitDocument{Minutes: minutes})
}

// FileTournamentRepository keeps one {dir}/tournaments/{game}.json list per
// game.
type FileTournamentRepository struct {
	mu  sync.RWMutex
	dir string
}

func NewFileTournamentRepository(dir string) *FileTournamentRepository {
	return &FileTournamentRepository{dir: filepath.Join(dir, tournamentsDir)}
}

func (r *FileTournamentRepository) ListByGame(_ context.Context, game esport.Game) ([]tournament.Tournament, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var items []tournament.Tournament
	if _, err := readJSON(r.path(game), &items); err != nil {
		return nil, fmt.Errorf("load %s tournaments: %w", game, err)
	}
	return items, nil
}

func (r *FileTournamentRepository) ReplaceByGame(_ context.Context, game esport.Game, items []tournament.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if items == nil {
		items = []tournament.Tournament{}
	}
	if err := writeJSON(r.path(game), items); err != nil {
		return fmt.Errorf("save %s tournaments: %w", game, err)
	}
	return nil
}

func (r *FileTournamentRepository) path(game esport.Game) string {
	return filepath.Join(r.dir, game.String()+".json")
}

// LoadGameConfigs starts from the built-in configuration and applies every
// {dir}/games/{game}.json override found. Overrides replace the whole entry.
func LoadGameConfigs(dir string) (esport.GameConfigs, error) {
	configs := esport.DefaultGameConfigs()
	if dir == "" {
		return configs, nil
	}

	for _, game := range esport.Games() {
		var cfg esport.GameConfig
		found, err := readJSON(filepath.Join(dir, gamesDir, game.String()+".json"), &cfg)
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", game, err)
		}
		if !found {
			continue
		}
		cfg.Game = game
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("validate %s config: %w", game, err)
		}
		configs[game] = cfg
	}
	return configs, nil
}

func readJSON(path string, dest any) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", path, err)
	}
	if err := sonic.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", path, err)
	}
	return true, nil
}

// writeJSON replaces path atomically through a temp file in the same dir.
func writeJSON(path string, value any) error {
	raw, err := sonic.ConfigStd.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
