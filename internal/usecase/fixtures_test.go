package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
	"github.com/riskibarqy/esport-datanal/internal/domain/tournament"
	"github.com/riskibarqy/esport-datanal/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

const testTimeLayout = time.RFC3339

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("run-%d", g.n), nil
}

// stubSource serves listing pages and game details from memory.
type stubSource struct {
	mu         sync.Mutex
	pages      map[int]provider.Page
	games      map[int64]provider.Payload
	fetchErr   error
	onFetch    func(gameID int64)
	scopes     [][]int64
	queries    []provider.ListQuery
	monitorErr error
	elapsed    time.Duration
}

func newStubSource() *stubSource {
	return &stubSource{
		pages: make(map[int]provider.Page),
		games: make(map[int64]provider.Payload),
	}
}

func (s *stubSource) setGame(id int64, detail map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.games[id] = detail
}

func (s *stubSource) TournamentScopes(_ provider.ListMode, ids []int64) [][]int64 {
	if s.scopes != nil {
		return s.scopes
	}
	return [][]int64{ids}
}

func (s *stubSource) ListMatches(_ context.Context, q provider.ListQuery) (provider.Page, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries = append(s.queries, q)
	page, ok := s.pages[q.Page]
	if !ok {
		return provider.Page{URL: fmt.Sprintf("https://stub/list?page=%d", q.Page)}, nil
	}
	return page, nil
}

func (s *stubSource) ExpandMatch(_ context.Context, _ esport.GameConfig, listing provider.Payload) (provider.Document, error) {
	return provider.Document{URL: fmt.Sprintf("https://stub/matches/%d", listing.Int64("id")), Body: listing}, nil
}

func (s *stubSource) FetchGame(_ context.Context, _ esport.GameConfig, gameID int64) (provider.Document, error) {
	if s.onFetch != nil {
		s.onFetch(gameID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return provider.Document{}, s.fetchErr
	}
	detail, ok := s.games[gameID]
	if !ok {
		return provider.Document{}, fmt.Errorf("game %d: %w", gameID, ErrNotFound)
	}
	return provider.Document{URL: fmt.Sprintf("https://stub/games/%d", gameID), Body: detail}, nil
}

func (s *stubSource) Monitor(_ context.Context) (time.Duration, error) {
	return s.elapsed, s.monitorErr
}

// stubReader reads {id, end_at, tournament_id, games: [{id, title}]}.
type stubReader struct{}

func (stubReader) MatchInfo(listing provider.Payload) provider.MatchInfo {
	return provider.MatchInfo{
		ExternalID:    listing.Int64("id"),
		StartAt:       listing.Time("begin_at", testTimeLayout),
		EndAt:         listing.Time("end_at", testTimeLayout),
		TournamentRef: listing.Int64("tournament_id"),
	}
}

func (stubReader) Games(expanded provider.Payload) []provider.GameRef {
	games := expanded.Slice("games")
	out := make([]provider.GameRef, 0, len(games))
	for _, g := range games {
		out = append(out, provider.GameRef{
			ExternalID:   g.Int64("id"),
			Title:        g.String("title"),
			StartAt:      expanded.Time("begin_at", testTimeLayout),
			EndAt:        expanded.Time("end_at", testTimeLayout),
			TournamentID: expanded.Int64("tournament_id"),
			Match:        expanded,
		})
	}
	return out
}

// stubValidator rejects payloads flagged with "broken".
type stubValidator struct{}

func (stubValidator) ValidateMatch(game esport.Game, match provider.Payload) error {
	if match.Has("broken") {
		return provider.Missing(game, "games")
	}
	return nil
}

func (stubValidator) ValidateGame(game esport.Game, _ provider.Payload, detail provider.Payload) error {
	if detail.Has("broken") || len(detail.Slice("teams")) == 0 {
		return provider.Missing(game, "teams")
	}
	return nil
}

// stubTransformer maps {teams: [{id, round_win}], players: [{id, kill, death}]}.
type stubTransformer struct{}

func (stubTransformer) PrepareTeamData(_ esport.Game, detail provider.Payload) (provider.Prepared, error) {
	var prepared provider.Prepared
	for _, team := range detail.Slice("teams") {
		prepared.TeamIDs = append(prepared.TeamIDs, team.Int64("id"))
	}
	return prepared, nil
}

func (stubTransformer) GetTeamData(_ esport.Game, prepared provider.Prepared, detail provider.Payload) (gamestats.EntitySet, error) {
	out := gamestats.EntitySet{}
	for _, team := range detail.Slice("teams") {
		if !prepared.HasTeam(team.Int64("id")) {
			continue
		}
		out[team.Int64("id")] = gamestats.Values{gamestats.FieldRoundWin: team.Stat("round_win")}
	}
	return out, nil
}

func (stubTransformer) PreparePlayerData(_ esport.Game, detail provider.Payload) (provider.Prepared, error) {
	return provider.Prepared{Entries: detail.Slice("players")}, nil
}

func (stubTransformer) GetPlayerData(_ esport.Game, prepared provider.Prepared, _ provider.Payload) (gamestats.EntitySet, error) {
	out := gamestats.EntitySet{}
	for _, player := range prepared.Entries {
		out[player.Int64("id")] = gamestats.Values{
			gamestats.FieldKill:  player.Stat("kill"),
			gamestats.FieldDeath: player.Stat("death"),
		}
	}
	return out, nil
}

type testEnv struct {
	clock    *fakeClock
	source   *stubSource
	store    *memory.Store
	settings *SettingsService
	registry *provider.Registry
	watcher  *WatcherService
	grabber  *GrabberService
	analyzer *AnalyzerService
}

func newTestEnv(start time.Time) *testEnv {
	clock := newFakeClock(start)
	source := newStubSource()
	registry, err := provider.NewRegistry(provider.Adapter{
		Provider:    esport.ProviderTwo,
		Source:      source,
		Reader:      stubReader{},
		Validator:   stubValidator{},
		Transformer: stubTransformer{},
	})
	if err != nil {
		panic(err)
	}

	store := memory.NewStore()
	settings := NewSettingsService(
		memory.NewWatchLimitStore(0),
		memory.NewTournamentRepository(map[esport.Game][]tournament.Tournament{
			esport.GameCSGO: {{ID: "major", Provider2LeagueID: 7}},
		}),
		esport.DefaultGameConfigs(),
		20,
	)

	ids := &sequenceIDs{}
	watcher := NewWatcherService(registry, store, settings, ids, time.Minute, nil)
	watcher.now = clock.Now
	grabber := NewGrabberService(registry, store, settings, ids, 0, nil)
	grabber.now = clock.Now
	analyzer := NewAnalyzerService(registry, store, settings, nil)
	analyzer.now = clock.Now

	return &testEnv{
		clock:    clock,
		source:   source,
		store:    store,
		settings: settings,
		registry: registry,
		watcher:  watcher,
		grabber:  grabber,
		analyzer: analyzer,
	}
}

func matchPayload(id, tournamentID int64, endAt time.Time, gameIDs ...int64) map[string]any {
	games := make([]any, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		games = append(games, map[string]any{"id": float64(gameID), "title": fmt.Sprintf("Game %d", gameID)})
	}
	return map[string]any{
		"id":            float64(id),
		"tournament_id": float64(tournamentID),
		"begin_at":      endAt.Add(-time.Hour).Format(testTimeLayout),
		"end_at":        endAt.Format(testTimeLayout),
		"games":         games,
	}
}

func gameDetail(roundWins [2]int, kills map[int64]int) map[string]any {
	players := make([]any, 0, len(kills))
	for id, k := range kills {
		players = append(players, map[string]any{"id": float64(id), "kill": float64(k), "death": float64(3)})
	}
	return map[string]any{
		"teams": []any{
			map[string]any{"id": float64(1), "round_win": float64(roundWins[0])},
			map[string]any{"id": float64(2), "round_win": float64(roundWins[1])},
		},
		"players": players,
	}
}
