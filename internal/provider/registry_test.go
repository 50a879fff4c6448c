package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
)

type stubSource struct{}

func (stubSource) TournamentScopes(ListMode, []int64) [][]int64 { return nil }
func (stubSource) ListMatches(context.Context, ListQuery) (Page, error) {
	return Page{}, nil
}
func (stubSource) ExpandMatch(context.Context, esport.GameConfig, Payload) (Document, error) {
	return Document{}, nil
}
func (stubSource) FetchGame(context.Context, esport.GameConfig, int64) (Document, error) {
	return Document{}, nil
}
func (stubSource) Monitor(context.Context) (time.Duration, error) { return 0, nil }

type stubReader struct{}

func (stubReader) MatchInfo(Payload) MatchInfo { return MatchInfo{} }
func (stubReader) Games(Payload) []GameRef     { return nil }

type stubValidator struct{}

func (stubValidator) ValidateMatch(esport.Game, Payload) error          { return nil }
func (stubValidator) ValidateGame(esport.Game, Payload, Payload) error { return nil }

type stubTransformer struct {
	teams gamestats.EntitySet
}

func (s stubTransformer) PrepareTeamData(esport.Game, Payload) (Prepared, error) {
	return Prepared{TeamIDs: []int64{1}}, nil
}
func (s stubTransformer) GetTeamData(_ esport.Game, prepared Prepared, _ Payload) (gamestats.EntitySet, error) {
	if len(prepared.TeamIDs) != 1 {
		return nil, errors.New("prepared state not passed through")
	}
	return s.teams, nil
}
func (s stubTransformer) PreparePlayerData(esport.Game, Payload) (Prepared, error) {
	return Prepared{}, nil
}
func (s stubTransformer) GetPlayerData(esport.Game, Prepared, Payload) (gamestats.EntitySet, error) {
	return gamestats.EntitySet{}, nil
}

func stubAdapter(p esport.Provider) Adapter {
	return Adapter{
		Provider:    p,
		Source:      stubSource{},
		Reader:      stubReader{},
		Validator:   stubValidator{},
		Transformer: stubTransformer{},
	}
}

func TestRegistryResolve(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry(stubAdapter(esport.ProviderOne), stubAdapter(esport.ProviderTwo))
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	adapter, err := registry.ResolveName(" Provider2 ")
	if err != nil {
		t.Fatalf("resolve provider2: %v", err)
	}
	if adapter.Provider != esport.ProviderTwo {
		t.Fatalf("unexpected adapter: got=%s want=%s", adapter.Provider, esport.ProviderTwo)
	}

	_, err = registry.ResolveName("provider3")
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
	var unknown *UnknownProviderError
	if !errors.As(err, &unknown) || unknown.Name != "provider3" {
		t.Fatalf("expected UnknownProviderError for provider3, got %v", err)
	}

	if got := registry.Providers(); len(got) != 2 || got[0] != esport.ProviderOne {
		t.Fatalf("unexpected providers: %v", got)
	}
}

func TestNewRegistryRejectsDuplicatesAndIncomplete(t *testing.T) {
	t.Parallel()

	if _, err := NewRegistry(stubAdapter(esport.ProviderOne), stubAdapter(esport.ProviderOne)); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	incomplete := stubAdapter(esport.ProviderOne)
	incomplete.Validator = nil
	if _, err := NewRegistry(incomplete); err == nil {
		t.Fatalf("expected incomplete adapter error")
	}
}

func TestTransformRunsBothSteps(t *testing.T) {
	t.Parallel()

	want := gamestats.EntitySet{1: {gamestats.FieldTeamWin: gamestats.Int(1)}}
	teams, players, err := Transform(stubTransformer{teams: want}, esport.GameDota2, Payload{})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if len(teams) != 1 || players == nil {
		t.Fatalf("unexpected transform output: teams=%v players=%v", teams, players)
	}
}

func TestInvalidfMessage(t *testing.T) {
	t.Parallel()

	err := Missing(esport.GameCSGO, "matches")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if got, want := err.Error(), `CSGO - "matches" missing in data or empty`; got != want {
		t.Fatalf("unexpected message: got=%q want=%q", got, want)
	}
}
