package provider

import (
	"context"
	"time"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
)

// ListMode selects between the live watch listing and the history listing.
type ListMode int

const (
	ListRecent ListMode = iota
	ListHistory
)

type ListQuery struct {
	Mode          ListMode
	Game          esport.GameConfig
	TournamentIDs []int64
	Page          int
}

// Page is one page of a match listing. LastPage is 0 when unknown.
type Page struct {
	URL      string
	Matches  []Payload
	LastPage int
}

// Document is a fetched payload together with the endpoint it came from.
type Document struct {
	URL  string
	Body Payload
}

// Source is the HTTP client of one provider. Every call acquires the
// provider's rate limiter before reaching the network.
type Source interface {
	// TournamentScopes splits the configured ids into the id sets that one
	// listing walk can filter by.
	TournamentScopes(mode ListMode, ids []int64) [][]int64
	ListMatches(ctx context.Context, q ListQuery) (Page, error)
	// ExpandMatch loads whatever the listing omits about a match; sources
	// that list complete matches return it unchanged.
	ExpandMatch(ctx context.Context, cfg esport.GameConfig, listing Payload) (Document, error)
	FetchGame(ctx context.Context, cfg esport.GameConfig, gameID int64) (Document, error)
	// Monitor measures the provider's authentication round trip.
	Monitor(ctx context.Context) (time.Duration, error)
}

// MatchInfo is what the listing says about a match before it is expanded.
type MatchInfo struct {
	ExternalID    int64
	StartAt       *time.Time
	EndAt         *time.Time
	TournamentRef int64
}

// GameRef is one game of an expanded match, ready to be stored.
type GameRef struct {
	ExternalID      int64
	Title           string
	StartAt         *time.Time
	EndAt           *time.Time
	TournamentID    int64
	TournamentTitle *string
	// Match is the match payload the game was read from.
	Match Payload
}

// Reader interprets the provider's match shapes.
type Reader interface {
	MatchInfo(listing Payload) MatchInfo
	Games(expanded Payload) []GameRef
}

type Validator interface {
	ValidateMatch(game esport.Game, match Payload) error
	// ValidateGame checks a game detail; match is the payload the game was
	// listed in, or nil when only the detail is known.
	ValidateGame(game esport.Game, match, detail Payload) error
}

// Prepared is the intermediate state between the prepare and get steps of a
// transformer: the entity ids in play and tallies derived from event lists.
type Prepared struct {
	TeamIDs []int64
	Entries []Payload
	Tallies map[int64]gamestats.Values
}

// Set records value for field of entity id.
func (p *Prepared) Set(id int64, field gamestats.Field, value gamestats.Value) {
	if p.Tallies == nil {
		p.Tallies = make(map[int64]gamestats.Values)
	}
	values := p.Tallies[id]
	if values == nil {
		values = gamestats.Values{}
		p.Tallies[id] = values
	}
	values[field] = value
}

// Tally adds delta to the running count of field for entity id. An
// unavailable or missing count starts from zero.
func (p *Prepared) Tally(id int64, field gamestats.Field, delta int64) {
	n, _ := p.Tallies[id][field].Int64()
	p.Set(id, field, gamestats.Int(n+delta))
}

// HasTeam reports whether id is one of the prepared teams.
func (p Prepared) HasTeam(id int64) bool {
	for _, teamID := range p.TeamIDs {
		if teamID == id {
			return true
		}
	}
	return false
}

// Count returns the tally, or fallback when none was recorded.
func (p Prepared) Count(id int64, field gamestats.Field, fallback gamestats.Value) gamestats.Value {
	if v, ok := p.Tallies[id][field]; ok {
		return v
	}
	return fallback
}

type Transformer interface {
	PrepareTeamData(game esport.Game, detail Payload) (Prepared, error)
	GetTeamData(game esport.Game, prepared Prepared, detail Payload) (gamestats.EntitySet, error)
	PreparePlayerData(game esport.Game, detail Payload) (Prepared, error)
	GetPlayerData(game esport.Game, prepared Prepared, detail Payload) (gamestats.EntitySet, error)
}

// Transform runs both prepare/get pairs.
func Transform(t Transformer, game esport.Game, detail Payload) (teams, players gamestats.EntitySet, err error) {
	prepared, err := t.PrepareTeamData(game, detail)
	if err != nil {
		return nil, nil, err
	}
	teams, err = t.GetTeamData(game, prepared, detail)
	if err != nil {
		return nil, nil, err
	}

	prepared, err = t.PreparePlayerData(game, detail)
	if err != nil {
		return nil, nil, err
	}
	players, err = t.GetPlayerData(game, prepared, detail)
	if err != nil {
		return nil, nil, err
	}
	return teams, players, nil
}

// Adapter bundles one provider's client with its payload strategies.
type Adapter struct {
	Provider    esport.Provider
	Source      Source
	Reader      Reader
	Validator   Validator
	Transformer Transformer
}
