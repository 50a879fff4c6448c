package esport

import (
	"fmt"
	"sort"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

var ErrUnknownGame = crerr.New("unknown game")

// Provider identifies an upstream statistics API.
type Provider string

const (
	ProviderOne Provider = "provider1"
	ProviderTwo Provider = "provider2"
)

func (p Provider) String() string {
	return string(p)
}

// Providers lists every provider id the service knows about.
func Providers() []Provider {
	return []Provider{ProviderOne, ProviderTwo}
}

// Game is a supported title.
type Game string

const (
	GameCSGO  Game = "csgo"
	GameDota2 Game = "dota2"
	GameLoL   Game = "lol"
)

func (g Game) String() string {
	return string(g)
}

func Games() []Game {
	return []Game{GameCSGO, GameDota2, GameLoL}
}

func ParseGame(raw string) (Game, error) {
	game := Game(strings.ToLower(strings.TrimSpace(raw)))
	switch game {
	case GameCSGO, GameDota2, GameLoL:
		return game, nil
	default:
		return "", crerr.Wrapf(ErrUnknownGame, "%q", raw)
	}
}

// Label is the upper-case form used in problem messages, e.g. "CSGO".
func (g Game) Label() string {
	return strings.ToUpper(string(g))
}

// PlayersPerTeam is fixed for every supported title.
const PlayersPerTeam = 5

// GameConfig carries per-title provider mapping and datapoint accounting.
type GameConfig struct {
	Game                       Game     `json:"-"`
	Provider1ID                int64    `json:"provider1_id"`
	Provider1Sides             []string `json:"provider1_sides"`
	Provider2Slug              string   `json:"provider2_slug"`
	Datapoints                 int      `json:"datapoints"`
	Provider1MissingDatapoints int      `json:"provider1_missing_datapoints"`
	Provider2MissingDatapoints int      `json:"provider2_missing_datapoints"`
}

func (c GameConfig) Validate() error {
	if len(c.Provider1Sides) != 2 || c.Provider1Sides[0] == "" || c.Provider1Sides[1] == "" {
		return fmt.Errorf("%s: provider1_sides must name exactly two sides", c.Game)
	}
	if c.Provider1ID <= 0 {
		return fmt.Errorf("%s: provider1_id must be > 0", c.Game)
	}
	if strings.TrimSpace(c.Provider2Slug) == "" {
		return fmt.Errorf("%s: provider2_slug is required", c.Game)
	}
	if c.Datapoints <= 0 {
		return fmt.Errorf("%s: datapoints must be > 0", c.Game)
	}
	if c.Provider1MissingDatapoints < 0 || c.Provider2MissingDatapoints < 0 {
		return fmt.Errorf("%s: missing datapoints must be >= 0", c.Game)
	}
	return nil
}

// MissingDatapoints is the per-player count the provider never exposes.
func (c GameConfig) MissingDatapoints(p Provider) int {
	switch p {
	case ProviderOne:
		return c.Provider1MissingDatapoints
	case ProviderTwo:
		return c.Provider2MissingDatapoints
	default:
		return 0
	}
}

// GameConfigs indexes configuration by game.
type GameConfigs map[Game]GameConfig

func (c GameConfigs) Get(game Game) (GameConfig, error) {
	cfg, ok := c[game]
	if !ok {
		return GameConfig{}, crerr.Wrapf(ErrUnknownGame, "no configuration for %q", game)
	}
	return cfg, nil
}

func (c GameConfigs) Games() []Game {
	out := make([]Game, 0, len(c))
	for game := range c {
		out = append(out, game)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DefaultGameConfigs are used when no {game}.json override exists.
func DefaultGameConfigs() GameConfigs {
	return GameConfigs{
		GameCSGO: {
			Game:           GameCSGO,
			Provider1ID:    5,
			Provider1Sides: []string{"home", "away"},
			Provider2Slug:  "csgo",
			Datapoints:     4,
		},
		GameDota2: {
			Game:                       GameDota2,
			Provider1ID:                1,
			Provider1Sides:             []string{"radiant", "dire"},
			Provider2Slug:              "dota2",
			Datapoints:                 6,
			Provider2MissingDatapoints: 1,
		},
		GameLoL: {
			Game:                       GameLoL,
			Provider1ID:                2,
			Provider1Sides:             []string{"blue", "red"},
			Provider2Slug:              "lol",
			Datapoints:                 5,
			Provider1MissingDatapoints: 1,
		},
	}
}
