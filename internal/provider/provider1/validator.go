package provider1

import (
	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

type Validator struct {
	configs esport.GameConfigs
}

func NewValidator(configs esport.GameConfigs) *Validator {
	return &Validator{configs: configs}
}

func (v *Validator) ValidateMatch(game esport.Game, match provider.Payload) error {
	if !match.NonEmpty("matches") {
		return provider.Missing(game, "matches")
	}
	return nil
}

func (v *Validator) ValidateGame(game esport.Game, match, detail provider.Payload) error {
	cfg, err := v.configs.Get(game)
	if err != nil {
		return err
	}
	if match == nil {
		match = detail
	}
	if !match.NonEmpty("rosters") {
		return provider.Invalidf(game, `"rosters" missing in data or empty for match %d`, match.Int64("id"))
	}

	summary := detail.Map("match_summary")
	if len(summary) == 0 {
		return provider.Missing(game, "match_summary")
	}

	side1, side2 := cfg.Provider1Sides[0], cfg.Provider1Sides[1]
	switch game {
	case esport.GameCSGO:
		if err := requireSides(game, summary, side1, side2, "summary data"); err != nil {
			return err
		}
		return requireSides(game, summary.Map("scoreboard"), side1, side2, "scoreboard data")

	case esport.GameDota2:
		if !detail.NonEmpty("rosters") {
			return provider.Invalidf(game, `"rosters" missing in data or empty for match %d`, match.Int64("id"))
		}
		if !detail.Has("winner") {
			return provider.Invalidf(game, `"winner" missing in summary data or empty`)
		}
		if !summary.Has("player_stats") {
			return provider.Invalidf(game, `"player_stats" missing in data[match_summary]`)
		}
		rosters := detail.Slice("rosters")
		if len(rosters) < 2 || summary.Int64(side1) != rosterTeamID(rosters[0]) || summary.Int64(side2) != rosterTeamID(rosters[1]) {
			return provider.Invalidf(game, "home or away team does not correspond with rosters")
		}

	case esport.GameLoL:
		if !detail.NonEmpty("rosters") {
			return provider.Invalidf(game, `missing "rosters" in data or empty for match %d`, match.Int64("id"))
		}
		if err := requireSides(game, summary, side1, side2, "data[match_summary]"); err != nil {
			return err
		}
		has1, has2 := summary.Map(side1).Has("players"), summary.Map(side2).Has("players")
		switch {
		case !has1 && !has2:
			return provider.Invalidf(game, `"players" missing in data[match_summary][%s] and data[match_summary][%s]`, side1, side2)
		case !has1:
			return provider.Invalidf(game, `"players" missing in data[match_summary][%s]`, side1)
		case !has2:
			return provider.Invalidf(game, `"players" missing in data[match_summary][%s]`, side2)
		}
		rosters := detail.Slice("rosters")
		if len(rosters) < 2 || summary.Map(side1).Int64("id") != rosterTeamID(rosters[0]) || summary.Map(side2).Int64("id") != rosterTeamID(rosters[1]) {
			return provider.Invalidf(game, "home or away team does not correspond with rosters")
		}

	default:
		return provider.Invalidf(game, "unsupported game")
	}
	return nil
}

func requireSides(game esport.Game, obj provider.Payload, side1, side2, where string) error {
	_, has1 := obj[side1]
	_, has2 := obj[side2]
	switch {
	case !has1 && !has2:
		return provider.Invalidf(game, `"%s" and "%s" missing in %s`, side1, side2, where)
	case !has1:
		return provider.Invalidf(game, `"%s" missing in %s`, side1, where)
	case !has2:
		return provider.Invalidf(game, `"%s" missing in %s`, side2, where)
	}
	return nil
}

// rosterTeamID prefers team_id and falls back to the roster's own id.
func rosterTeamID(roster provider.Payload) int64 {
	if id := roster.Int64("team_id"); id != 0 {
		return id
	}
	return roster.Int64("id")
}
