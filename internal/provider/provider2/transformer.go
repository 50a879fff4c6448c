package provider2

import (
	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

type strategy interface {
	prepareTeams(prepared provider.Prepared, detail provider.Payload) provider.Prepared
	playerExtras(player provider.Payload, values gamestats.Values)
}

var strategies = map[esport.Game]strategy{
	esport.GameCSGO:  csgoStrategy{},
	esport.GameDota2: dota2Strategy{},
	esport.GameLoL:   lolStrategy{},
}

type Transformer struct{}

func NewTransformer() *Transformer {
	return &Transformer{}
}

func (t *Transformer) resolve(game esport.Game) (strategy, error) {
	s, ok := strategies[game]
	if !ok {
		return nil, provider.Invalidf(game, "unsupported game")
	}
	return s, nil
}

// PrepareTeamData takes the teams from the embedded match opponents.
func (t *Transformer) PrepareTeamData(game esport.Game, detail provider.Payload) (provider.Prepared, error) {
	s, err := t.resolve(game)
	if err != nil {
		return provider.Prepared{}, err
	}
	teams := opponentIDs(detail)
	if len(teams) != 2 {
		return provider.Prepared{}, provider.Invalidf(game, `"opponents" empty in data or invalid`)
	}
	return s.prepareTeams(provider.Prepared{TeamIDs: teams}, detail), nil
}

func (t *Transformer) GetTeamData(game esport.Game, prepared provider.Prepared, _ provider.Payload) (gamestats.EntitySet, error) {
	if _, err := t.resolve(game); err != nil {
		return nil, err
	}
	fields := gamestats.FieldsFor(game, gamestats.KindTeam)
	out := make(gamestats.EntitySet, len(prepared.TeamIDs))
	for _, id := range prepared.TeamIDs {
		values := make(gamestats.Values, len(fields))
		for _, field := range fields {
			values[field] = prepared.Count(id, field, gamestats.Unavailable())
		}
		out[id] = values
	}
	return out, nil
}

func (t *Transformer) PreparePlayerData(game esport.Game, detail provider.Payload) (provider.Prepared, error) {
	if _, err := t.resolve(game); err != nil {
		return provider.Prepared{}, err
	}
	return provider.Prepared{Entries: detail.Slice("players")}, nil
}

func (t *Transformer) GetPlayerData(game esport.Game, prepared provider.Prepared, _ provider.Payload) (gamestats.EntitySet, error) {
	s, err := t.resolve(game)
	if err != nil {
		return nil, err
	}
	out := make(gamestats.EntitySet, len(prepared.Entries))
	for _, player := range prepared.Entries {
		values := gamestats.Values{
			gamestats.FieldKill:   player.Stat("kills"),
			gamestats.FieldAssist: player.Stat("assists"),
			gamestats.FieldDeath:  player.Stat("deaths"),
		}
		s.playerExtras(player, values)
		out[player.Map("player").Int64("id")] = values
	}
	return out, nil
}

type csgoStrategy struct{}

func (csgoStrategy) prepareTeams(prepared provider.Prepared, detail provider.Payload) provider.Prepared {
	home, away := prepared.TeamIDs[0], prepared.TeamIDs[1]

	if scores := detail.Slice("rounds_score"); len(scores) > 0 {
		for _, score := range scores {
			if id := score.Int64("team_id"); prepared.HasTeam(id) {
				prepared.Set(id, gamestats.FieldRoundWin, score.Stat("score"))
			}
		}
		prepared.Set(home, gamestats.FieldRoundLose, prepared.Count(away, gamestats.FieldRoundWin, gamestats.Unavailable()))
		prepared.Set(away, gamestats.FieldRoundLose, prepared.Count(home, gamestats.FieldRoundWin, gamestats.Unavailable()))
	}

	if rounds := detail.Slice("rounds"); len(rounds) > 0 {
		for _, id := range prepared.TeamIDs {
			prepared.Set(id, gamestats.FieldBombPlant, gamestats.Int(0))
			prepared.Set(id, gamestats.FieldBombDefuse, gamestats.Int(0))
		}
		for _, round := range rounds {
			winner := round.Int64("winner_team")
			if !prepared.HasTeam(winner) {
				continue
			}
			switch round.String("outcome") {
			case "exploded":
				prepared.Tally(winner, gamestats.FieldBombPlant, 1)
			case "defused":
				prepared.Tally(winner, gamestats.FieldBombDefuse, 1)
			}
		}
	}
	return prepared
}

func (csgoStrategy) playerExtras(provider.Payload, gamestats.Values) {}

type dota2Strategy struct{}

// prepareTeams reads the winner from the embedded match's entry for this
// game. No winner means every team lost.
func (dota2Strategy) prepareTeams(prepared provider.Prepared, detail provider.Payload) provider.Prepared {
	gameID := detail.Int64("id")
	var winner int64
	for _, game := range detail.Map("match").Slice("games") {
		if game.Int64("id") == gameID {
			winner = game.ID("winner")
			break
		}
	}
	for _, id := range prepared.TeamIDs {
		prepared.Set(id, gamestats.FieldTeamWin, gamestats.Int(boolInt(winner != 0 && winner == id)))
		prepared.Set(id, gamestats.FieldTeamLose, gamestats.Int(boolInt(winner != id)))
	}
	return prepared
}

func (dota2Strategy) playerExtras(player provider.Payload, values gamestats.Values) {
	values[gamestats.FieldTowerKill] = player.Stat("tower_kills")
	values[gamestats.FieldRoshanKill] = player.Stat("neutral_creep")
}

type lolStrategy struct{}

func (lolStrategy) prepareTeams(prepared provider.Prepared, detail provider.Payload) provider.Prepared {
	for _, team := range detail.Slice("teams") {
		id := team.Map("team").Int64("id")
		if !prepared.HasTeam(id) {
			continue
		}
		prepared.Set(id, gamestats.FieldTurret, team.Stat("tower_kills"))
		prepared.Set(id, gamestats.FieldDragon, team.Stat("dragon_kills"))
		prepared.Set(id, gamestats.FieldBaron, team.Stat("baron_kills"))
	}
	return prepared
}

func (lolStrategy) playerExtras(player provider.Payload, values gamestats.Values) {
	values[gamestats.FieldCreepScore] = player.Map("kill_counters").Stat("neutral_minions")
}

func boolInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
