package provider1

import (
	"strconv"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

// strategy turns one game's detail payload into statistics. sides are the
// two configured match_summary keys.
type strategy interface {
	prepareTeams(sides []string, detail provider.Payload) provider.Prepared
	teams(prepared provider.Prepared) gamestats.EntitySet
	preparePlayers(sides []string, detail provider.Payload) provider.Prepared
	players(sides []string, prepared provider.Prepared, detail provider.Payload) gamestats.EntitySet
}

var strategies = map[esport.Game]strategy{
	esport.GameCSGO:  csgoStrategy{},
	esport.GameDota2: dota2Strategy{},
	esport.GameLoL:   lolStrategy{},
}

type Transformer struct {
	configs esport.GameConfigs
}

func NewTransformer(configs esport.GameConfigs) *Transformer {
	return &Transformer{configs: configs}
}

func (t *Transformer) resolve(game esport.Game, detail provider.Payload) (strategy, []string, error) {
	cfg, err := t.configs.Get(game)
	if err != nil {
		return nil, nil, err
	}
	s, ok := strategies[game]
	if !ok {
		return nil, nil, provider.Invalidf(game, "unsupported game")
	}
	if len(detail.Map("match_summary")) == 0 {
		return nil, nil, provider.Missing(game, "match_summary")
	}
	return s, cfg.Provider1Sides, nil
}

func (t *Transformer) PrepareTeamData(game esport.Game, detail provider.Payload) (provider.Prepared, error) {
	s, sides, err := t.resolve(game, detail)
	if err != nil {
		return provider.Prepared{}, err
	}
	return s.prepareTeams(sides, detail), nil
}

func (t *Transformer) GetTeamData(game esport.Game, prepared provider.Prepared, detail provider.Payload) (gamestats.EntitySet, error) {
	s, _, err := t.resolve(game, detail)
	if err != nil {
		return nil, err
	}
	return s.teams(prepared), nil
}

func (t *Transformer) PreparePlayerData(game esport.Game, detail provider.Payload) (provider.Prepared, error) {
	s, sides, err := t.resolve(game, detail)
	if err != nil {
		return provider.Prepared{}, err
	}
	return s.preparePlayers(sides, detail), nil
}

func (t *Transformer) GetPlayerData(game esport.Game, prepared provider.Prepared, detail provider.Payload) (gamestats.EntitySet, error) {
	s, sides, err := t.resolve(game, detail)
	if err != nil {
		return nil, err
	}
	return s.players(sides, prepared, detail), nil
}

// teamSet copies the prepared tallies of fields for every prepared team.
func teamSet(prepared provider.Prepared, fields []gamestats.Field) gamestats.EntitySet {
	out := make(gamestats.EntitySet, len(prepared.TeamIDs))
	for _, id := range prepared.TeamIDs {
		values := make(gamestats.Values, len(fields))
		for _, field := range fields {
			values[field] = prepared.Count(id, field, gamestats.Unavailable())
		}
		out[id] = values
	}
	return out
}

func commonPlayerStats(player provider.Payload) gamestats.Values {
	return gamestats.Values{
		gamestats.FieldKill:   player.Stat("kills"),
		gamestats.FieldAssist: player.Stat("assists"),
		gamestats.FieldDeath:  player.Stat("deaths"),
	}
}

func rosterTeams(detail provider.Payload) []int64 {
	rosters := detail.Slice("rosters")
	out := make([]int64, 0, 2)
	for i := 0; i < len(rosters) && i < 2; i++ {
		out = append(out, rosterTeamID(rosters[i]))
	}
	return out
}

type csgoStrategy struct{}

func (csgoStrategy) prepareTeams(sides []string, detail provider.Payload) provider.Prepared {
	summary := detail.Map("match_summary")
	prepared := provider.Prepared{TeamIDs: []int64{summary.Int64(sides[0]), summary.Int64(sides[1])}}
	home, away := prepared.TeamIDs[0], prepared.TeamIDs[1]

	if scores := summary.Map("scores"); len(scores) > 0 {
		for key := range scores {
			id, err := strconv.ParseInt(key, 10, 64)
			if err != nil || !prepared.HasTeam(id) {
				continue
			}
			prepared.Set(id, gamestats.FieldRoundWin, scores.Stat(key))
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
			for _, event := range round.Slice("bomb_events") {
				switch event.String("type") {
				case "exploded":
					prepared.Tally(winner, gamestats.FieldBombPlant, 1)
				case "defused":
					prepared.Tally(winner, gamestats.FieldBombDefuse, 1)
				}
			}
		}
	}
	return prepared
}

func (csgoStrategy) teams(prepared provider.Prepared) gamestats.EntitySet {
	return teamSet(prepared, gamestats.FieldsFor(esport.GameCSGO, gamestats.KindTeam))
}

func (csgoStrategy) preparePlayers([]string, provider.Payload) provider.Prepared {
	return provider.Prepared{}
}

func (csgoStrategy) players(sides []string, _ provider.Prepared, detail provider.Payload) gamestats.EntitySet {
	scoreboard := detail.Map("match_summary").Map("scoreboard")
	out := gamestats.EntitySet{}
	for _, side := range sides {
		for _, player := range scoreboard.Slice(side) {
			out[player.Int64("player_id")] = commonPlayerStats(player)
		}
	}
	return out
}

type dota2Strategy struct{}

func (dota2Strategy) prepareTeams(_ []string, detail provider.Payload) provider.Prepared {
	prepared := provider.Prepared{TeamIDs: rosterTeams(detail)}
	winner := detail.ID("winner")
	for _, id := range prepared.TeamIDs {
		prepared.Set(id, gamestats.FieldTeamWin, gamestats.Int(boolInt(winner == id)))
		prepared.Set(id, gamestats.FieldTeamLose, gamestats.Int(boolInt(winner != id)))
	}
	return prepared
}

func (dota2Strategy) teams(prepared provider.Prepared) gamestats.EntitySet {
	return teamSet(prepared, gamestats.FieldsFor(esport.GameDota2, gamestats.KindTeam))
}

// preparePlayers keeps player_stats entries of rostered players and counts
// tower and roshan kills. A count is zero when its event list exists and
// unavailable when it does not.
func (dota2Strategy) preparePlayers(_ []string, detail provider.Payload) provider.Prepared {
	rostered := map[int64]struct{}{}
	rosters := detail.Slice("rosters")
	for i := 0; i < len(rosters) && i < 2; i++ {
		for _, player := range rosters[i].Slice("players") {
			rostered[player.Int64("id")] = struct{}{}
		}
	}

	summary := detail.Map("match_summary")
	prepared := provider.Prepared{TeamIDs: rosterTeams(detail)}
	for _, player := range summary.Slice("player_stats") {
		if _, ok := rostered[player.Int64("player_id")]; ok {
			prepared.Entries = append(prepared.Entries, player)
		}
	}

	count := func(listKey string, field gamestats.Field, match func(provider.Payload) bool) {
		if !summary.Has(listKey) {
			return
		}
		for _, player := range prepared.Entries {
			prepared.Set(player.Int64("player_id"), field, gamestats.Int(0))
		}
		for _, event := range summary.Slice(listKey) {
			killer := event.Int64("killer")
			if _, ok := prepared.Tallies[killer]; ok && match(event) {
				prepared.Tally(killer, field, 1)
			}
		}
	}
	count("structure_dest", gamestats.FieldTowerKill, func(e provider.Payload) bool {
		return e.String("structure_type") == "tower"
	})
	count("roshan_events", gamestats.FieldRoshanKill, func(e provider.Payload) bool {
		return e.String("type") == "kill"
	})
	return prepared
}

func (dota2Strategy) players(_ []string, prepared provider.Prepared, _ provider.Payload) gamestats.EntitySet {
	out := make(gamestats.EntitySet, len(prepared.Entries))
	for _, player := range prepared.Entries {
		id := player.Int64("player_id")
		values := commonPlayerStats(player)
		values[gamestats.FieldTowerKill] = prepared.Count(id, gamestats.FieldTowerKill, gamestats.Unavailable())
		values[gamestats.FieldRoshanKill] = prepared.Count(id, gamestats.FieldRoshanKill, gamestats.Unavailable())
		out[id] = values
	}
	return out
}

type lolStrategy struct{}

var lolObjectives = []struct {
	key   string
	field gamestats.Field
}{
	{"towers", gamestats.FieldTurret},
	{"dragons", gamestats.FieldDragon},
	{"barons", gamestats.FieldBaron},
}

// prepareTeams credits objective kills to the team whose side lists the
// killer. An objective with no events stays unavailable.
func (lolStrategy) prepareTeams(sides []string, detail provider.Payload) provider.Prepared {
	summary := detail.Map("match_summary")
	prepared := provider.Prepared{TeamIDs: rosterTeams(detail)}
	if len(prepared.TeamIDs) < 2 {
		return prepared
	}

	owner := map[int64]int64{}
	for i, side := range sides {
		for _, player := range summary.Map(side).Slice("players") {
			owner[player.Int64("player_id")] = prepared.TeamIDs[i]
		}
	}

	objectives := summary.Map("objective_events")
	for _, objective := range lolObjectives {
		events := objectives.Slice(objective.key)
		if len(events) == 0 {
			continue
		}
		for _, id := range prepared.TeamIDs {
			prepared.Set(id, objective.field, gamestats.Int(0))
		}
		for _, event := range events {
			if team, ok := owner[event.Int64("killer_id")]; ok {
				prepared.Tally(team, objective.field, 1)
			}
		}
	}
	return prepared
}

func (lolStrategy) teams(prepared provider.Prepared) gamestats.EntitySet {
	return teamSet(prepared, gamestats.FieldsFor(esport.GameLoL, gamestats.KindTeam))
}

func (lolStrategy) preparePlayers([]string, provider.Payload) provider.Prepared {
	return provider.Prepared{}
}

func (lolStrategy) players(sides []string, _ provider.Prepared, detail provider.Payload) gamestats.EntitySet {
	summary := detail.Map("match_summary")
	out := gamestats.EntitySet{}
	for _, side := range sides {
		for _, player := range summary.Map(side).Slice("players") {
			values := commonPlayerStats(player)
			values[gamestats.FieldCreepScore] = player.Map("minion_kills").Stat("total")
			out[player.Int64("player_id")] = values
		}
	}
	return out
}

func boolInt(v bool) int64 {
	if v {
		return 1
	}
	return 0
}
