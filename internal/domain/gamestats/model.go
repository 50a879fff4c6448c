package gamestats

import (
	"database/sql/driver"
	"fmt"
	"sort"
	"strconv"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
)

// Field is a semantic statistic. Its string form is the storage column name.
type Field string

const (
	FieldBombPlant  Field = "bomb_plant"
	FieldBombDefuse Field = "bomb_defuse"
	FieldRoundWin   Field = "round_win"
	FieldRoundLose  Field = "round_lose"
	FieldTeamWin    Field = "team_win"
	FieldTeamLose   Field = "team_lose"
	FieldTurret     Field = "turret"
	FieldDragon     Field = "dragon"
	FieldBaron      Field = "baron"

	FieldKill       Field = "kill"
	FieldAssist     Field = "assist"
	FieldDeath      Field = "death"
	FieldTowerKill  Field = "tower_kill"
	FieldRoshanKill Field = "roshan_kill"
	FieldCreepScore Field = "creep_score"
)

// TeamFields and PlayerFields are every column of the team and player tables.
var (
	TeamFields = []Field{
		FieldBombPlant, FieldBombDefuse, FieldRoundWin, FieldRoundLose,
		FieldTeamWin, FieldTeamLose, FieldTurret, FieldDragon, FieldBaron,
	}
	PlayerFields = []Field{
		FieldKill, FieldAssist, FieldDeath, FieldTowerKill, FieldRoshanKill, FieldCreepScore,
	}
)

// EntityKind distinguishes team rows from player rows.
type EntityKind string

const (
	KindTeam   EntityKind = "team"
	KindPlayer EntityKind = "player"
)

func (k EntityKind) Fields() []Field {
	if k == KindTeam {
		return TeamFields
	}
	return PlayerFields
}

var gameFields = map[esport.Game]map[EntityKind][]Field{
	esport.GameCSGO: {
		KindTeam:   {FieldBombPlant, FieldBombDefuse, FieldRoundWin, FieldRoundLose},
		KindPlayer: {FieldKill, FieldAssist, FieldDeath},
	},
	esport.GameDota2: {
		KindTeam:   {FieldTeamWin, FieldTeamLose},
		KindPlayer: {FieldKill, FieldAssist, FieldDeath, FieldTowerKill, FieldRoshanKill},
	},
	esport.GameLoL: {
		KindTeam:   {FieldTurret, FieldDragon, FieldBaron},
		KindPlayer: {FieldKill, FieldAssist, FieldDeath, FieldCreepScore},
	},
}

// FieldsFor returns the fields a game populates for the given kind.
func FieldsFor(game esport.Game, kind EntityKind) []Field {
	return gameFields[game][kind]
}

// Value is an integer statistic or the explicit unavailable sentinel. The
// zero Value is unavailable. Unavailable is stored as NULL and never as 0.
type Value struct {
	n  int64
	ok bool
}

func Int(n int64) Value {
	return Value{n: n, ok: true}
}

func Unavailable() Value {
	return Value{}
}

func (v Value) Int64() (int64, bool) {
	return v.n, v.ok
}

func (v Value) Available() bool {
	return v.ok
}

func (v Value) String() string {
	if !v.ok {
		return "unavailable"
	}
	return strconv.FormatInt(v.n, 10)
}

func (v Value) Value() (driver.Value, error) {
	if !v.ok {
		return nil, nil
	}
	return v.n, nil
}

func (v *Value) Scan(src any) error {
	switch x := src.(type) {
	case nil:
		*v = Unavailable()
	case int64:
		*v = Int(x)
	case int32:
		*v = Int(int64(x))
	case []byte:
		n, err := strconv.ParseInt(string(x), 10, 64)
		if err != nil {
			return fmt.Errorf("scan stat value %q: %w", x, err)
		}
		*v = Int(n)
	default:
		return fmt.Errorf("scan stat value: unsupported type %T", src)
	}
	return nil
}

// Values maps the fields of one entity to their values. A field missing from
// the map was not reported at all, which differs from Unavailable.
type Values map[Field]Value

// CountUnavailable counts the fields that are present and unavailable.
func (v Values) CountUnavailable() int {
	count := 0
	for _, value := range v {
		if !value.Available() {
			count++
		}
	}
	return count
}

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for field, value := range v {
		out[field] = value
	}
	return out
}

// EntitySet is keyed by the provider's team or player id.
type EntitySet map[int64]Values

func (s EntitySet) IDs() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s EntitySet) CountUnavailable() int {
	count := 0
	for _, values := range s {
		count += values.CountUnavailable()
	}
	return count
}

func (s EntitySet) Clone() EntitySet {
	out := make(EntitySet, len(s))
	for id, values := range s {
		out[id] = values.Clone()
	}
	return out
}
