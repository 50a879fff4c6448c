package postgres

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"github.com/riskibarqy/esport-datanal/internal/domain/gamestats"
)

func TestIsTransient(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"bad conn", fmt.Errorf("begin: %w", driver.ErrBadConn), true},
		{"connection exception class", &pq.Error{Code: "08006"}, true},
		{"cannot connect now", &pq.Error{Code: "57P03"}, true},
		{"unique violation", &pq.Error{Code: "23505"}, false},
		{"refused", fakeErr("dial tcp 127.0.0.1:5432: connect: connection refused"), true},
		{"no rows", sql.ErrNoRows, false},
		{"nil", nil, false},
	}
	for _, tc := range cases {
		if got := isTransient(tc.err); got != tc.want {
			t.Fatalf("%s: got=%t want=%t", tc.name, got, tc.want)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(fmt.Errorf("get: %w", sql.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to be not found")
	}
	if isNotFound(fakeErr("pq: relation current_game_watch does not exist")) {
		t.Fatalf("expected unrelated error to be found")
	}
}

func TestStatsTables(t *testing.T) {
	t.Parallel()

	cases := []struct {
		got, want string
	}{
		{currentRowsTable(gamestats.SideStats, gamestats.KindTeam), "current_game_team_stats"},
		{currentRowsTable(gamestats.SideUnchanged, gamestats.KindPlayer), "current_game_player_unchanged"},
		{pastRowsTable(gamestats.KindPlayer), "past_game_player_stats"},
		{entityColumn(gamestats.KindTeam), "data_src_team_id"},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Fatalf("unexpected table name: got=%s want=%s", tc.got, tc.want)
		}
	}
}

func TestInsertRowsQuery_UnavailableIsNull(t *testing.T) {
	t.Parallel()

	set := gamestats.EntitySet{
		7: gamestats.Values{gamestats.FieldKill: gamestats.Int(3), gamestats.FieldDeath: gamestats.Unavailable()},
	}
	query, args, err := insertRowsQuery("current_game_player_stats", gamestats.KindPlayer, 11, "https://api.test/games/1", set)
	if err != nil {
		t.Fatalf("build insert rows query: %v", err)
	}
	if query == "" {
		t.Fatalf("expected query")
	}
	// stats_game_id, data_src_url, data_src_player_id, then one value per player field.
	if want := 3 + len(gamestats.PlayerFields); len(args) != want {
		t.Fatalf("unexpected arg count: got=%d want=%d", len(args), want)
	}
	if args[0] != int64(11) || args[2] != int64(7) {
		t.Fatalf("unexpected leading args: %v", args[:3])
	}
	for i, field := range gamestats.PlayerFields {
		value := args[3+i].(gamestats.Value)
		if field == gamestats.FieldKill {
			if n, ok := value.Int64(); !ok || n != 3 {
				t.Fatalf("unexpected kill value: %v", value)
			}
			continue
		}
		if value.Available() {
			t.Fatalf("expected %s stored as NULL, got %v", field, value)
		}
	}
}

type fakeErr string

func (e fakeErr) Error() string { return string(e) }
