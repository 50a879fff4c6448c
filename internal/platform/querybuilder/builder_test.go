package querybuilder

import "testing"

func TestSelectBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id", "data_src_game_id").
		From("current_game_watch").
		Where(Eq("data_src", "provider1"), Eq("is_deleted", false), Lt("id", int64(50))).
		OrderBy("id").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, data_src_game_id FROM current_game_watch WHERE data_src = $1 AND is_deleted = $2 AND id < $3 ORDER BY id LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != "provider1" || args[1] != false || args[2] != int64(50) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilderDistinctOnJoin(t *testing.T) {
	t.Parallel()

	query, args, err := Select("r.data_src_team_id", "r.round_win").
		DistinctOn("r.data_src_team_id").
		From("current_game_team_stats r").
		Join("JOIN current_game_stats s ON s.id = r.current_game_stats_id").
		Where(Eq("s.watch_game_id", int64(7)), Lt("s.id", int64(30))).
		OrderBy("r.data_src_team_id", "s.id DESC").
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT DISTINCT ON (r.data_src_team_id) r.data_src_team_id, r.round_win FROM current_game_team_stats r " +
		"JOIN current_game_stats s ON s.id = r.current_game_stats_id WHERE s.watch_game_id = $1 AND s.id < $2 " +
		"ORDER BY r.data_src_team_id, s.id DESC"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args len: got=%d want=%d", len(args), 2)
	}
}

func TestInsertBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := InsertInto("current_game_stats").
		Columns("watch_game_id", "insert_datetime").
		Values(int64(3), "2026-03-01").
		Suffix("RETURNING id").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO current_game_stats (watch_game_id, insert_datetime) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Update("past_game_analysis").
		SetExpr("games_total_count", "games_total_count + ?", 4).
		Set("update_datetime", "now").
		Where(Eq("data_src", "provider2")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE past_game_analysis SET games_total_count = games_total_count + $1, update_datetime = $2 WHERE data_src = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[0] != 4 || args[2] != "provider2" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	t.Parallel()

	query, args, err := Delete("current_game_team_stats").
		Where(Eq("current_game_stats_id", int64(9)), Eq("data_src_team_id", int64(101))).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}

	wantQuery := "DELETE FROM current_game_team_stats WHERE current_game_stats_id = $1 AND data_src_team_id = $2"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args len: got=%d want=%d", len(args), 2)
	}

	if _, _, err := Delete("current_game_stats").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}

func TestInsertStruct(t *testing.T) {
	t.Parallel()

	type row struct {
		ID      int64  `db:"id,readonly"`
		Skip    string `db:"-"`
		Problem string `db:"problem_msg"`
		URL     string `db:"data_src_url"`
		hidden  string
	}
	builder, err := InsertStruct("current_game_invalid", &row{ID: 9, Problem: "bad", URL: "u", hidden: "x"})
	if err != nil {
		t.Fatalf("build insert struct: %v", err)
	}
	query, args, err := builder.Suffix("RETURNING id").ToSQL()
	if err != nil {
		t.Fatalf("to sql: %v", err)
	}
	wantQuery := "INSERT INTO current_game_invalid (problem_msg, data_src_url) VALUES ($1, $2) RETURNING id"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "bad" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestInsertStructRejectsNonStruct(t *testing.T) {
	t.Parallel()

	var nilRow *struct{ A int }
	for _, model := range []any{42, nilRow, struct{ a int }{}} {
		if _, err := InsertStruct("t", model); err == nil {
			t.Fatalf("expected error for %T", model)
		}
	}
}

func TestInCondition(t *testing.T) {
	t.Parallel()

	query, args, err := Select("id").
		From("current_game_watch").
		Where(Eq("data_src", "provider1"), In("data_src_game_id", []any{int64(4), int64(5)})).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	wantQuery := "SELECT id FROM current_game_watch WHERE data_src = $1 AND data_src_game_id IN ($2, $3)"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected args len: got=%d want=%d", len(args), 3)
	}

	query, args, err = Delete("current_game_watch").Where(In("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM current_game_watch WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected empty-set query: %s %+v", query, args)
	}
}
