package app

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTraceStatement(t *testing.T) {
	t.Parallel()

	got := traceStatement(" SELECT   *\nFROM current_game_watch \t WHERE data_src = $1 ")
	want := "SELECT * FROM current_game_watch WHERE data_src = $1"
	if got != want {
		t.Fatalf("unexpected statement: got=%q want=%q", got, want)
	}

	long := "SELECT " + strings.Repeat("é", maxTracedStatementLen)
	got = traceStatement(long)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("long statement must be cut: got len=%d", len(got))
	}
	if !utf8.ValidString(strings.TrimSuffix(got, "...")) {
		t.Fatalf("cut statement must stay valid utf8")
	}
}
