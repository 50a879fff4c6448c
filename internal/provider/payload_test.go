package provider

import (
	"testing"
	"time"
)

func TestPayloadAccessors(t *testing.T) {
	t.Parallel()

	p := Payload{
		"id":       float64(42),
		"title":    "  Grand Final ",
		"kills":    "7",
		"deaths":   nil,
		"rosters":  []any{map[string]any{"team_id": float64(3)}, "skip"},
		"summary":  map[string]any{"home": float64(3)},
		"empty":    []any{},
		"winner":   map[string]any{"id": float64(9)},
		"start":    "2026-03-01 10:00:00",
		"bad_time": "yesterday",
	}

	if got := p.Int64("id"); got != 42 {
		t.Fatalf("unexpected id: got=%d want=%d", got, 42)
	}
	if got := p.String("title"); got != "Grand Final" {
		t.Fatalf("unexpected title: got=%q", got)
	}
	if v, ok := p.Stat("kills").Int64(); !ok || v != 7 {
		t.Fatalf("unexpected kills: v=%d ok=%v", v, ok)
	}
	if p.Stat("deaths").Available() || p.Stat("assists").Available() {
		t.Fatalf("null and missing stats should be unavailable")
	}
	if got := len(p.Slice("rosters")); got != 1 {
		t.Fatalf("unexpected roster count: got=%d want=%d", got, 1)
	}
	if p.NonEmpty("empty") || !p.NonEmpty("summary") || p.Has("deaths") {
		t.Fatalf("unexpected emptiness checks")
	}
	if got := p.ID("winner"); got != 9 {
		t.Fatalf("unexpected nested id: got=%d want=%d", got, 9)
	}
	if got := p.Map("summary").Int64("home"); got != 3 {
		t.Fatalf("unexpected summary side: got=%d want=%d", got, 3)
	}

	start := p.Time("start", "2006-01-02 15:04:05")
	if start == nil || !start.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start: %v", start)
	}
	if p.Time("bad_time", time.RFC3339) != nil {
		t.Fatalf("malformed time should be nil")
	}
}
