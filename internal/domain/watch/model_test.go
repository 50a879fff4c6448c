package watch

import (
	"testing"
	"time"
)

func TestEntryWindowClosedAtBoundary(t *testing.T) {
	t.Parallel()

	inserted := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	entry := Entry{InsertedAt: inserted}
	limit := 20 * time.Minute

	if entry.WindowClosed(inserted.Add(limit-time.Second), limit) {
		t.Fatalf("window should be open one second before the limit")
	}
	if !entry.WindowClosed(inserted.Add(limit), limit) {
		t.Fatalf("window should close exactly at the limit")
	}
}

func TestEntryState(t *testing.T) {
	t.Parallel()

	cases := []struct {
		entry Entry
		want  State
	}{
		{Entry{IsWatching: true}, StateWatching},
		{Entry{}, StateStopped},
		{Entry{IsWatching: false, IsDeleted: true}, StateInvalidated},
	}
	for _, tc := range cases {
		if got := tc.entry.State(); got != tc.want {
			t.Fatalf("unexpected state: got=%s want=%s", got, tc.want)
		}
	}
}

func TestEntryValidate(t *testing.T) {
	t.Parallel()

	entry := Entry{Provider: "provider1", Game: "csgo", ExternalID: 5, SourceURL: "series/1"}
	if err := entry.Validate(); err != nil {
		t.Fatalf("unexpected validate error: %v", err)
	}
	entry.ExternalID = 0
	if err := entry.Validate(); err == nil {
		t.Fatalf("expected error for missing external id")
	}
}
