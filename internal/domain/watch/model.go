package watch

import (
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
)

// ErrAlreadyWatched is returned by Insert when a non-deleted entry for the
// same provider and external id exists.
var ErrAlreadyWatched = crerr.New("game is already watched")

// Entry is one game under observation (current_game_watch).
type Entry struct {
	ID              int64
	Provider        esport.Provider
	Game            esport.Game
	SourceURL       string
	ExternalID      int64
	Title           string
	StartAt         *time.Time
	FinishAt        *time.Time
	TournamentID    int64
	TournamentTitle *string
	IsWatching      bool
	IsDeleted       bool
	InsertedAt      time.Time
}

type State string

const (
	StateWatching    State = "watching"
	StateStopped     State = "stopped"
	StateInvalidated State = "invalidated"
)

func (e Entry) State() State {
	switch {
	case e.IsDeleted:
		return StateInvalidated
	case e.IsWatching:
		return StateWatching
	default:
		return StateStopped
	}
}

// WindowClosed reports whether the observation window of limit, counted from
// discovery, has elapsed at now. The boundary itself closes the window.
func (e Entry) WindowClosed(now time.Time, limit time.Duration) bool {
	return !now.Before(e.InsertedAt.Add(limit))
}

func (e Entry) Validate() error {
	if e.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if e.Game == "" {
		return fmt.Errorf("game is required")
	}
	if e.ExternalID <= 0 {
		return fmt.Errorf("external id must be greater than zero")
	}
	if strings.TrimSpace(e.SourceURL) == "" {
		return fmt.Errorf("source url is required")
	}
	return nil
}
