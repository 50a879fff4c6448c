package provider

import (
	"fmt"

	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
)

var (
	ErrUnknownProvider = crerr.New("unknown provider")
	ErrValidation      = crerr.New("payload validation failed")
)

// UnknownProviderError is returned when no adapter is registered for a name.
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q", e.Name)
}

func (e *UnknownProviderError) Is(target error) bool {
	return target == ErrUnknownProvider
}

// ValidationError carries the problem message stored in the audit tables.
type ValidationError struct {
	Game   esport.Game
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalidf builds a ValidationError whose message is prefixed with the game
// label, e.g. `CSGO - "matches" missing in data or empty`.
func Invalidf(game esport.Game, format string, args ...any) error {
	return &ValidationError{
		Game:   game,
		Reason: game.Label() + " - " + fmt.Sprintf(format, args...),
	}
}

// Missing is the common "key missing or empty" problem.
func Missing(game esport.Game, key string) error {
	return Invalidf(game, "%q missing in data or empty", key)
}
