package audit

import (
	"fmt"
	"strings"
	"time"
)

// Scope selects the audit table: current (watch) or past (backfill).
type Scope string

const (
	ScopeCurrent Scope = "current"
	ScopePast    Scope = "past"
)

// Invalid records a payload that failed validation. ParentID points at the
// watch entry or the past game when one exists.
type Invalid struct {
	Scope      Scope
	ParentID   *int64
	SourceURL  string
	Problem    string
	InsertedAt time.Time
}

func (i Invalid) Validate() error {
	if i.Scope != ScopeCurrent && i.Scope != ScopePast {
		return fmt.Errorf("unknown audit scope %q", i.Scope)
	}
	if strings.TrimSpace(i.Problem) == "" {
		return fmt.Errorf("problem message is required")
	}
	return nil
}
