package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/esport-datanal/internal/domain/audit"
)

type auditRepository struct {
	st *state
}

func (r auditRepository) Record(_ context.Context, item audit.Invalid) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid audit row: %w", err)
	}
	r.st.invalid = append(r.st.invalid, item)
	return nil
}
