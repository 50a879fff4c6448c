package analysis

import "context"

type Repository interface {
	Save(ctx context.Context, report Report) error
}
