package tournament

import (
	"context"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
)

type Repository interface {
	ListByGame(ctx context.Context, game esport.Game) ([]Tournament, error)
	ReplaceByGame(ctx context.Context, game esport.Game, items []Tournament) error
}
