package provider2

import (
	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) ValidateMatch(game esport.Game, match provider.Payload) error {
	if !match.NonEmpty("games") {
		return provider.Missing(game, "games")
	}
	return nil
}

func (v *Validator) ValidateGame(game esport.Game, match, detail provider.Payload) error {
	if match == nil {
		match = detail.Map("match")
	}
	if len(opponentIDs(detail)) != 2 {
		return provider.Invalidf(game, `"opponents" empty in data or invalid for match %d`, match.Int64("id"))
	}
	if !detail.NonEmpty("players") {
		return provider.Invalidf(game, `"players" missing in data or empty for match %d`, match.Int64("id"))
	}
	return nil
}

func opponentIDs(detail provider.Payload) []int64 {
	opponents := detail.Map("match").Slice("opponents")
	out := make([]int64, 0, len(opponents))
	for _, item := range opponents {
		if id := item.Map("opponent").Int64("id"); id != 0 {
			out = append(out, id)
		}
	}
	return out
}
