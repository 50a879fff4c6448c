// Package provider2 holds the payload strategies of the provider2 API: match
// listings that embed games, token-authenticated calls and per-game details
// that embed their match.
package provider2

import (
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

// TimeLayout is the timestamp format of match payloads.
const TimeLayout = "2006-01-02T15:04:05Z"

type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

func (r *Reader) MatchInfo(listing provider.Payload) provider.MatchInfo {
	return provider.MatchInfo{
		ExternalID:    listing.Int64("id"),
		StartAt:       listing.Time("begin_at", TimeLayout),
		EndAt:         listing.Time("end_at", TimeLayout),
		TournamentRef: listing.Int64("league_id"),
	}
}

// Games lists the games of a match; the serie is the stored tournament.
func (r *Reader) Games(expanded provider.Payload) []provider.GameRef {
	games := expanded.Slice("games")
	out := make([]provider.GameRef, 0, len(games))
	for _, game := range games {
		id := game.Int64("id")
		if id <= 0 {
			continue
		}
		out = append(out, provider.GameRef{
			ExternalID:      id,
			Title:           expanded.String("name"),
			StartAt:         expanded.Time("begin_at", TimeLayout),
			EndAt:           expanded.Time("end_at", TimeLayout),
			TournamentID:    expanded.Int64("serie_id"),
			TournamentTitle: expanded.Map("serie").StringPtr("full_name"),
			Match:           expanded,
		})
	}
	return out
}
