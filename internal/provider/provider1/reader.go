// Package provider1 holds the payload strategies of the provider1 API:
// series listings that embed matches, OAuth-authenticated detail calls and a
// match_summary object keyed by configured side names.
package provider1

import (
	"github.com/riskibarqy/esport-datanal/internal/provider"
)

// TimeLayout is the timestamp format of series and match payloads.
const TimeLayout = "2006-01-02 15:04:05"

type Reader struct{}

func NewReader() *Reader {
	return &Reader{}
}

// MatchInfo reads a series from the listing.
func (r *Reader) MatchInfo(listing provider.Payload) provider.MatchInfo {
	return provider.MatchInfo{
		ExternalID:    listing.Int64("id"),
		StartAt:       listing.Time("start", TimeLayout),
		EndAt:         listing.Time("end", TimeLayout),
		TournamentRef: listing.Int64("tournament_id"),
	}
}

// Games lists the matches of an expanded series. Title, schedule and
// tournament come from the series itself.
func (r *Reader) Games(expanded provider.Payload) []provider.GameRef {
	matches := expanded.Slice("matches")
	out := make([]provider.GameRef, 0, len(matches))
	for _, match := range matches {
		id := match.Int64("id")
		if id <= 0 {
			continue
		}
		out = append(out, provider.GameRef{
			ExternalID:   id,
			Title:        expanded.String("title"),
			StartAt:      expanded.Time("start", TimeLayout),
			EndAt:        expanded.Time("end", TimeLayout),
			TournamentID: expanded.Int64("tournament_id"),
			Match:        match,
		})
	}
	return out
}
