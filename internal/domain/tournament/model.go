package tournament

import (
	"fmt"
	"sort"
	"strings"

	"github.com/riskibarqy/esport-datanal/internal/domain/esport"
)

// Tournament maps a canonical tournament to each provider's own id. A zero
// provider id means the provider does not cover it.
type Tournament struct {
	ID                    string `json:"id" validate:"required"`
	Name                  string `json:"name,omitempty"`
	Provider1TournamentID int64  `json:"provider1_tournament_id" validate:"gte=0"`
	Provider2LeagueID     int64  `json:"provider2_league_id" validate:"gte=0"`
}

func (t Tournament) ProviderRef(p esport.Provider) int64 {
	switch p {
	case esport.ProviderOne:
		return t.Provider1TournamentID
	case esport.ProviderTwo:
		return t.Provider2LeagueID
	default:
		return 0
	}
}

func (t Tournament) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("tournament id is required")
	}
	if t.Provider1TournamentID < 0 || t.Provider2LeagueID < 0 {
		return fmt.Errorf("tournament %s: provider ids must be >= 0", t.ID)
	}
	return nil
}

// ProviderIDs returns the distinct non-zero ids of p, sorted.
func ProviderIDs(items []Tournament, p esport.Provider) []int64 {
	seen := make(map[int64]struct{}, len(items))
	out := make([]int64, 0, len(items))
	for _, item := range items {
		ref := item.ProviderRef(p)
		if ref <= 0 {
			continue
		}
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		out = append(out, ref)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
