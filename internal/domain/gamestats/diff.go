package gamestats

// Classification is the outcome of comparing a poll against its baseline.
type Classification string

const (
	// ClassificationNone marks the first observation of a watch entry.
	ClassificationNone      Classification = "none"
	ClassificationUnchanged Classification = "unchanged"
	ClassificationChanged   Classification = "changed"
)

// Side selects one half of a snapshot pair: the stats snapshot keeps data
// that changed, the unchanged marker keeps data that did not.
type Side string

const (
	SideStats     Side = "stats"
	SideUnchanged Side = "unchanged"
)

// Baseline is the most recent retained stats data per entity before the
// poll being classified. Found is false when no stats snapshot exists yet.
type Baseline struct {
	Found   bool
	Teams   EntitySet
	Players EntitySet
}

// CountChanges returns, per entity in current, how many of fields differ from
// the baseline. Only fields present in current are compared. An entity with
// no baseline row counts every present field.
func CountChanges(fields []Field, baseline, current EntitySet) map[int64]int {
	out := make(map[int64]int, len(current))
	for id, values := range current {
		prev, known := baseline[id]
		count := 0
		for _, field := range fields {
			value, present := values[field]
			if !present {
				continue
			}
			if !known {
				count++
				continue
			}
			if old, had := prev[field]; !had || old != value {
				count++
			}
		}
		out[id] = count
	}
	return out
}

type Outcome struct {
	Classification Classification
	TeamChanges    map[int64]int
	PlayerChanges  map[int64]int
}

// TotalChanges sums changed fields across teams and players.
func (o Outcome) TotalChanges() int {
	total := 0
	for _, n := range o.TeamChanges {
		total += n
	}
	for _, n := range o.PlayerChanges {
		total += n
	}
	return total
}

// Classify compares a poll with its baseline.
func Classify(baseline Baseline, teams, players EntitySet) Outcome {
	if !baseline.Found {
		return Outcome{Classification: ClassificationNone}
	}

	out := Outcome{
		TeamChanges:   CountChanges(TeamFields, baseline.Teams, teams),
		PlayerChanges: CountChanges(PlayerFields, baseline.Players, players),
	}
	if out.TotalChanges() == 0 {
		out.Classification = ClassificationUnchanged
	} else {
		out.Classification = ClassificationChanged
	}
	return out
}

// EntityPrune drops one entity row from one side of the pair.
type EntityPrune struct {
	Side     Side
	Kind     EntityKind
	EntityID int64
}

// Plan lists the deletions that follow a classification.
type Plan struct {
	DeleteMarker   bool
	DeleteSnapshot bool
	Prune          []EntityPrune
}

// Plan derives the deletions: the first observation drops the marker, an
// unchanged poll drops the stats snapshot, and a changed poll keeps each
// entity on exactly one side.
func (o Outcome) Plan() Plan {
	switch o.Classification {
	case ClassificationNone:
		return Plan{DeleteMarker: true}
	case ClassificationUnchanged:
		return Plan{DeleteSnapshot: true}
	}

	var plan Plan
	plan.Prune = append(plan.Prune, prunes(KindTeam, o.TeamChanges)...)
	plan.Prune = append(plan.Prune, prunes(KindPlayer, o.PlayerChanges)...)
	return plan
}

func prunes(kind EntityKind, changes map[int64]int) []EntityPrune {
	ids := make(EntitySet, len(changes))
	for id := range changes {
		ids[id] = nil
	}

	out := make([]EntityPrune, 0, len(changes))
	for _, id := range ids.IDs() {
		side := SideUnchanged
		if changes[id] == 0 {
			side = SideStats
		}
		out = append(out, EntityPrune{Side: side, Kind: kind, EntityID: id})
	}
	return out
}
