package gamestats

import "testing"

func csgoTeams(roundWin, bombPlant int64) EntitySet {
	return EntitySet{
		101: {FieldRoundWin: Int(roundWin), FieldRoundLose: Int(3), FieldBombPlant: Int(bombPlant), FieldBombDefuse: Unavailable()},
		202: {FieldRoundWin: Int(3), FieldRoundLose: Int(roundWin), FieldBombPlant: Int(1), FieldBombDefuse: Unavailable()},
	}
}

func csgoPlayers(kills int64) EntitySet {
	return EntitySet{
		1: {FieldKill: Int(kills), FieldAssist: Int(2), FieldDeath: Int(4)},
		2: {FieldKill: Int(7), FieldAssist: Int(0), FieldDeath: Int(5)},
	}
}

func TestClassify_FirstObservation(t *testing.T) {
	t.Parallel()

	out := Classify(Baseline{}, csgoTeams(5, 1), csgoPlayers(10))
	if out.Classification != ClassificationNone {
		t.Fatalf("unexpected classification: got=%s want=%s", out.Classification, ClassificationNone)
	}

	plan := out.Plan()
	if !plan.DeleteMarker || plan.DeleteSnapshot || len(plan.Prune) != 0 {
		t.Fatalf("unexpected plan for first observation: %+v", plan)
	}
}

func TestClassify_IdenticalPollIsUnchanged(t *testing.T) {
	t.Parallel()

	baseline := Baseline{Found: true, Teams: csgoTeams(5, 1), Players: csgoPlayers(10)}
	out := Classify(baseline, csgoTeams(5, 1), csgoPlayers(10))
	if out.Classification != ClassificationUnchanged {
		t.Fatalf("unexpected classification: got=%s want=%s", out.Classification, ClassificationUnchanged)
	}

	plan := out.Plan()
	if !plan.DeleteSnapshot || plan.DeleteMarker {
		t.Fatalf("unexpected plan for unchanged poll: %+v", plan)
	}
}

func TestClassify_SingleEntityChange(t *testing.T) {
	t.Parallel()

	baseline := Baseline{Found: true, Teams: csgoTeams(5, 1), Players: csgoPlayers(10)}
	out := Classify(baseline, csgoTeams(5, 1), csgoPlayers(11))
	if out.Classification != ClassificationChanged {
		t.Fatalf("unexpected classification: got=%s want=%s", out.Classification, ClassificationChanged)
	}
	if got := out.PlayerChanges[1]; got != 1 {
		t.Fatalf("unexpected change count for player 1: got=%d want=%d", got, 1)
	}
	if got := out.TotalChanges(); got != 1 {
		t.Fatalf("unexpected total changes: got=%d want=%d", got, 1)
	}

	plan := out.Plan()
	if plan.DeleteMarker || plan.DeleteSnapshot {
		t.Fatalf("changed poll must not drop a whole side: %+v", plan)
	}

	sides := map[EntityKind]map[int64]Side{}
	for _, p := range plan.Prune {
		if sides[p.Kind] == nil {
			sides[p.Kind] = map[int64]Side{}
		}
		sides[p.Kind][p.EntityID] = p.Side
	}
	if sides[KindPlayer][1] != SideUnchanged {
		t.Fatalf("changed player should leave the marker side: got=%s", sides[KindPlayer][1])
	}
	if sides[KindPlayer][2] != SideStats {
		t.Fatalf("unchanged player should leave the stats side: got=%s", sides[KindPlayer][2])
	}
	for _, id := range []int64{101, 202} {
		if sides[KindTeam][id] != SideStats {
			t.Fatalf("unchanged team %d should leave the stats side: got=%s", id, sides[KindTeam][id])
		}
	}
}

func TestCountChanges_UnavailableIsDistinctFromZero(t *testing.T) {
	t.Parallel()

	baseline := EntitySet{7: {FieldTowerKill: Unavailable(), FieldKill: Int(0)}}
	current := EntitySet{7: {FieldTowerKill: Int(0), FieldKill: Int(0)}}

	changes := CountChanges(PlayerFields, baseline, current)
	if got := changes[7]; got != 1 {
		t.Fatalf("unexpected change count: got=%d want=%d", got, 1)
	}
}

func TestCountChanges_NewEntityCountsPresentFields(t *testing.T) {
	t.Parallel()

	baseline := EntitySet{1: {FieldKill: Int(1)}}
	current := EntitySet{
		1: {FieldKill: Int(1)},
		9: {FieldKill: Int(0), FieldDeath: Unavailable()},
	}

	changes := CountChanges(PlayerFields, baseline, current)
	if got := changes[1]; got != 0 {
		t.Fatalf("unexpected change count for known entity: got=%d want=%d", got, 0)
	}
	if got := changes[9]; got != 2 {
		t.Fatalf("unexpected change count for new entity: got=%d want=%d", got, 2)
	}
}

func TestCountChanges_IgnoresFieldsAbsentFromCurrent(t *testing.T) {
	t.Parallel()

	baseline := EntitySet{3: {FieldDragon: Int(2), FieldBaron: Int(1)}}
	current := EntitySet{3: {FieldDragon: Int(2)}}

	if got := CountChanges(TeamFields, baseline, current)[3]; got != 0 {
		t.Fatalf("unexpected change count: got=%d want=%d", got, 0)
	}
}
