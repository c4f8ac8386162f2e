package planner

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fkoester/equishift/pkg/core/model"
)

// planSnapshot builds a one-day event with an evening and a night shift
// sharing one duty type.
func planSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	evening := mustWindow(t, "2025-06-14", "18:00", "22:00")
	night := mustWindow(t, "2025-06-14", "22:00", "02:00")

	persons := []PersonInfo{
		{PersonID: 1, DisplayName: "Anna Albers", Status: model.PersonActive},
		{PersonID: 2, DisplayName: "Bernd Bauer", Status: model.PersonActive},
		{PersonID: 3, DisplayName: "Clara Cordes", Status: model.PersonActive},
		{PersonID: 4, DisplayName: "Dirk Dahl", Status: model.PersonActive},
		{PersonID: 5, DisplayName: "Eva Ernst", Status: model.PersonPassive},
		{PersonID: 6, DisplayName: "Finn Fischer", Status: model.PersonActive},
	}

	return &Snapshot{
		Shifts: []ShiftSlot{
			{ShiftID: 10, TaskName: "Bar", DutyTypeID: 7, Window: evening, Required: 2},
			{ShiftID: 11, TaskName: "Bar", DutyTypeID: 7, Window: night, Required: 2},
		},
		Assigned:         map[int64][]AssignedPerson{},
		CandidatesByDuty: map[int64][]PersonInfo{7: persons},
		Restrictions:     map[int64][]int64{},
		Competencies: map[int64]map[int64]CompetencyInfo{
			7: {
				1: {HasCompetence: true, IsTeamLeader: true},
				2: {HasCompetence: true, IsTeamLeader: true},
				3: {HasCompetence: true},
			},
		},
		Schedule:         map[int64][]TimeWindow{},
		HistoricalScores: map[int64]int{},
	}
}

func assignmentsByShift(p *Proposal) map[int64][]int64 {
	byShift := make(map[int64][]int64)
	for _, a := range p.Assignments {
		byShift[a.ShiftID] = append(byShift[a.ShiftID], a.PersonID)
	}
	return byShift
}

func TestGenerate_FillsEveryShiftToRequired(t *testing.T) {
	snap := planSnapshot(t)
	gen := NewGenerator(DefaultWeights(), rand.New(rand.NewSource(1)))

	proposal := gen.Generate(snap)

	byShift := assignmentsByShift(proposal)
	assert.Len(t, byShift[10], 2)
	assert.Len(t, byShift[11], 2)
}

func TestGenerate_EveryShiftGetsATeamLeader(t *testing.T) {
	snap := planSnapshot(t)
	gen := NewGenerator(DefaultWeights(), rand.New(rand.NewSource(2)))

	proposal := gen.Generate(snap)

	leads := map[int64]bool{1: true, 2: true}
	byShift := assignmentsByShift(proposal)
	for shiftID, members := range byShift {
		found := false
		for _, personID := range members {
			if leads[personID] {
				found = true
			}
		}
		assert.True(t, found, "shift %d has no team leader", shiftID)
	}
}

func TestGenerate_NeverDoubleBooksAcrossAdjacentShifts(t *testing.T) {
	snap := planSnapshot(t)

	// Many seeds, same invariant: nobody appears on both back-to-back
	// shifts because the consecutive malus disqualifies them.
	for seed := int64(0); seed < 20; seed++ {
		gen := NewGenerator(DefaultWeights(), rand.New(rand.NewSource(seed)))
		proposal := gen.Generate(snap)

		byShift := assignmentsByShift(proposal)
		for _, personID := range byShift[10] {
			assert.NotContains(t, byShift[11], personID, "seed %d", seed)
		}
	}
}

func TestGenerate_DeterministicForSameSeed(t *testing.T) {
	first := NewGenerator(DefaultWeights(), rand.New(rand.NewSource(42))).Generate(planSnapshot(t))
	second := NewGenerator(DefaultWeights(), rand.New(rand.NewSource(42))).Generate(planSnapshot(t))

	assert.Equal(t, first.Assignments, second.Assignments)
}

func TestGenerate_RespectsExistingAssignments(t *testing.T) {
	snap := planSnapshot(t)
	// The evening shift already has a full, lead-covered crew
	snap.Assigned[10] = []AssignedPerson{
		{PersonID: 1, IsTeamLeader: true},
		{PersonID: 3},
	}
	snap.Schedule[1] = []TimeWindow{snap.Shifts[0].Window}
	snap.Schedule[3] = []TimeWindow{snap.Shifts[0].Window}

	gen := NewGenerator(DefaultWeights(), rand.New(rand.NewSource(3)))
	proposal := gen.Generate(snap)

	byShift := assignmentsByShift(proposal)
	assert.Empty(t, byShift[10], "full shift must not receive proposals")
	assert.Len(t, byShift[11], 2)
}

func TestGenerate_ExistingDutiesCarryNoRankingMalus(t *testing.T) {
	morning := mustWindow(t, "2025-06-14", "10:00", "14:00")
	snap := &Snapshot{
		Shifts: []ShiftSlot{
			{ShiftID: 20, TaskName: "Kitchen", DutyTypeID: 9, Window: morning, Required: 1},
		},
		Assigned: map[int64][]AssignedPerson{},
		CandidatesByDuty: map[int64][]PersonInfo{
			9: {{PersonID: 8, DisplayName: "Greta Grimm", Status: model.PersonActive}},
		},
		Restrictions: map[int64][]int64{},
		Competencies: map[int64]map[int64]CompetencyInfo{9: {}},
		// Two assignments made by hand on other days of the event
		Schedule: map[int64][]TimeWindow{
			8: {
				mustWindow(t, "2025-06-12", "10:00", "14:00"),
				mustWindow(t, "2025-06-13", "10:00", "14:00"),
			},
		},
		HistoricalScores: map[int64]int{},
	}

	gen := NewGenerator(DefaultWeights(), rand.New(rand.NewSource(7)))
	proposal := gen.Generate(snap)

	// The manual assignments warn, but only duties proposed within this
	// run are penalized, so the candidate stays well above the
	// disqualification threshold.
	require.Len(t, proposal.Assignments, 1)
	assert.Equal(t, int64(8), proposal.Assignments[0].PersonID)
	assert.Equal(t, int64(20), proposal.Assignments[0].ShiftID)
}

func TestGenerate_LeavesShiftShortWhenCandidatesRunOut(t *testing.T) {
	snap := planSnapshot(t)
	snap.CandidatesByDuty[7] = []PersonInfo{
		{PersonID: 1, DisplayName: "Anna Albers", Status: model.PersonActive},
	}

	gen := NewGenerator(DefaultWeights(), rand.New(rand.NewSource(4)))
	proposal := gen.Generate(snap)

	// One person can cover at most one of the adjacent shifts
	assert.Len(t, proposal.Assignments, 1)
}

func TestGenerate_StopsWhenBestCandidateDisqualified(t *testing.T) {
	snap := planSnapshot(t)
	// Everyone carries a historical score so high that the inverted
	// score falls below the disqualification threshold
	for _, p := range snap.CandidatesByDuty[7] {
		snap.HistoricalScores[p.PersonID] = 1000
	}

	gen := NewGenerator(DefaultWeights(), rand.New(rand.NewSource(5)))
	proposal := gen.Generate(snap)

	assert.Empty(t, proposal.Assignments)
}

func TestGenerate_PrefersLeastServedMembers(t *testing.T) {
	snap := planSnapshot(t)
	// Spread historical scores far beyond the random band so the pick
	// is forced: 4 and 6 are the least served
	snap.HistoricalScores = map[int64]int{1: 0, 2: 0, 3: 50, 4: -50, 5: 50, 6: -50}

	gen := NewGenerator(DefaultWeights(), rand.New(rand.NewSource(6)))
	proposal := gen.Generate(snap)

	byShift := assignmentsByShift(proposal)
	require.Len(t, byShift[10], 2)
	require.Len(t, byShift[11], 2)

	var fillers []int64
	for _, members := range byShift {
		for _, personID := range members {
			if personID != 1 && personID != 2 {
				fillers = append(fillers, personID)
			}
		}
	}
	assert.ElementsMatch(t, []int64{4, 6}, fillers)
}
