package planner

import (
	"math/rand"
	"sort"
	"time"
)

// ShiftSlot is one shift of the event as seen by the proposal generator
type ShiftSlot struct {
	ShiftID    int64
	TaskName   string
	DutyTypeID int64
	Window     TimeWindow
	Required   int
}

// AssignedPerson is an assignment that already existed before the run,
// e.g. one made manually by the planner
type AssignedPerson struct {
	PersonID     int64
	IsTeamLeader bool
}

// Snapshot is the complete in-memory planning state for one event,
// fetched once before a proposal run. The generator works exclusively on
// the snapshot plus its own run state; it never goes back to storage, so
// a run is internally consistent even though it spans many decisions.
type Snapshot struct {
	// Shifts ordered by (date, start time)
	Shifts []ShiftSlot

	// Assigned maps shift id to its existing assignments
	Assigned map[int64][]AssignedPerson

	// CandidatesByDuty maps duty type id to the assignable persons not
	// restricted from that duty type
	CandidatesByDuty map[int64][]PersonInfo

	// Restrictions maps person id to restricted duty type ids
	Restrictions map[int64][]int64

	// Competencies maps duty type id to per-person qualification
	Competencies map[int64]map[int64]CompetencyInfo

	// Schedule maps person id to the windows of their existing
	// assignments within the event (one window per assignment)
	Schedule map[int64][]TimeWindow

	// HistoricalScores maps person id to the fairness score
	HistoricalScores map[int64]int
}

// ProposedAssignment is one assignment chosen by the generator
type ProposedAssignment struct {
	ShiftID  int64
	PersonID int64
}

// Proposal is the outcome of one generation run. Shifts that could not be
// filled are simply left short; the plan validator reports them.
type Proposal struct {
	Assignments []ProposedAssignment
}

// Generator runs the two-pass greedy proposal heuristic. The random
// source drives tie-breaking within the top tier; inject a seeded one for
// reproducible runs.
type Generator struct {
	weights Weights
	rng     *rand.Rand
}

// NewGenerator creates a generator. A nil rng gets a time-seeded source.
func NewGenerator(weights Weights, rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{weights: weights, rng: rng}
}

// Generate fills the event's shifts in two passes: first a team leader
// per shift, then the remaining slots. Nothing is written to storage;
// the caller commits the returned assignments.
func (g *Generator) Generate(snap *Snapshot) *Proposal {
	run := NewRunState()
	proposal := &Proposal{}

	counts := make(map[int64]int, len(snap.Shifts))
	hasLead := make(map[int64]bool, len(snap.Shifts))
	onShift := make(map[int64]map[int64]bool, len(snap.Shifts))
	for _, shift := range snap.Shifts {
		members := make(map[int64]bool)
		for _, a := range snap.Assigned[shift.ShiftID] {
			members[a.PersonID] = true
			if a.IsTeamLeader {
				hasLead[shift.ShiftID] = true
			}
		}
		onShift[shift.ShiftID] = members
		counts[shift.ShiftID] = len(snap.Assigned[shift.ShiftID])
	}

	commit := func(shift ShiftSlot, personID int64) {
		proposal.Assignments = append(proposal.Assignments, ProposedAssignment{
			ShiftID:  shift.ShiftID,
			PersonID: personID,
		})
		run.Commit(personID, shift.Window)
		counts[shift.ShiftID]++
		onShift[shift.ShiftID][personID] = true
	}

	// Pass 1: secure a team leader for every shift that lacks one.
	for _, shift := range snap.Shifts {
		if hasLead[shift.ShiftID] || counts[shift.ShiftID] >= shift.Required {
			continue
		}

		leads := teamLeadersOnly(g.eligible(snap, run, onShift[shift.ShiftID], shift))
		if len(leads) == 0 {
			continue
		}

		pick, ok := g.pick(leads, snap, run, shift, true)
		if !ok {
			continue
		}
		commit(shift, pick.PersonID)
		hasLead[shift.ShiftID] = true
	}

	// Pass 2: fill the remaining open slots.
	for _, shift := range snap.Shifts {
		for counts[shift.ShiftID] < shift.Required {
			candidates := g.eligible(snap, run, onShift[shift.ShiftID], shift)
			if len(candidates) == 0 {
				break
			}

			pick, ok := g.pick(candidates, snap, run, shift, false)
			if !ok {
				break
			}
			commit(shift, pick.PersonID)
		}
	}

	return proposal
}

// eligible recomputes the candidate list for a shift against the snapshot
// merged with the run state accumulated so far. Pre-existing assignments
// only drive overlap exclusion and soft warnings here; the ranking
// maluses read the run state alone, so a manually placed person is not
// penalized for assignments this run did not make.
func (g *Generator) eligible(snap *Snapshot, run *RunState, exclude map[int64]bool, shift ShiftSlot) []Candidate {
	persons := snap.CandidatesByDuty[shift.DutyTypeID]

	schedule := make(map[int64][]TimeWindow, len(persons))
	dutyCounts := make(map[int64]int, len(persons))
	for _, p := range persons {
		existing := snap.Schedule[p.PersonID]
		proposed := run.Windows[p.PersonID]
		windows := make([]TimeWindow, 0, len(existing)+len(proposed))
		windows = append(windows, existing...)
		windows = append(windows, proposed...)
		schedule[p.PersonID] = windows
		dutyCounts[p.PersonID] = len(existing) + run.Duties[p.PersonID]
	}

	return AvailableCandidates(EligibilityInput{
		Window:       shift.Window,
		DutyTypeID:   shift.DutyTypeID,
		Persons:      persons,
		Restrictions: snap.Restrictions,
		Schedule:     schedule,
		DutyCounts:   dutyCounts,
		Competencies: snap.Competencies[shift.DutyTypeID],
		Exclude:      exclude,
	})
}

type scoredCandidate struct {
	candidate Candidate
	score     int
}

// pick scores the candidates, takes the set within the band of the best
// score and selects uniformly at random among them. Returns false when
// the best candidate is disqualified.
func (g *Generator) pick(candidates []Candidate, snap *Snapshot, run *RunState, shift ShiftSlot, seekingTeamLeader bool) (Candidate, bool) {
	scored := make([]scoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		score := g.weights.ScoreCandidate(c, snap.HistoricalScores[c.PersonID], shift.Window, run, seekingTeamLeader)
		scored = append(scored, scoredCandidate{candidate: c, score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	best := scored[0].score
	if best < g.weights.DisqualifyThreshold {
		return Candidate{}, false
	}

	band := g.weights.FillBand
	if seekingTeamLeader {
		band = g.weights.TeamLeaderBand
	}

	tier := 1
	for tier < len(scored) && scored[tier].score >= best-band {
		tier++
	}

	return scored[g.rng.Intn(tier)].candidate, true
}

func teamLeadersOnly(candidates []Candidate) []Candidate {
	leads := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.IsTeamLeader {
			leads = append(leads, c)
		}
	}
	return leads
}
