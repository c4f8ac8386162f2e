package planner

import (
	"github.com/fkoester/equishift/pkg/core/model"
)

// Weights tunes the candidate ranking heuristic used during proposal
// generation. The large maluses act as near-hard exclusions: any candidate
// carrying one scores far below DisqualifyThreshold and is never picked.
type Weights struct {
	// HistoryWeight multiplies the inverted historical fairness score, so
	// that the least-served volunteers rank highest.
	HistoryWeight int

	// DutyMalus is subtracted per duty already proposed for the candidate
	// within this run.
	DutyMalus int

	// OverloadMalus is subtracted once a candidate reaches the recommended
	// per-event duty ceiling. Effectively disqualifying.
	OverloadMalus int

	// ConsecutiveMalus is subtracted per already-proposed shift that is
	// back-to-back with the shift being scored.
	ConsecutiveMalus int

	// ActiveBonus rewards active members over passive ones.
	ActiveBonus int

	// CompetenceBonus rewards candidates holding a competency for the
	// shift's duty type when a regular slot is being filled.
	CompetenceBonus int

	// TeamLeaderWasteMalus discourages spending a team leader on a slot
	// that does not need one.
	TeamLeaderWasteMalus int

	// DisqualifyThreshold is the score below which the best candidate is
	// considered disqualified and the slot is left open.
	DisqualifyThreshold int

	// TeamLeaderBand and FillBand are the top-tier widths: candidates
	// within this many points of the best score are picked from at random.
	// The team leader band is tighter because team leaders are scarcer.
	TeamLeaderBand int
	FillBand       int
}

// DefaultWeights returns the standard heuristic tuning
func DefaultWeights() Weights {
	return Weights{
		HistoryWeight:        10,
		DutyMalus:            25,
		OverloadMalus:        10000,
		ConsecutiveMalus:     10000,
		ActiveBonus:          5,
		CompetenceBonus:      3,
		TeamLeaderWasteMalus: 500,
		DisqualifyThreshold:  -5000,
		TeamLeaderBand:       5,
		FillBand:             8,
	}
}

// RunState accumulates per-person commitments during a single proposal
// run. It is created per run and passed explicitly so independent runs
// never interfere.
type RunState struct {
	// Duties counts assignments proposed for each person in this run
	Duties map[int64]int

	// Windows holds the shift windows proposed for each person in this run
	Windows map[int64][]TimeWindow
}

// NewRunState returns an empty run state
func NewRunState() *RunState {
	return &RunState{
		Duties:  make(map[int64]int),
		Windows: make(map[int64][]TimeWindow),
	}
}

// Commit records a proposed assignment in the run state
func (r *RunState) Commit(personID int64, window TimeWindow) {
	r.Duties[personID]++
	r.Windows[personID] = append(r.Windows[personID], window)
}

// ScoreCandidate ranks a candidate for one shift slot given the state of
// the current proposal run. Higher is better. seekingTeamLeader switches
// between the team leader pass (competence is a given, no waste malus)
// and the fill pass.
func (w Weights) ScoreCandidate(c Candidate, historicalScore int, window TimeWindow, run *RunState, seekingTeamLeader bool) int {
	score := historicalScore * -w.HistoryWeight

	duties := run.Duties[c.PersonID]
	score -= duties * w.DutyMalus
	if duties >= model.RecommendedMaxDuties {
		score -= w.OverloadMalus
	}

	for _, other := range run.Windows[c.PersonID] {
		if window.Adjacent(other) {
			score -= w.ConsecutiveMalus
		}
	}

	if c.Status == model.PersonActive {
		score += w.ActiveBonus
	}

	if !seekingTeamLeader {
		if c.HasCompetence {
			score += w.CompetenceBonus
		}
		if c.IsTeamLeader {
			score -= w.TeamLeaderWasteMalus
		}
	}

	return score
}
