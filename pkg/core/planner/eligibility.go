package planner

import (
	"fmt"
	"slices"
	"sort"
)

// EligibilityInput is the snapshot needed to compute the available
// candidates for one shift. Persons are expected to be pre-filtered by the
// store contract (assignable status, not restricted, not already on the
// shift); the filter re-checks status and restrictions anyway because
// upstream data is not trusted to enforce them.
type EligibilityInput struct {
	Window     TimeWindow
	DutyTypeID int64

	Persons []PersonInfo

	// Restrictions maps person id to restricted duty type ids
	Restrictions map[int64][]int64

	// Schedule maps person id to the normalized windows of the person's
	// other assignments within the same event
	Schedule map[int64][]TimeWindow

	// DutyCounts maps person id to the person's total assignment count
	// within the event
	DutyCounts map[int64]int

	// Competencies maps person id to the person's qualification for the
	// shift's duty type
	Competencies map[int64]CompetencyInfo

	// Exclude marks persons that must not be returned, e.g. because they
	// are already on this shift
	Exclude map[int64]bool
}

// AvailableCandidates returns every person who may be assigned to the
// shift, sorted for display (team leaders first, then competent persons,
// then persons without warnings, then by name).
//
// A person is excluded entirely when another of their assignments in the
// event overlaps the shift window. Back-to-back assignments and two or
// more existing duties only produce soft warnings.
func AvailableCandidates(in EligibilityInput) []Candidate {
	candidates := make([]Candidate, 0, len(in.Persons))

	for _, p := range in.Persons {
		if !p.Status.Assignable() {
			continue
		}
		if in.Exclude[p.PersonID] {
			continue
		}
		if slices.Contains(in.Restrictions[p.PersonID], in.DutyTypeID) {
			continue
		}

		overlap := false
		adjacent := false
		for _, w := range in.Schedule[p.PersonID] {
			if in.Window.Overlaps(w) {
				overlap = true
				break
			}
			if in.Window.Adjacent(w) {
				adjacent = true
			}
		}
		if overlap {
			continue
		}

		var warnings []string
		if adjacent {
			warnings = append(warnings, "no break")
		}
		if count := in.DutyCounts[p.PersonID]; count >= 2 {
			warnings = append(warnings, fmt.Sprintf("%d duties", count))
		}

		comp := in.Competencies[p.PersonID]
		candidates = append(candidates, Candidate{
			PersonID:      p.PersonID,
			DisplayName:   p.DisplayName,
			Status:        p.Status,
			HasCompetence: comp.HasCompetence,
			IsTeamLeader:  comp.IsTeamLeader,
			Warnings:      warnings,
		})
	}

	sortCandidates(candidates)
	return candidates
}

// sortCandidates applies the default display order: team leaders first,
// then competence, then candidates without warnings, then name ascending.
func sortCandidates(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.IsTeamLeader != b.IsTeamLeader {
			return a.IsTeamLeader
		}
		if a.HasCompetence != b.HasCompetence {
			return a.HasCompetence
		}
		aClean := len(a.Warnings) == 0
		bClean := len(b.Warnings) == 0
		if aClean != bClean {
			return aClean
		}
		return a.DisplayName < b.DisplayName
	})
}
