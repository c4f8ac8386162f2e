// Package scoring computes historical fairness scores from the
// attendance log. The score is the currency of the planning heuristic:
// members who have served recently score high and yield their place to
// members who have not.
package scoring

import (
	"sort"

	"github.com/fkoester/equishift/pkg/core/model"
)

// Options controls which persons and how much history a scoring run
// considers.
type Options struct {
	// IncludeInactive keeps persons whose status is not assignable in the
	// report. Their log entries are always scored; the flag only controls
	// their presence in the output.
	IncludeInactive bool

	// Limit caps how many logged duties count per person, most recent
	// first. Zero or negative means unlimited.
	Limit int
}

// Person is a scorable member
type Person struct {
	PersonID int64
	Name     string
	Status   model.PersonStatus
}

// Entry is one row of the attendance log. Entries must be ordered most
// recent first; the per-person limit is applied in that order.
type Entry struct {
	PersonID           int64
	SubstitutePersonID *int64
	Status             model.AttendanceStatus
}

// PersonScore is one line of the fairness report
type PersonScore struct {
	PersonID int64
	Name     string
	Status   model.PersonStatus
	Score    int
}

// HistoricalScores walks the attendance log and produces the fairness
// report, sorted by score descending and name ascending.
//
// Completed duties earn a point, whether served as the primary or as a
// recorded substitute. A no-show costs two points. Planned, excused and
// substituted-away duties are neutral for the primary.
func HistoricalScores(persons []Person, entries []Entry, opts Options) []PersonScore {
	scores := make(map[int64]int, len(persons))
	counted := make(map[int64]int, len(persons))
	known := make(map[int64]bool, len(persons))
	for _, p := range persons {
		known[p.PersonID] = true
	}

	apply := func(personID int64, delta int) {
		if !known[personID] {
			return
		}
		counted[personID]++
		if opts.Limit > 0 && counted[personID] > opts.Limit {
			return
		}
		scores[personID] += delta
	}

	for _, e := range entries {
		if e.SubstitutePersonID != nil {
			// The substitute showed up regardless of how the primary's
			// attendance was recorded.
			apply(*e.SubstitutePersonID, 1)
		}

		switch e.Status {
		case model.AttendanceDone:
			apply(e.PersonID, 1)
		case model.AttendanceNoShow:
			apply(e.PersonID, -2)
		default:
			apply(e.PersonID, 0)
		}
	}

	report := make([]PersonScore, 0, len(persons))
	for _, p := range persons {
		if !opts.IncludeInactive && !p.Status.Assignable() {
			continue
		}
		report = append(report, PersonScore{
			PersonID: p.PersonID,
			Name:     p.Name,
			Status:   p.Status,
			Score:    scores[p.PersonID],
		})
	}

	sort.SliceStable(report, func(i, j int) bool {
		if report[i].Score != report[j].Score {
			return report[i].Score > report[j].Score
		}
		return report[i].Name < report[j].Name
	})

	return report
}

// ScoreLookup converts a fairness report into a person id lookup map for
// the proposal generator.
func ScoreLookup(report []PersonScore) map[int64]int {
	lookup := make(map[int64]int, len(report))
	for _, s := range report {
		lookup[s.PersonID] = s.Score
	}
	return lookup
}
