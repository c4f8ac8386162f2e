package scoring

import (
	"sort"

	"github.com/fkoester/equishift/pkg/core/model"
)

// DutyOutcome is one recorded assignment outcome with the hours the
// shift covered
type DutyOutcome struct {
	PersonID           int64
	SubstitutePersonID *int64
	Status             model.AttendanceStatus
	Hours              float64
}

// MemberSummary aggregates one member's service record
type MemberSummary struct {
	PersonID        int64
	Name            string
	TotalHours      float64
	DoneCount       int
	SubstituteCount int
	ExcusedCount    int
	NoShowCount     int
}

// MemberSummaries folds the attendance outcomes into one line per member,
// sorted by name. Hours and the substituted-duty count are credited to
// whoever actually served: the primary for done duties, the recorded
// substitute for substituted ones. A substituted duty without a recorded
// substitute credits nobody.
func MemberSummaries(persons []Person, outcomes []DutyOutcome) []MemberSummary {
	index := make(map[int64]int, len(persons))
	report := make([]MemberSummary, 0, len(persons))
	for _, p := range persons {
		index[p.PersonID] = len(report)
		report = append(report, MemberSummary{PersonID: p.PersonID, Name: p.Name})
	}

	for _, o := range outcomes {
		switch o.Status {
		case model.AttendanceDone:
			if i, ok := index[o.PersonID]; ok {
				report[i].DoneCount++
				report[i].TotalHours += o.Hours
			}
		case model.AttendanceDoneViaSubstitute:
			if o.SubstitutePersonID == nil {
				break
			}
			if i, ok := index[*o.SubstitutePersonID]; ok {
				report[i].SubstituteCount++
				report[i].TotalHours += o.Hours
			}
		case model.AttendanceExcused:
			if i, ok := index[o.PersonID]; ok {
				report[i].ExcusedCount++
			}
		case model.AttendanceNoShow:
			if i, ok := index[o.PersonID]; ok {
				report[i].NoShowCount++
			}
		}
	}

	sort.SliceStable(report, func(i, j int) bool {
		return report[i].Name < report[j].Name
	})

	return report
}
