package planner

import (
	"fmt"
	"slices"
	"sort"

	"github.com/fkoester/equishift/pkg/core/model"
)

// ShiftStatus reports the staffing level of one shift
type ShiftStatus struct {
	ShiftID   int64
	TaskName  string
	ShiftDate string
	StartTime string
	Required  int
	Assigned  int
}

// PlanAssignment is one assignment of the event as seen by the validator
type PlanAssignment struct {
	ShiftID            int64
	PersonID           int64
	DisplayName        string
	TaskName           string
	DutyTypeID         int64
	Window             TimeWindow
	IsTeamLeader       bool
	AttendanceStatus   model.AttendanceStatus
	SubstitutePersonID *int64
}

// ValidationInput is the read-only state the validator inspects
type ValidationInput struct {
	// Occupancy ordered by (date, start time)
	Occupancy []ShiftStatus

	// Assignments of the event, any order
	Assignments []PlanAssignment

	// Restrictions maps person id to restricted duty type ids
	Restrictions map[int64][]int64
}

// ValidatePlan checks the assignment state of an event and returns all
// applicable warnings. It never mutates anything and never fails: broken
// data produces warnings, not errors.
func ValidatePlan(in ValidationInput) []Warning {
	var warnings []Warning

	// Staffing level per shift. A shift with nobody on it is a harder
	// problem than one merely below target, so the empty case wins.
	for _, shift := range in.Occupancy {
		if shift.Assigned == 0 {
			warnings = append(warnings, Warning{
				Severity: SeverityHard,
				Message:  fmt.Sprintf("shift %q (%s) is completely empty", shift.TaskName, shift.StartTime),
				ShiftID:  shift.ShiftID,
			})
		} else if shift.Assigned < shift.Required {
			warnings = append(warnings, Warning{
				Severity: SeveritySoft,
				Message:  fmt.Sprintf("shift %q (%s) is understaffed (%d/%d)", shift.TaskName, shift.StartTime, shift.Assigned, shift.Required),
				ShiftID:  shift.ShiftID,
			})
		}
	}

	// Restriction violations and data inconsistencies per assignment.
	// Restrictions can legitimately be added after an assignment was
	// made, so an assigned person may well be restricted by now.
	seenPerson := make(map[int64]bool)
	for _, a := range in.Assignments {
		if slices.Contains(in.Restrictions[a.PersonID], a.DutyTypeID) {
			warnings = append(warnings, Warning{
				Severity:  SeverityHard,
				Message:   fmt.Sprintf("%s is assigned to %q despite a restriction", a.DisplayName, a.TaskName),
				ShiftID:   a.ShiftID,
				PersonIDs: []int64{a.PersonID},
			})
		}

		if a.AttendanceStatus == model.AttendanceDoneViaSubstitute && a.SubstitutePersonID == nil {
			warnings = append(warnings, Warning{
				Severity:  SeveritySoft,
				Message:   fmt.Sprintf("assignment of %s on %q is marked done via substitute but no substitute is recorded", a.DisplayName, a.TaskName),
				ShiftID:   a.ShiftID,
				PersonIDs: []int64{a.PersonID},
			})
		}

		if !seenPerson[a.PersonID] {
			seenPerson[a.PersonID] = true
			if n := len(in.Restrictions[a.PersonID]); n > model.MaxRestrictions {
				warnings = append(warnings, Warning{
					Severity:  SeveritySoft,
					Message:   fmt.Sprintf("%s has %d restricted duty types (maximum %d)", a.DisplayName, n, model.MaxRestrictions),
					PersonIDs: []int64{a.PersonID},
				})
			}
		}
	}

	// Per-person schedule checks: overlaps, missing breaks, overload.
	warnings = append(warnings, validateSchedules(in.Assignments)...)

	// Team leader coverage for every shift that has anyone on it.
	byShift := make(map[int64][]PlanAssignment)
	for _, a := range in.Assignments {
		byShift[a.ShiftID] = append(byShift[a.ShiftID], a)
	}
	for _, shift := range in.Occupancy {
		assigned := byShift[shift.ShiftID]
		if len(assigned) == 0 {
			continue
		}
		hasLead := false
		for _, a := range assigned {
			if a.IsTeamLeader {
				hasLead = true
				break
			}
		}
		if !hasLead {
			warnings = append(warnings, Warning{
				Severity: SeveritySoft,
				Message:  fmt.Sprintf("shift %q (%s) has no assigned team leader", shift.TaskName, shift.StartTime),
				ShiftID:  shift.ShiftID,
			})
		}
	}

	return warnings
}

// validateSchedules walks every person's assignments in start-time order
// and flags overlapping pairs, back-to-back pairs and persons holding
// more shifts than recommended.
func validateSchedules(assignments []PlanAssignment) []Warning {
	var warnings []Warning

	var personOrder []int64
	byPerson := make(map[int64][]PlanAssignment)
	for _, a := range assignments {
		if _, ok := byPerson[a.PersonID]; !ok {
			personOrder = append(personOrder, a.PersonID)
		}
		byPerson[a.PersonID] = append(byPerson[a.PersonID], a)
	}

	for _, personID := range personOrder {
		shifts := byPerson[personID]
		sort.SliceStable(shifts, func(i, j int) bool {
			return shifts[i].Window.Start.Before(shifts[j].Window.Start)
		})

		name := shifts[0].DisplayName
		for i := 0; i < len(shifts); i++ {
			for j := i + 1; j < len(shifts); j++ {
				current, other := shifts[i], shifts[j]
				if current.Window.Overlaps(other.Window) {
					warnings = append(warnings, Warning{
						Severity:  SeverityHard,
						Message:   fmt.Sprintf("%s is double-booked: %q and %q", name, current.TaskName, other.TaskName),
						PersonIDs: []int64{personID},
					})
				}
				if current.Window.End.Equal(other.Window.Start) {
					warnings = append(warnings, Warning{
						Severity:  SeveritySoft,
						Message:   fmt.Sprintf("%s works through without a break: %q -> %q", name, current.TaskName, other.TaskName),
						PersonIDs: []int64{personID},
					})
				}
			}
		}

		if len(shifts) > model.RecommendedMaxDuties {
			warnings = append(warnings, Warning{
				Severity:  SeveritySoft,
				Message:   fmt.Sprintf("%s is assigned to %d shifts (recommended max %d)", name, len(shifts), model.RecommendedMaxDuties),
				PersonIDs: []int64{personID},
			})
		}
	}

	return warnings
}
