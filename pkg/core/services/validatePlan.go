package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fkoester/equishift/pkg/core/planner"
	"github.com/fkoester/equishift/pkg/db"
)

// ValidationResult is the outcome of a plan validation run
type ValidationResult struct {
	Event     *db.Event
	Warnings  []planner.Warning
	HardCount int
	SoftCount int
}

// OK reports whether the plan has no blocking problems
func (r *ValidationResult) OK() bool {
	return r.HardCount == 0
}

// ValidatePlanStore defines the database operations needed to validate a plan
type ValidatePlanStore interface {
	GetEvent(ctx context.Context, eventID int64) (*db.Event, error)
	ListShiftOccupancy(ctx context.Context, eventID int64) ([]db.ShiftOccupancy, error)
	ListEventAssignmentDetails(ctx context.Context, eventID int64) ([]db.AssignmentDetail, error)
	GetRestrictions(ctx context.Context, personID int64) ([]int64, error)
}

// ValidatePlan checks an event's assignment state and reports all findings
func ValidatePlan(ctx context.Context, database ValidatePlanStore, logger *zap.Logger, eventID int64) (*ValidationResult, error) {
	event, err := database.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %d: %w", eventID, err)
	}

	occupancy, err := database.ListShiftOccupancy(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift occupancy: %w", err)
	}

	details, err := database.ListEventAssignmentDetails(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignments: %w", err)
	}

	input := planner.ValidationInput{
		Occupancy:    make([]planner.ShiftStatus, 0, len(occupancy)),
		Assignments:  make([]planner.PlanAssignment, 0, len(details)),
		Restrictions: make(map[int64][]int64),
	}

	for _, o := range occupancy {
		input.Occupancy = append(input.Occupancy, planner.ShiftStatus{
			ShiftID:   o.ShiftID,
			TaskName:  o.TaskName,
			ShiftDate: o.ShiftDate,
			StartTime: o.StartTime,
			Required:  o.RequiredPeople,
			Assigned:  o.AssignedCount,
		})
	}

	for _, d := range details {
		window, err := planner.NewTimeWindow(d.ShiftDate, d.StartTime, d.EndTime)
		if err != nil {
			return nil, fmt.Errorf("failed to build window for shift %d: %w", d.ShiftID, err)
		}
		input.Assignments = append(input.Assignments, planner.PlanAssignment{
			ShiftID:            d.ShiftID,
			PersonID:           d.PersonID,
			DisplayName:        d.DisplayName,
			TaskName:           d.TaskName,
			DutyTypeID:         d.DutyTypeID,
			Window:             window,
			IsTeamLeader:       d.IsTeamLeader,
			AttendanceStatus:   d.AttendanceStatus,
			SubstitutePersonID: d.SubstitutePersonID,
		})

		if _, done := input.Restrictions[d.PersonID]; done {
			continue
		}
		restricted, err := database.GetRestrictions(ctx, d.PersonID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch restrictions for person %d: %w", d.PersonID, err)
		}
		input.Restrictions[d.PersonID] = restricted
	}

	warnings := planner.ValidatePlan(input)

	result := &ValidationResult{Event: event, Warnings: warnings}
	for _, w := range warnings {
		if w.Severity == planner.SeverityHard {
			result.HardCount++
		} else {
			result.SoftCount++
		}
	}

	logger.Info("Plan validated",
		zap.Int64("event_id", eventID),
		zap.Int("hard", result.HardCount),
		zap.Int("soft", result.SoftCount))

	return result, nil
}
