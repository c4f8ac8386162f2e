package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fkoester/equishift/pkg/core/planner"
	"github.com/fkoester/equishift/pkg/db"
)

// CandidatesResult lists the persons that may be assigned to one shift
type CandidatesResult struct {
	Shift      *db.Shift
	TaskName   string
	Window     planner.TimeWindow
	Candidates []planner.Candidate
}

// CandidatesStore defines the database operations needed to list candidates
type CandidatesStore interface {
	GetShift(ctx context.Context, shiftID int64) (*db.Shift, error)
	GetTask(ctx context.Context, taskID int64) (*db.Task, error)
	GetRestrictions(ctx context.Context, personID int64) ([]int64, error)
	ListCandidatesForDuty(ctx context.Context, dutyTypeID, excludingShiftID int64) ([]db.PersonRef, error)
	ListCompetenciesForDuty(ctx context.Context, dutyTypeID int64) ([]db.Competency, error)
	ListEventAssignments(ctx context.Context, eventID int64) ([]db.EventAssignment, error)
}

// AvailableCandidates computes the sorted candidate list for a shift.
// A shift whose task no longer exists yields an empty list rather than an
// error, so a half-deleted event stays browsable.
func AvailableCandidates(ctx context.Context, database CandidatesStore, logger *zap.Logger, shiftID int64) (*CandidatesResult, error) {
	shift, err := database.GetShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shift %d: %w", shiftID, err)
	}

	window, err := planner.NewTimeWindow(shift.ShiftDate, shift.StartTime, shift.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to build shift window: %w", err)
	}

	task, err := database.GetTask(ctx, shift.TaskID)
	if errors.Is(err, db.ErrNotFound) {
		logger.Warn("Shift references a missing task, returning no candidates",
			zap.Int64("shift_id", shiftID),
			zap.Int64("task_id", shift.TaskID))
		return &CandidatesResult{Shift: shift, Window: window}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task %d: %w", shift.TaskID, err)
	}

	logger.Debug("Listing candidates",
		zap.Int64("shift_id", shiftID),
		zap.Int64("duty_type_id", task.DutyTypeID))

	persons, err := database.ListCandidatesForDuty(ctx, task.DutyTypeID, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch candidates: %w", err)
	}

	competencies, err := database.ListCompetenciesForDuty(ctx, task.DutyTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch competencies: %w", err)
	}

	assignments, err := database.ListEventAssignments(ctx, task.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event assignments: %w", err)
	}

	input := planner.EligibilityInput{
		Window:       window,
		DutyTypeID:   task.DutyTypeID,
		Persons:      make([]planner.PersonInfo, 0, len(persons)),
		Restrictions: make(map[int64][]int64, len(persons)),
		Schedule:     make(map[int64][]planner.TimeWindow),
		DutyCounts:   make(map[int64]int),
		Competencies: make(map[int64]planner.CompetencyInfo, len(competencies)),
	}

	for _, p := range persons {
		input.Persons = append(input.Persons, planner.PersonInfo{
			PersonID:    p.PersonID,
			DisplayName: p.DisplayName,
			Status:      p.Status,
		})

		// The candidate query already excludes restricted persons; the
		// re-fetch guards against the list and the restriction table
		// drifting apart between queries.
		restricted, err := database.GetRestrictions(ctx, p.PersonID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch restrictions for person %d: %w", p.PersonID, err)
		}
		input.Restrictions[p.PersonID] = restricted
	}

	for _, c := range competencies {
		input.Competencies[c.PersonID] = planner.CompetencyInfo{
			HasCompetence: true,
			IsTeamLeader:  c.IsTeamLeader,
		}
	}

	for _, a := range assignments {
		if a.ShiftID == shiftID {
			continue
		}
		w, err := planner.NewTimeWindow(a.ShiftDate, a.StartTime, a.EndTime)
		if err != nil {
			return nil, fmt.Errorf("failed to build window for shift %d: %w", a.ShiftID, err)
		}
		input.Schedule[a.PersonID] = append(input.Schedule[a.PersonID], w)
		input.DutyCounts[a.PersonID]++
	}

	candidates := planner.AvailableCandidates(input)

	logger.Info("Candidates computed",
		zap.Int64("shift_id", shiftID),
		zap.Int("candidate_count", len(candidates)))

	return &CandidatesResult{
		Shift:      shift,
		TaskName:   task.Name,
		Window:     window,
		Candidates: candidates,
	}, nil
}
