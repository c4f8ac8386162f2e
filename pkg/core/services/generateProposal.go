package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fkoester/equishift/pkg/core/model"
	"github.com/fkoester/equishift/pkg/core/planner"
	"github.com/fkoester/equishift/pkg/core/scoring"
	"github.com/fkoester/equishift/pkg/db"
)

// ProposalResult reports what a proposal run produced
type ProposalResult struct {
	Event         *db.Event
	Deleted       int64
	Created       int
	Assignments   []db.Assignment
	TotalRequired int
	TotalAssigned int
}

// ProposalStore defines the database operations needed to generate a proposal
type ProposalStore interface {
	GetEvent(ctx context.Context, eventID int64) (*db.Event, error)
	ListShiftsForEvent(ctx context.Context, eventID int64) ([]db.EventShift, error)
	ListEventAssignmentDetails(ctx context.Context, eventID int64) ([]db.AssignmentDetail, error)
	ListCandidatesForDuty(ctx context.Context, dutyTypeID, excludingShiftID int64) ([]db.PersonRef, error)
	ListCompetenciesForDuty(ctx context.Context, dutyTypeID int64) ([]db.Competency, error)
	ListPersons(ctx context.Context) ([]db.PersonRef, error)
	HistoricalAssignmentLog(ctx context.Context) ([]db.HistoryEntry, error)
	InsertAssignments(ctx context.Context, assignments []db.Assignment) error
	DeleteAssignmentsForEvent(ctx context.Context, eventID int64) (int64, error)
	GetEventStaffingSummary(ctx context.Context, eventID int64) (*db.StaffingSummary, error)
}

// GenerateProposal fills the open slots of an event with an automatically
// generated assignment proposal. With reset, all existing assignments of
// the event are discarded first. A non-nil seed makes the run reproducible;
// dryRun computes the proposal without writing it.
//
// The planning state is read once into a snapshot before the run, so the
// generated proposal is consistent even if it spans many shifts.
func GenerateProposal(
	ctx context.Context,
	database ProposalStore,
	logger *zap.Logger,
	eventID int64,
	weights planner.Weights,
	seed *int64,
	reset bool,
	dryRun bool,
) (*ProposalResult, error) {
	event, err := database.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %d: %w", eventID, err)
	}
	if !event.Status.Editable() {
		return nil, fmt.Errorf("event %q is %s and can no longer be planned", event.Name, event.Status)
	}

	logger.Info("Generating proposal",
		zap.Int64("event_id", eventID),
		zap.Bool("reset", reset),
		zap.Bool("dry_run", dryRun))

	var deleted int64
	if reset && !dryRun {
		deleted, err = database.DeleteAssignmentsForEvent(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to reset assignments: %w", err)
		}
		logger.Info("Existing assignments cleared", zap.Int64("deleted", deleted))
	}

	snap, err := buildSnapshot(ctx, database, logger, eventID, reset && dryRun)
	if err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if seed != nil {
		rng = rand.New(rand.NewSource(*seed))
		logger.Debug("Using fixed random seed", zap.Int64("seed", *seed))
	}

	proposal := planner.NewGenerator(weights, rng).Generate(snap)
	logger.Info("Proposal generated", zap.Int("assignment_count", len(proposal.Assignments)))

	assignments := make([]db.Assignment, 0, len(proposal.Assignments))
	for _, a := range proposal.Assignments {
		assignments = append(assignments, db.Assignment{
			AssignmentID:     uuid.New().String(),
			ShiftID:          a.ShiftID,
			PersonID:         a.PersonID,
			AttendanceStatus: model.AttendancePlanned,
		})
	}

	result := &ProposalResult{
		Event:       event,
		Deleted:     deleted,
		Created:     len(assignments),
		Assignments: assignments,
	}

	if dryRun {
		logger.Info("Dry run, proposal not saved")
		return result, nil
	}

	if len(assignments) > 0 {
		if err := database.InsertAssignments(ctx, assignments); err != nil {
			return nil, fmt.Errorf("failed to insert assignments: %w", err)
		}
	}

	summary, err := database.GetEventStaffingSummary(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staffing summary: %w", err)
	}
	result.TotalRequired = summary.TotalRequired
	result.TotalAssigned = summary.TotalAssigned

	logger.Info("Proposal saved",
		zap.Int("created", result.Created),
		zap.Int("total_assigned", result.TotalAssigned),
		zap.Int("total_required", result.TotalRequired))

	return result, nil
}

// buildSnapshot reads the complete planning state of an event.
// ignoreExisting drops the current assignments from the snapshot, used by
// dry runs that simulate a reset without deleting anything.
func buildSnapshot(ctx context.Context, database ProposalStore, logger *zap.Logger, eventID int64, ignoreExisting bool) (*planner.Snapshot, error) {
	shifts, err := database.ListShiftsForEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shifts: %w", err)
	}

	var details []db.AssignmentDetail
	if !ignoreExisting {
		details, err = database.ListEventAssignmentDetails(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch assignments: %w", err)
		}
	}

	persons, err := database.ListPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch persons: %w", err)
	}

	history, err := database.HistoricalAssignmentLog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment history: %w", err)
	}

	snap := &planner.Snapshot{
		Shifts:           make([]planner.ShiftSlot, 0, len(shifts)),
		Assigned:         make(map[int64][]planner.AssignedPerson),
		CandidatesByDuty: make(map[int64][]planner.PersonInfo),
		Restrictions:     make(map[int64][]int64),
		Competencies:     make(map[int64]map[int64]planner.CompetencyInfo),
		Schedule:         make(map[int64][]planner.TimeWindow),
		HistoricalScores: scoring.ScoreLookup(historicalReport(persons, history, scoring.Options{})),
	}

	for _, s := range shifts {
		window, err := planner.NewTimeWindow(s.ShiftDate, s.StartTime, s.EndTime)
		if err != nil {
			return nil, fmt.Errorf("failed to build window for shift %d: %w", s.ShiftID, err)
		}
		snap.Shifts = append(snap.Shifts, planner.ShiftSlot{
			ShiftID:    s.ShiftID,
			TaskName:   s.TaskName,
			DutyTypeID: s.DutyTypeID,
			Window:     window,
			Required:   s.RequiredPeople,
		})

		if _, done := snap.CandidatesByDuty[s.DutyTypeID]; done {
			continue
		}

		candidates, err := database.ListCandidatesForDuty(ctx, s.DutyTypeID, 0)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch candidates for duty type %d: %w", s.DutyTypeID, err)
		}
		infos := make([]planner.PersonInfo, 0, len(candidates))
		for _, c := range candidates {
			infos = append(infos, planner.PersonInfo{
				PersonID:    c.PersonID,
				DisplayName: c.DisplayName,
				Status:      c.Status,
			})
		}
		snap.CandidatesByDuty[s.DutyTypeID] = infos

		competencies, err := database.ListCompetenciesForDuty(ctx, s.DutyTypeID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch competencies for duty type %d: %w", s.DutyTypeID, err)
		}
		perDuty := make(map[int64]planner.CompetencyInfo, len(competencies))
		for _, c := range competencies {
			perDuty[c.PersonID] = planner.CompetencyInfo{
				HasCompetence: true,
				IsTeamLeader:  c.IsTeamLeader,
			}
		}
		snap.Competencies[s.DutyTypeID] = perDuty
	}

	for _, d := range details {
		snap.Assigned[d.ShiftID] = append(snap.Assigned[d.ShiftID], planner.AssignedPerson{
			PersonID:     d.PersonID,
			IsTeamLeader: d.IsTeamLeader,
		})
		window, err := planner.NewTimeWindow(d.ShiftDate, d.StartTime, d.EndTime)
		if err != nil {
			return nil, fmt.Errorf("failed to build window for shift %d: %w", d.ShiftID, err)
		}
		snap.Schedule[d.PersonID] = append(snap.Schedule[d.PersonID], window)
	}

	logger.Debug("Planning snapshot built",
		zap.Int("shift_count", len(snap.Shifts)),
		zap.Int("existing_assignments", len(details)))

	return snap, nil
}

// historicalReport converts store records into the scoring domain and
// runs the fairness computation.
func historicalReport(persons []db.PersonRef, history []db.HistoryEntry, opts scoring.Options) []scoring.PersonScore {
	scorable := make([]scoring.Person, 0, len(persons))
	for _, p := range persons {
		scorable = append(scorable, scoring.Person{
			PersonID: p.PersonID,
			Name:     p.DisplayName,
			Status:   p.Status,
		})
	}

	entries := make([]scoring.Entry, 0, len(history))
	for _, h := range history {
		entries = append(entries, scoring.Entry{
			PersonID:           h.PersonID,
			SubstitutePersonID: h.SubstitutePersonID,
			Status:             h.AttendanceStatus,
		})
	}

	return scoring.HistoricalScores(scorable, entries, opts)
}
