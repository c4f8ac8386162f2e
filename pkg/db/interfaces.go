package db

import (
	"context"
	"errors"

	"github.com/fkoester/equishift/pkg/core/model"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// Database defines the full persistence contract consumed by the application.
// Services declare narrower interfaces for the subset they need; this
// aggregate exists so commands can share one connection in AppContext.
type Database interface {
	// Lookups
	GetAssignment(ctx context.Context, assignmentID string) (*Assignment, error)
	GetShift(ctx context.Context, shiftID int64) (*Shift, error)
	GetTask(ctx context.Context, taskID int64) (*Task, error)
	GetEvent(ctx context.Context, eventID int64) (*Event, error)
	GetCompetency(ctx context.Context, personID, dutyTypeID int64) (*Competency, error)
	GetRestrictions(ctx context.Context, personID int64) ([]int64, error)
	ListPersons(ctx context.Context) ([]PersonRef, error)
	ListTasksForEvent(ctx context.Context, eventID int64) ([]Task, error)

	// Planning reads
	ListCandidatesForDuty(ctx context.Context, dutyTypeID, excludingShiftID int64) ([]PersonRef, error)
	ListCompetenciesForDuty(ctx context.Context, dutyTypeID int64) ([]Competency, error)
	ListEventAssignments(ctx context.Context, eventID int64) ([]EventAssignment, error)
	ListEventAssignmentDetails(ctx context.Context, eventID int64) ([]AssignmentDetail, error)
	ListShiftsForEvent(ctx context.Context, eventID int64) ([]EventShift, error)
	ListShiftOccupancy(ctx context.Context, eventID int64) ([]ShiftOccupancy, error)
	GetEventStaffingSummary(ctx context.Context, eventID int64) (*StaffingSummary, error)
	HistoricalAssignmentLog(ctx context.Context) ([]HistoryEntry, error)

	// Planning writes
	InsertAssignments(ctx context.Context, assignments []Assignment) error
	DeleteAssignmentsForEvent(ctx context.Context, eventID int64) (int64, error)
	UpdateAssignmentStatus(ctx context.Context, assignmentID string, status model.AttendanceStatus, substitutePersonID *int64) error
	InsertShifts(ctx context.Context, shifts []Shift) error

	// Event lifecycle
	CopyEvent(ctx context.Context, params CopyEventParams) (*CopyEventResult, error)

	// Reporting
	ListAttendanceOutcomes(ctx context.Context, currentYearOnly bool) ([]AttendanceOutcome, error)
	ListPlanRows(ctx context.Context, eventID int64) ([]PlanRow, error)
}
