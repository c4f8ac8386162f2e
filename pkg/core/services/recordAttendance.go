package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/fkoester/equishift/pkg/core/model"
	"github.com/fkoester/equishift/pkg/db"
)

// AttendanceStore defines the database operations needed to record attendance
type AttendanceStore interface {
	GetAssignment(ctx context.Context, assignmentID string) (*db.Assignment, error)
	GetShift(ctx context.Context, shiftID int64) (*db.Shift, error)
	GetTask(ctx context.Context, taskID int64) (*db.Task, error)
	GetCompetency(ctx context.Context, personID, dutyTypeID int64) (*db.Competency, error)
	UpdateAssignmentStatus(ctx context.Context, assignmentID string, status model.AttendanceStatus, substitutePersonID *int64) error
}

// RecordAttendance records the outcome of an assignment after the event.
// A substitute may only be named together with the done_via_substitute
// status, and that status requires one. A substitute who lacks the
// competency for the shift's duty type is accepted with a warning; the
// duty was already served when this is recorded.
func RecordAttendance(ctx context.Context, database AttendanceStore, logger *zap.Logger, assignmentID string, status model.AttendanceStatus, substitutePersonID *int64) error {
	if !model.ValidAttendanceStatus(status) {
		return fmt.Errorf("unknown attendance status %q", status)
	}
	if status == model.AttendanceDoneViaSubstitute && substitutePersonID == nil {
		return fmt.Errorf("status %s requires a substitute person", model.AttendanceDoneViaSubstitute)
	}
	if status != model.AttendanceDoneViaSubstitute && substitutePersonID != nil {
		return fmt.Errorf("a substitute may only be recorded with status %s", model.AttendanceDoneViaSubstitute)
	}

	if substitutePersonID != nil {
		if err := checkSubstitute(ctx, database, logger, assignmentID, *substitutePersonID); err != nil {
			return err
		}
	}

	if err := database.UpdateAssignmentStatus(ctx, assignmentID, status, substitutePersonID); err != nil {
		return fmt.Errorf("failed to update assignment %s: %w", assignmentID, err)
	}

	logger.Info("Attendance recorded",
		zap.String("assignment_id", assignmentID),
		zap.String("status", string(status)))

	return nil
}

// checkSubstitute rejects self-substitution and warns when the substitute
// holds no competency for the shift's duty type.
func checkSubstitute(ctx context.Context, database AttendanceStore, logger *zap.Logger, assignmentID string, substitutePersonID int64) error {
	assignment, err := database.GetAssignment(ctx, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to fetch assignment %s: %w", assignmentID, err)
	}
	if substitutePersonID == assignment.PersonID {
		return fmt.Errorf("a person cannot substitute for themselves")
	}

	shift, err := database.GetShift(ctx, assignment.ShiftID)
	if err != nil {
		return fmt.Errorf("failed to fetch shift %d: %w", assignment.ShiftID, err)
	}

	task, err := database.GetTask(ctx, shift.TaskID)
	if errors.Is(err, db.ErrNotFound) {
		logger.Warn("Shift references a missing task, skipping competency check",
			zap.String("assignment_id", assignmentID),
			zap.Int64("task_id", shift.TaskID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch task %d: %w", shift.TaskID, err)
	}

	_, err = database.GetCompetency(ctx, substitutePersonID, task.DutyTypeID)
	if errors.Is(err, db.ErrNotFound) {
		logger.Warn("Substitute holds no competency for the shift's duty type",
			zap.String("assignment_id", assignmentID),
			zap.Int64("substitute_person_id", substitutePersonID),
			zap.Int64("duty_type_id", task.DutyTypeID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to fetch competency for person %d: %w", substitutePersonID, err)
	}

	return nil
}
