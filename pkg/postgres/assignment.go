package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fkoester/equishift/pkg/core/model"
	"github.com/fkoester/equishift/pkg/db"
)

// GetAssignment retrieves one assignment
func (d *DB) GetAssignment(ctx context.Context, assignmentID string) (*db.Assignment, error) {
	var a db.Assignment
	err := d.pool.QueryRow(ctx, `
		SELECT assignment_id, shift_id, person_id, attendance_status, substitute_person_id
		FROM assignments
		WHERE assignment_id = $1
	`, assignmentID).Scan(&a.AssignmentID, &a.ShiftID, &a.PersonID, &a.AttendanceStatus, &a.SubstitutePersonID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment: %w", err)
	}

	return &a, nil
}

// InsertAssignments inserts new assignments in one transaction
func (d *DB) InsertAssignments(ctx context.Context, assignments []db.Assignment) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, a := range assignments {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignments (assignment_id, shift_id, person_id, attendance_status, substitute_person_id)
			VALUES ($1, $2, $3, $4, $5)
		`, a.AssignmentID, a.ShiftID, a.PersonID, string(a.AttendanceStatus), a.SubstitutePersonID)
		if err != nil {
			return fmt.Errorf("failed to insert assignment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit assignments: %w", err)
	}

	return nil
}

// DeleteAssignmentsForEvent removes all assignments of an event and
// returns how many were deleted.
func (d *DB) DeleteAssignmentsForEvent(ctx context.Context, eventID int64) (int64, error) {
	tag, err := d.pool.Exec(ctx, `
		DELETE FROM assignments a
		USING shifts s, tasks t
		WHERE a.shift_id = s.shift_id
		  AND s.task_id = t.task_id
		  AND t.event_id = $1
	`, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete assignments: %w", err)
	}

	return tag.RowsAffected(), nil
}

// UpdateAssignmentStatus records the attendance outcome of one assignment
func (d *DB) UpdateAssignmentStatus(ctx context.Context, assignmentID string, status model.AttendanceStatus, substitutePersonID *int64) error {
	tag, err := d.pool.Exec(ctx, `
		UPDATE assignments
		SET attendance_status = $2, substitute_person_id = $3
		WHERE assignment_id = $1
	`, assignmentID, string(status), substitutePersonID)
	if err != nil {
		return fmt.Errorf("failed to update assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return db.ErrNotFound
	}

	return nil
}

// ListEventAssignments retrieves every assignment of an event with its
// shift window.
func (d *DB) ListEventAssignments(ctx context.Context, eventID int64) ([]db.EventAssignment, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.person_id, a.shift_id,
		       to_char(s.shift_date, 'YYYY-MM-DD'),
		       to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI')
		FROM assignments a
		JOIN shifts s ON s.shift_id = a.shift_id
		JOIN tasks t ON t.task_id = s.task_id
		WHERE t.event_id = $1
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query event assignments: %w", err)
	}
	defer rows.Close()

	var assignments []db.EventAssignment
	for rows.Next() {
		var a db.EventAssignment
		if err := rows.Scan(&a.PersonID, &a.ShiftID, &a.ShiftDate, &a.StartTime, &a.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan event assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event assignments: %w", err)
	}

	return assignments, nil
}

// ListEventAssignmentDetails retrieves every assignment of an event joined
// with its person, shift and competency data, ordered for display.
func (d *DB) ListEventAssignmentDetails(ctx context.Context, eventID int64) ([]db.AssignmentDetail, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.assignment_id, a.shift_id, a.person_id, p.display_name,
		       t.name, t.duty_type_id,
		       to_char(s.shift_date, 'YYYY-MM-DD'),
		       to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'),
		       pc.person_id IS NOT NULL,
		       COALESCE(pc.is_team_leader, FALSE),
		       a.attendance_status, a.substitute_person_id
		FROM assignments a
		JOIN shifts s ON s.shift_id = a.shift_id
		JOIN tasks t ON t.task_id = s.task_id
		JOIN persons p ON p.person_id = a.person_id
		LEFT JOIN person_competencies pc
		       ON pc.person_id = a.person_id AND pc.duty_type_id = t.duty_type_id
		WHERE t.event_id = $1
		ORDER BY p.display_name, s.shift_date, s.start_time, a.assignment_id
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment details: %w", err)
	}
	defer rows.Close()

	var details []db.AssignmentDetail
	for rows.Next() {
		var detail db.AssignmentDetail
		if err := rows.Scan(
			&detail.AssignmentID, &detail.ShiftID, &detail.PersonID, &detail.DisplayName,
			&detail.TaskName, &detail.DutyTypeID,
			&detail.ShiftDate, &detail.StartTime, &detail.EndTime,
			&detail.HasCompetence, &detail.IsTeamLeader,
			&detail.AttendanceStatus, &detail.SubstitutePersonID,
		); err != nil {
			return nil, fmt.Errorf("failed to scan assignment detail: %w", err)
		}
		details = append(details, detail)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment details: %w", err)
	}

	return details, nil
}

// HistoricalAssignmentLog retrieves the complete assignment log across all
// events, most recent event first, as input for fairness scoring.
func (d *DB) HistoricalAssignmentLog(ctx context.Context) ([]db.HistoryEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.person_id, a.substitute_person_id, a.attendance_status,
		       to_char(e.start_date, 'YYYY-MM-DD')
		FROM assignments a
		JOIN shifts s ON s.shift_id = a.shift_id
		JOIN tasks t ON t.task_id = s.task_id
		JOIN events e ON e.event_id = t.event_id
		ORDER BY e.start_date DESC, s.shift_date DESC, s.start_time DESC, a.assignment_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignment log: %w", err)
	}
	defer rows.Close()

	var entries []db.HistoryEntry
	for rows.Next() {
		var entry db.HistoryEntry
		if err := rows.Scan(&entry.PersonID, &entry.SubstitutePersonID, &entry.AttendanceStatus, &entry.EventStartDate); err != nil {
			return nil, fmt.Errorf("failed to scan log entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assignment log: %w", err)
	}

	return entries, nil
}
