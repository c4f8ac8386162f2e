package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/fkoester/equishift/pkg/core/model"
	"github.com/fkoester/equishift/pkg/db"
)

// GetEvent retrieves one event
func (d *DB) GetEvent(ctx context.Context, eventID int64) (*db.Event, error) {
	var e db.Event
	var endDate *string
	err := d.pool.QueryRow(ctx, `
		SELECT event_id, name, to_char(start_date, 'YYYY-MM-DD'),
		       to_char(end_date, 'YYYY-MM-DD'), status
		FROM events
		WHERE event_id = $1
	`, eventID).Scan(&e.EventID, &e.Name, &e.StartDate, &endDate, &e.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query event: %w", err)
	}
	if endDate != nil {
		e.EndDate = *endDate
	}

	return &e, nil
}

// GetTask retrieves one task
func (d *DB) GetTask(ctx context.Context, taskID int64) (*db.Task, error) {
	var t db.Task
	err := d.pool.QueryRow(ctx, `
		SELECT task_id, event_id, duty_type_id, name, description
		FROM tasks
		WHERE task_id = $1
	`, taskID).Scan(&t.TaskID, &t.EventID, &t.DutyTypeID, &t.Name, &t.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query task: %w", err)
	}

	return &t, nil
}

// ListTasksForEvent retrieves all tasks of an event
func (d *DB) ListTasksForEvent(ctx context.Context, eventID int64) ([]db.Task, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT task_id, event_id, duty_type_id, name, description
		FROM tasks
		WHERE event_id = $1
		ORDER BY name
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer rows.Close()

	var tasks []db.Task
	for rows.Next() {
		var t db.Task
		if err := rows.Scan(&t.TaskID, &t.EventID, &t.DutyTypeID, &t.Name, &t.Description); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

// CopyEvent duplicates an event in a single transaction. Shift dates are
// moved by the difference between the old and new start dates; copied
// assignments start over with a planned status and no substitute.
func (d *DB) CopyEvent(ctx context.Context, params db.CopyEventParams) (*db.CopyEventResult, error) {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var result db.CopyEventResult

	// New event keeps the source's duration
	err = tx.QueryRow(ctx, `
		INSERT INTO events (name, start_date, end_date, status)
		SELECT $2, $3::date, CASE WHEN end_date IS NULL THEN NULL
		                          ELSE $3::date + (end_date - start_date) END,
		       'planning'
		FROM events
		WHERE event_id = $1
		RETURNING event_id
	`, params.SourceEventID, params.NewName, params.NewStartDate).Scan(&result.NewEventID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to copy event record: %w", err)
	}

	// Copy tasks, remembering the old-to-new id mapping for the shifts
	taskRows, err := tx.Query(ctx, `
		INSERT INTO tasks (event_id, duty_type_id, name, description)
		SELECT $2, duty_type_id, name, description
		FROM tasks
		WHERE event_id = $1
		ORDER BY task_id
		RETURNING task_id
	`, params.SourceEventID, result.NewEventID)
	if err != nil {
		return nil, fmt.Errorf("failed to copy tasks: %w", err)
	}
	var newTaskIDs []int64
	for taskRows.Next() {
		var id int64
		if err := taskRows.Scan(&id); err != nil {
			taskRows.Close()
			return nil, fmt.Errorf("failed to scan copied task: %w", err)
		}
		newTaskIDs = append(newTaskIDs, id)
	}
	taskRows.Close()
	if err := taskRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating copied tasks: %w", err)
	}
	result.TasksCopied = len(newTaskIDs)

	oldTaskIDs, err := d.taskIDs(ctx, tx, params.SourceEventID)
	if err != nil {
		return nil, err
	}
	if len(oldTaskIDs) != len(newTaskIDs) {
		return nil, fmt.Errorf("task copy mismatch: %d source, %d copied", len(oldTaskIDs), len(newTaskIDs))
	}

	if params.Mode == model.CopyStructure {
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("failed to commit event copy: %w", err)
		}
		return &result, nil
	}

	for i, oldTaskID := range oldTaskIDs {
		newTaskID := newTaskIDs[i]

		shiftRows, err := tx.Query(ctx, `
			INSERT INTO shifts (task_id, shift_date, start_time, end_time, required_people)
			SELECT $2, shift_date + ($3::date - e.start_date), start_time, end_time, required_people
			FROM shifts s
			JOIN tasks t ON t.task_id = s.task_id
			JOIN events e ON e.event_id = t.event_id
			WHERE s.task_id = $1
			ORDER BY s.shift_id
			RETURNING shift_id
		`, oldTaskID, newTaskID, params.NewStartDate)
		if err != nil {
			return nil, fmt.Errorf("failed to copy shifts for task %d: %w", oldTaskID, err)
		}
		var newShiftIDs []int64
		for shiftRows.Next() {
			var id int64
			if err := shiftRows.Scan(&id); err != nil {
				shiftRows.Close()
				return nil, fmt.Errorf("failed to scan copied shift: %w", err)
			}
			newShiftIDs = append(newShiftIDs, id)
		}
		shiftRows.Close()
		if err := shiftRows.Err(); err != nil {
			return nil, fmt.Errorf("error iterating copied shifts: %w", err)
		}
		result.ShiftsCopied += len(newShiftIDs)

		if params.Mode != model.CopyFull {
			continue
		}

		oldShiftIDs, err := d.shiftIDs(ctx, tx, oldTaskID)
		if err != nil {
			return nil, err
		}
		if len(oldShiftIDs) != len(newShiftIDs) {
			return nil, fmt.Errorf("shift copy mismatch: %d source, %d copied", len(oldShiftIDs), len(newShiftIDs))
		}

		for j, oldShiftID := range oldShiftIDs {
			copied, err := d.copyShiftAssignments(ctx, tx, oldShiftID, newShiftIDs[j])
			if err != nil {
				return nil, err
			}
			result.AssignmentsCopied += copied
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit event copy: %w", err)
	}

	return &result, nil
}

func (d *DB) taskIDs(ctx context.Context, tx pgx.Tx, eventID int64) ([]int64, error) {
	rows, err := tx.Query(ctx, `
		SELECT task_id FROM tasks WHERE event_id = $1 ORDER BY task_id
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query task ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan task id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task ids: %w", err)
	}
	return ids, nil
}

func (d *DB) shiftIDs(ctx context.Context, tx pgx.Tx, taskID int64) ([]int64, error) {
	rows, err := tx.Query(ctx, `
		SELECT shift_id FROM shifts WHERE task_id = $1 ORDER BY shift_id
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan shift id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift ids: %w", err)
	}
	return ids, nil
}

func (d *DB) copyShiftAssignments(ctx context.Context, tx pgx.Tx, oldShiftID, newShiftID int64) (int, error) {
	rows, err := tx.Query(ctx, `
		SELECT person_id FROM assignments WHERE shift_id = $1 ORDER BY person_id
	`, oldShiftID)
	if err != nil {
		return 0, fmt.Errorf("failed to query assignments of shift %d: %w", oldShiftID, err)
	}
	var personIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan assignment: %w", err)
		}
		personIDs = append(personIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("error iterating assignments: %w", err)
	}

	for _, personID := range personIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO assignments (assignment_id, shift_id, person_id, attendance_status)
			VALUES ($1, $2, $3, 'planned')
		`, uuid.New().String(), newShiftID, personID)
		if err != nil {
			return 0, fmt.Errorf("failed to copy assignment: %w", err)
		}
	}

	return len(personIDs), nil
}
