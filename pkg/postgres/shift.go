package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fkoester/equishift/pkg/db"
)

// GetShift retrieves one shift
func (d *DB) GetShift(ctx context.Context, shiftID int64) (*db.Shift, error) {
	var s db.Shift
	err := d.pool.QueryRow(ctx, `
		SELECT shift_id, task_id, to_char(shift_date, 'YYYY-MM-DD'),
		       to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		       required_people
		FROM shifts
		WHERE shift_id = $1
	`, shiftID).Scan(&s.ShiftID, &s.TaskID, &s.ShiftDate, &s.StartTime, &s.EndTime, &s.RequiredPeople)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query shift: %w", err)
	}

	return &s, nil
}

// InsertShifts inserts new shifts in one transaction
func (d *DB) InsertShifts(ctx context.Context, shifts []db.Shift) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, s := range shifts {
		_, err := tx.Exec(ctx, `
			INSERT INTO shifts (task_id, shift_date, start_time, end_time, required_people)
			VALUES ($1, $2, $3, $4, $5)
		`, s.TaskID, s.ShiftDate, s.StartTime, s.EndTime, s.RequiredPeople)
		if err != nil {
			return fmt.Errorf("failed to insert shift: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit shifts: %w", err)
	}

	return nil
}

// ListShiftsForEvent retrieves all shifts of an event with their task and
// duty type, ordered by date and start time.
func (d *DB) ListShiftsForEvent(ctx context.Context, eventID int64) ([]db.EventShift, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT s.shift_id, s.task_id, t.name, t.duty_type_id,
		       to_char(s.shift_date, 'YYYY-MM-DD'),
		       to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'),
		       s.required_people
		FROM shifts s
		JOIN tasks t ON t.task_id = s.task_id
		WHERE t.event_id = $1
		ORDER BY s.shift_date, s.start_time, s.shift_id
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer rows.Close()

	var shifts []db.EventShift
	for rows.Next() {
		var s db.EventShift
		if err := rows.Scan(&s.ShiftID, &s.TaskID, &s.TaskName, &s.DutyTypeID, &s.ShiftDate, &s.StartTime, &s.EndTime, &s.RequiredPeople); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shifts: %w", err)
	}

	return shifts, nil
}

// ListShiftOccupancy reports the staffing level of every shift of an event
func (d *DB) ListShiftOccupancy(ctx context.Context, eventID int64) ([]db.ShiftOccupancy, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT s.shift_id, t.name,
		       to_char(s.shift_date, 'YYYY-MM-DD'), to_char(s.start_time, 'HH24:MI'),
		       s.required_people, COUNT(a.assignment_id)
		FROM shifts s
		JOIN tasks t ON t.task_id = s.task_id
		LEFT JOIN assignments a ON a.shift_id = s.shift_id
		WHERE t.event_id = $1
		GROUP BY s.shift_id, t.name
		ORDER BY s.shift_date, s.start_time, s.shift_id
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift occupancy: %w", err)
	}
	defer rows.Close()

	var occupancy []db.ShiftOccupancy
	for rows.Next() {
		var o db.ShiftOccupancy
		if err := rows.Scan(&o.ShiftID, &o.TaskName, &o.ShiftDate, &o.StartTime, &o.RequiredPeople, &o.AssignedCount); err != nil {
			return nil, fmt.Errorf("failed to scan shift occupancy: %w", err)
		}
		occupancy = append(occupancy, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating shift occupancy: %w", err)
	}

	return occupancy, nil
}

// GetEventStaffingSummary aggregates required and assigned headcounts
// across all shifts of an event.
func (d *DB) GetEventStaffingSummary(ctx context.Context, eventID int64) (*db.StaffingSummary, error) {
	var s db.StaffingSummary
	err := d.pool.QueryRow(ctx, `
		SELECT COALESCE((
			SELECT SUM(s.required_people)
			FROM shifts s
			JOIN tasks t ON t.task_id = s.task_id
			WHERE t.event_id = $1
		), 0),
		COALESCE((
			SELECT COUNT(*)
			FROM assignments a
			JOIN shifts s ON s.shift_id = a.shift_id
			JOIN tasks t ON t.task_id = s.task_id
			WHERE t.event_id = $1
		), 0)
	`, eventID).Scan(&s.TotalRequired, &s.TotalAssigned)
	if err != nil {
		return nil, fmt.Errorf("failed to query staffing summary: %w", err)
	}

	return &s, nil
}

// ListPlanRows renders the event plan as one row per required slot,
// assigned or not, in display order.
func (d *DB) ListPlanRows(ctx context.Context, eventID int64) ([]db.PlanRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT t.name,
		       to_char(s.shift_date, 'YYYY-MM-DD'),
		       to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI'),
		       s.required_people,
		       COALESCE(p.display_name, ''),
		       COALESCE(pc.is_team_leader, FALSE),
		       COALESCE(p.phone, '')
		FROM shifts s
		JOIN tasks t ON t.task_id = s.task_id
		CROSS JOIN generate_series(1, s.required_people) AS slot(n)
		LEFT JOIN (
			SELECT a.shift_id, a.person_id,
			       ROW_NUMBER() OVER (PARTITION BY a.shift_id ORDER BY a.assignment_id) AS rn
			FROM assignments a
		) ranked ON ranked.shift_id = s.shift_id AND ranked.rn = slot.n
		LEFT JOIN persons p ON p.person_id = ranked.person_id
		LEFT JOIN person_competencies pc
		       ON pc.person_id = ranked.person_id AND pc.duty_type_id = t.duty_type_id
		WHERE t.event_id = $1
		ORDER BY s.shift_date, s.start_time, t.name, s.shift_id, slot.n
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query plan rows: %w", err)
	}
	defer rows.Close()

	var plan []db.PlanRow
	for rows.Next() {
		var r db.PlanRow
		if err := rows.Scan(&r.TaskName, &r.ShiftDate, &r.StartTime, &r.EndTime, &r.RequiredPeople, &r.HelperName, &r.IsTeamLeader, &r.Phone); err != nil {
			return nil, fmt.Errorf("failed to scan plan row: %w", err)
		}
		plan = append(plan, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plan rows: %w", err)
	}

	return plan, nil
}
