package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/fkoester/equishift/pkg/db"
)

// ListPersons retrieves all members ordered by display name
func (d *DB) ListPersons(ctx context.Context) ([]db.PersonRef, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT person_id, display_name, status
		FROM persons
		ORDER BY display_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query persons: %w", err)
	}
	defer rows.Close()

	var persons []db.PersonRef
	for rows.Next() {
		var p db.PersonRef
		if err := rows.Scan(&p.PersonID, &p.DisplayName, &p.Status); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating persons: %w", err)
	}

	return persons, nil
}

// GetRestrictions retrieves the duty type ids a person is restricted from
func (d *DB) GetRestrictions(ctx context.Context, personID int64) ([]int64, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT duty_type_id
		FROM person_duty_restrictions
		WHERE person_id = $1
	`, personID)
	if err != nil {
		return nil, fmt.Errorf("failed to query restrictions: %w", err)
	}
	defer rows.Close()

	var dutyTypeIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan restriction: %w", err)
		}
		dutyTypeIDs = append(dutyTypeIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating restrictions: %w", err)
	}

	return dutyTypeIDs, nil
}

// GetCompetency retrieves a person's qualification for one duty type
func (d *DB) GetCompetency(ctx context.Context, personID, dutyTypeID int64) (*db.Competency, error) {
	var c db.Competency
	err := d.pool.QueryRow(ctx, `
		SELECT person_id, duty_type_id, is_team_leader
		FROM person_competencies
		WHERE person_id = $1 AND duty_type_id = $2
	`, personID, dutyTypeID).Scan(&c.PersonID, &c.DutyTypeID, &c.IsTeamLeader)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query competency: %w", err)
	}

	return &c, nil
}

// ListCandidatesForDuty retrieves the assignable persons not restricted
// from the duty type. When excludingShiftID is non-zero, persons already
// assigned to that shift are left out.
func (d *DB) ListCandidatesForDuty(ctx context.Context, dutyTypeID, excludingShiftID int64) ([]db.PersonRef, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT p.person_id, p.display_name, p.status
		FROM persons p
		WHERE p.status IN ('active', 'passive')
		  AND NOT EXISTS (
			SELECT 1 FROM person_duty_restrictions r
			WHERE r.person_id = p.person_id AND r.duty_type_id = $1
		  )
		  AND ($2 = 0 OR NOT EXISTS (
			SELECT 1 FROM assignments a
			WHERE a.person_id = p.person_id AND a.shift_id = $2
		  ))
		ORDER BY p.display_name
	`, dutyTypeID, excludingShiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	var candidates []db.PersonRef
	for rows.Next() {
		var p db.PersonRef
		if err := rows.Scan(&p.PersonID, &p.DisplayName, &p.Status); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}

	return candidates, nil
}

// ListCompetenciesForDuty retrieves all competencies for one duty type
func (d *DB) ListCompetenciesForDuty(ctx context.Context, dutyTypeID int64) ([]db.Competency, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT person_id, duty_type_id, is_team_leader
		FROM person_competencies
		WHERE duty_type_id = $1
	`, dutyTypeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query competencies: %w", err)
	}
	defer rows.Close()

	var competencies []db.Competency
	for rows.Next() {
		var c db.Competency
		if err := rows.Scan(&c.PersonID, &c.DutyTypeID, &c.IsTeamLeader); err != nil {
			return nil, fmt.Errorf("failed to scan competency: %w", err)
		}
		competencies = append(competencies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating competencies: %w", err)
	}

	return competencies, nil
}

// ListAttendanceOutcomes retrieves every recorded assignment outcome with
// its shift window, optionally limited to the current calendar year. Who
// gets credited for what is decided by the summary computation, not here.
func (d *DB) ListAttendanceOutcomes(ctx context.Context, currentYearOnly bool) ([]db.AttendanceOutcome, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.person_id, a.substitute_person_id, a.attendance_status,
		       to_char(s.shift_date, 'YYYY-MM-DD'),
		       to_char(s.start_time, 'HH24:MI'), to_char(s.end_time, 'HH24:MI')
		FROM assignments a
		JOIN shifts s ON s.shift_id = a.shift_id
		WHERE NOT $1 OR s.shift_date >= date_trunc('year', now())::date
		ORDER BY s.shift_date, s.start_time, a.assignment_id
	`, currentYearOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []db.AttendanceOutcome
	for rows.Next() {
		var o db.AttendanceOutcome
		if err := rows.Scan(&o.PersonID, &o.SubstitutePersonID, &o.AttendanceStatus, &o.ShiftDate, &o.StartTime, &o.EndTime); err != nil {
			return nil, fmt.Errorf("failed to scan attendance outcome: %w", err)
		}
		outcomes = append(outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attendance outcomes: %w", err)
	}

	return outcomes, nil
}
