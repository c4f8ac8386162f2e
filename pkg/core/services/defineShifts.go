package services

import (
	"context"
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/fkoester/equishift/pkg/db"
)

// DefineShiftsParams describes a shift definition request. Either Date or
// Recurrence must be set: a single date creates one shift, a recurrence
// rule creates one shift per occurrence within the event's date range.
type DefineShiftsParams struct {
	TaskID         int64
	Date           string
	Recurrence     string
	StartTime      string
	EndTime        string
	RequiredPeople int
}

// DefineShiftsResult reports the created shifts
type DefineShiftsResult struct {
	Task          *db.Task
	ShiftsCreated int
	Dates         []string
}

// DefineShiftsStore defines the database operations needed to define shifts
type DefineShiftsStore interface {
	GetTask(ctx context.Context, taskID int64) (*db.Task, error)
	GetEvent(ctx context.Context, eventID int64) (*db.Event, error)
	InsertShifts(ctx context.Context, shifts []db.Shift) error
}

// DefineShifts creates shifts for a task, either on one date or expanded
// from a recurrence rule across the event's date range.
func DefineShifts(ctx context.Context, database DefineShiftsStore, logger *zap.Logger, params DefineShiftsParams) (*DefineShiftsResult, error) {
	if err := validateShiftTimes(params); err != nil {
		return nil, err
	}

	task, err := database.GetTask(ctx, params.TaskID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch task %d: %w", params.TaskID, err)
	}

	event, err := database.GetEvent(ctx, task.EventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %d: %w", task.EventID, err)
	}
	if !event.Status.Editable() {
		return nil, fmt.Errorf("event %q is %s and can no longer be planned", event.Name, event.Status)
	}

	dates, err := resolveShiftDates(params, event)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, fmt.Errorf("recurrence rule produced no dates within the event (%s to %s)", event.StartDate, eventEndDate(event))
	}

	shifts := make([]db.Shift, 0, len(dates))
	for _, date := range dates {
		shifts = append(shifts, db.Shift{
			TaskID:         task.TaskID,
			ShiftDate:      date,
			StartTime:      params.StartTime,
			EndTime:        params.EndTime,
			RequiredPeople: params.RequiredPeople,
		})
	}

	if err := database.InsertShifts(ctx, shifts); err != nil {
		return nil, fmt.Errorf("failed to insert shifts: %w", err)
	}

	logger.Info("Shifts defined",
		zap.Int64("task_id", task.TaskID),
		zap.Int("shift_count", len(shifts)),
		zap.String("first_date", dates[0]),
		zap.String("last_date", dates[len(dates)-1]))

	return &DefineShiftsResult{
		Task:          task,
		ShiftsCreated: len(shifts),
		Dates:         dates,
	}, nil
}

func validateShiftTimes(params DefineShiftsParams) error {
	if params.RequiredPeople <= 0 {
		return fmt.Errorf("required people must be positive, got %d", params.RequiredPeople)
	}
	if (params.Date == "") == (params.Recurrence == "") {
		return fmt.Errorf("exactly one of date and recurrence must be given")
	}
	if _, err := time.Parse("15:04", params.StartTime); err != nil {
		return fmt.Errorf("invalid start time %q: %w", params.StartTime, err)
	}
	if _, err := time.Parse("15:04", params.EndTime); err != nil {
		return fmt.Errorf("invalid end time %q: %w", params.EndTime, err)
	}
	return nil
}

// resolveShiftDates returns the shift dates within the event range, either
// the single requested date or the recurrence rule's occurrences.
func resolveShiftDates(params DefineShiftsParams, event *db.Event) ([]string, error) {
	eventStart, err := time.Parse("2006-01-02", event.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse event start date: %w", err)
	}
	eventEnd, err := time.Parse("2006-01-02", eventEndDate(event))
	if err != nil {
		return nil, fmt.Errorf("failed to parse event end date: %w", err)
	}

	if params.Date != "" {
		date, err := time.Parse("2006-01-02", params.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid shift date %q: %w", params.Date, err)
		}
		if date.Before(eventStart) || date.After(eventEnd) {
			return nil, fmt.Errorf("shift date %s is outside the event (%s to %s)", params.Date, event.StartDate, eventEndDate(event))
		}
		return []string{params.Date}, nil
	}

	rule, err := rrule.StrToRRule(params.Recurrence)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recurrence rule: %w", err)
	}
	rule.DTStart(eventStart)

	var dates []string
	for _, occurrence := range rule.Between(eventStart, eventEnd, true) {
		dates = append(dates, occurrence.Format("2006-01-02"))
	}
	return dates, nil
}

// eventEndDate returns the inclusive end date of an event; single-day
// events end on their start date.
func eventEndDate(event *db.Event) string {
	if event.EndDate == "" {
		return event.StartDate
	}
	return event.EndDate
}
