package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fkoester/equishift/pkg/core/planner"
	"github.com/fkoester/equishift/pkg/core/scoring"
	"github.com/fkoester/equishift/pkg/db"
)

// MemberSummaryStore defines the database operations needed for the member report
type MemberSummaryStore interface {
	ListPersons(ctx context.Context) ([]db.PersonRef, error)
	ListAttendanceOutcomes(ctx context.Context, currentYearOnly bool) ([]db.AttendanceOutcome, error)
}

// MemberSummaryReport aggregates worked hours and attendance outcomes per
// member, optionally limited to the current calendar year. Shifts crossing
// midnight count their full length.
func MemberSummaryReport(ctx context.Context, database MemberSummaryStore, logger *zap.Logger, currentYearOnly bool) ([]scoring.MemberSummary, error) {
	persons, err := database.ListPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch persons: %w", err)
	}

	records, err := database.ListAttendanceOutcomes(ctx, currentYearOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance outcomes: %w", err)
	}

	outcomes := make([]scoring.DutyOutcome, 0, len(records))
	for _, r := range records {
		window, err := planner.NewTimeWindow(r.ShiftDate, r.StartTime, r.EndTime)
		if err != nil {
			return nil, fmt.Errorf("failed to build window for assignment of person %d: %w", r.PersonID, err)
		}
		outcomes = append(outcomes, scoring.DutyOutcome{
			PersonID:           r.PersonID,
			SubstitutePersonID: r.SubstitutePersonID,
			Status:             r.AttendanceStatus,
			Hours:              window.Hours(),
		})
	}

	scorable := make([]scoring.Person, 0, len(persons))
	for _, p := range persons {
		scorable = append(scorable, scoring.Person{
			PersonID: p.PersonID,
			Name:     p.DisplayName,
			Status:   p.Status,
		})
	}

	summaries := scoring.MemberSummaries(scorable, outcomes)

	logger.Info("Member summary computed",
		zap.Int("member_count", len(summaries)),
		zap.Int("outcome_count", len(outcomes)),
		zap.Bool("current_year_only", currentYearOnly))

	return summaries, nil
}
