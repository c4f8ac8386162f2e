package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fkoester/equishift/pkg/core/scoring"
	"github.com/fkoester/equishift/pkg/db"
)

// RankingResult is the historical fairness report
type RankingResult struct {
	Scores []scoring.PersonScore
}

// RankingStore defines the database operations needed for the fairness report
type RankingStore interface {
	ListPersons(ctx context.Context) ([]db.PersonRef, error)
	HistoricalAssignmentLog(ctx context.Context) ([]db.HistoryEntry, error)
}

// HistoricalRanking computes the fairness score report across all members.
// limit caps how many logged duties count per person (0 means all);
// includeInactive adds resting and exited members to the report.
func HistoricalRanking(ctx context.Context, database RankingStore, logger *zap.Logger, includeInactive bool, limit int) (*RankingResult, error) {
	persons, err := database.ListPersons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch persons: %w", err)
	}

	history, err := database.HistoricalAssignmentLog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assignment history: %w", err)
	}

	report := historicalReport(persons, history, scoring.Options{
		IncludeInactive: includeInactive,
		Limit:           limit,
	})

	logger.Info("Fairness ranking computed",
		zap.Int("person_count", len(report)),
		zap.Int("log_entries", len(history)),
		zap.Int("limit", limit))

	return &RankingResult{Scores: report}, nil
}
