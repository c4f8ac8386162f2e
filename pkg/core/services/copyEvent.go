package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fkoester/equishift/pkg/core/model"
	"github.com/fkoester/equishift/pkg/db"
)

// CopyEventStore defines the database operations needed to copy an event
type CopyEventStore interface {
	GetEvent(ctx context.Context, eventID int64) (*db.Event, error)
	CopyEvent(ctx context.Context, params db.CopyEventParams) (*db.CopyEventResult, error)
}

// CopyEvent duplicates an event onto a new start date. The mode controls
// depth: structure copies tasks only, shifts adds the shifts with dates
// moved by the start delta, full also carries the assignments over with
// their attendance reset to planned.
func CopyEvent(ctx context.Context, database CopyEventStore, logger *zap.Logger, params db.CopyEventParams) (*db.CopyEventResult, error) {
	if !model.ValidCopyMode(params.Mode) {
		return nil, fmt.Errorf("unknown copy mode %q", params.Mode)
	}
	if strings.TrimSpace(params.NewName) == "" {
		return nil, fmt.Errorf("new event name must not be empty")
	}
	if _, err := time.Parse("2006-01-02", params.NewStartDate); err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", params.NewStartDate, err)
	}

	source, err := database.GetEvent(ctx, params.SourceEventID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %d: %w", params.SourceEventID, err)
	}

	logger.Info("Copying event",
		zap.Int64("source_event_id", source.EventID),
		zap.String("new_name", params.NewName),
		zap.String("new_start", params.NewStartDate),
		zap.String("mode", string(params.Mode)))

	result, err := database.CopyEvent(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to copy event: %w", err)
	}

	logger.Info("Event copied",
		zap.Int64("new_event_id", result.NewEventID),
		zap.Int("tasks", result.TasksCopied),
		zap.Int("shifts", result.ShiftsCopied),
		zap.Int("assignments", result.AssignmentsCopied))

	return result, nil
}
