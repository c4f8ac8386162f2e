package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fkoester/equishift/pkg/db"
)

// ResetStore defines the database operations needed to reset an event's planning
type ResetStore interface {
	GetEvent(ctx context.Context, eventID int64) (*db.Event, error)
	DeleteAssignmentsForEvent(ctx context.Context, eventID int64) (int64, error)
}

// ResetPlanning deletes all assignments of an event and returns how many
// were removed. Completed events are immutable.
func ResetPlanning(ctx context.Context, database ResetStore, logger *zap.Logger, eventID int64) (int64, error) {
	event, err := database.GetEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch event %d: %w", eventID, err)
	}
	if !event.Status.Editable() {
		return 0, fmt.Errorf("event %q is %s and can no longer be planned", event.Name, event.Status)
	}

	deleted, err := database.DeleteAssignmentsForEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete assignments: %w", err)
	}

	logger.Info("Planning reset",
		zap.Int64("event_id", eventID),
		zap.Int64("deleted", deleted))

	return deleted, nil
}
