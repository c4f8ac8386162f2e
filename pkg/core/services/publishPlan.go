package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fkoester/equishift/pkg/clients/sheetsclient"
	"github.com/fkoester/equishift/pkg/db"
)

// PlanPublisher publishes a rendered plan to a spreadsheet tab
type PlanPublisher interface {
	PublishPlan(spreadsheetID, tabTitle string, rows []sheetsclient.PlanRow) error
}

// PublishPlanStore defines the database operations needed to publish a plan
type PublishPlanStore interface {
	GetEvent(ctx context.Context, eventID int64) (*db.Event, error)
	ListPlanRows(ctx context.Context, eventID int64) ([]db.PlanRow, error)
}

// PublishPlan pushes the event plan to Google Sheets, one tab per event,
// and returns the number of published rows.
func PublishPlan(ctx context.Context, database PublishPlanStore, publisher PlanPublisher, logger *zap.Logger, eventID int64, spreadsheetID string) (int, error) {
	if spreadsheetID == "" {
		return 0, fmt.Errorf("no plan spreadsheet configured")
	}

	event, err := database.GetEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch event %d: %w", eventID, err)
	}

	rows, err := database.ListPlanRows(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch plan rows: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("event %q has no shifts to publish", event.Name)
	}

	sheetRows := make([]sheetsclient.PlanRow, 0, len(rows))
	for _, r := range rows {
		sheetRows = append(sheetRows, sheetsclient.PlanRow{
			Date:     r.ShiftDate,
			Time:     fmt.Sprintf("%s - %s", r.StartTime, r.EndTime),
			Task:     r.TaskName,
			Helper:   r.HelperName,
			TeamLead: r.IsTeamLeader,
			Phone:    r.Phone,
		})
	}

	tabTitle := planTitle(event)
	if err := publisher.PublishPlan(spreadsheetID, tabTitle, sheetRows); err != nil {
		return 0, fmt.Errorf("failed to publish plan: %w", err)
	}

	logger.Info("Plan published",
		zap.Int64("event_id", eventID),
		zap.String("tab", tabTitle),
		zap.Int("rows", len(sheetRows)))

	return len(sheetRows), nil
}
