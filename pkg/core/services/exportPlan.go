package services

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/fkoester/equishift/pkg/db"
	"github.com/fkoester/equishift/pkg/export"
)

// ExportPlanStore defines the database operations needed to export a plan
type ExportPlanStore interface {
	GetEvent(ctx context.Context, eventID int64) (*db.Event, error)
	ListPlanRows(ctx context.Context, eventID int64) ([]db.PlanRow, error)
}

// ExportPlan writes the event plan as a PDF to outputPath and returns the
// number of rendered rows.
func ExportPlan(ctx context.Context, database ExportPlanStore, logger *zap.Logger, eventID int64, outputPath string) (int, error) {
	event, err := database.GetEvent(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch event %d: %w", eventID, err)
	}

	rows, err := database.ListPlanRows(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch plan rows: %w", err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("event %q has no shifts to export", event.Name)
	}

	document, err := export.PlanPDF(planTitle(event), planRows(rows))
	if err != nil {
		return 0, fmt.Errorf("failed to render plan: %w", err)
	}

	if err := os.WriteFile(outputPath, document, 0o644); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", outputPath, err)
	}

	logger.Info("Plan exported",
		zap.Int64("event_id", eventID),
		zap.String("path", outputPath),
		zap.Int("rows", len(rows)))

	return len(rows), nil
}

func planTitle(event *db.Event) string {
	if event.EndDate == "" || event.EndDate == event.StartDate {
		return fmt.Sprintf("%s (%s)", event.Name, event.StartDate)
	}
	return fmt.Sprintf("%s (%s to %s)", event.Name, event.StartDate, event.EndDate)
}

func planRows(rows []db.PlanRow) []export.PlanRow {
	out := make([]export.PlanRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, export.PlanRow{
			Date:     r.ShiftDate,
			Time:     fmt.Sprintf("%s - %s", r.StartTime, r.EndTime),
			Task:     r.TaskName,
			Helper:   r.HelperName,
			TeamLead: r.IsTeamLeader,
			Phone:    r.Phone,
		})
	}
	return out
}
