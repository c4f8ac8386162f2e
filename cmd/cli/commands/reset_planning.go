package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fkoester/equishift/pkg/core/services"
)

// ResetPlanningCmd creates the resetPlanning command
func ResetPlanningCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resetPlanning <event_id>",
		Short: "Discard all assignments of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseID(args[0], "event_id")
			if err != nil {
				return err
			}

			deleted, err := services.ResetPlanning(app.Ctx, app.Database, app.Logger, eventID)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Planning reset, %d assignments deleted\n\n", deleted)

			return nil
		},
	}
}
