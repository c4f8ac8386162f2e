package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fkoester/equishift/pkg/core/services"
)

// ExportPlanCmd creates the exportPlan command
func ExportPlanCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exportPlan <event_id>",
		Short: "Export an event plan as a PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseID(args[0], "event_id")
			if err != nil {
				return err
			}
			out, _ := cmd.Flags().GetString("out")

			rowCount, err := services.ExportPlan(app.Ctx, app.Database, app.Logger, eventID, out)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Plan exported to %s (%d rows)\n\n", out, rowCount)

			return nil
		},
	}

	cmd.Flags().String("out", "plan.pdf", "Output file path")

	return cmd
}
