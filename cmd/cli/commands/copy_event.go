package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fkoester/equishift/pkg/core/model"
	"github.com/fkoester/equishift/pkg/core/services"
	"github.com/fkoester/equishift/pkg/db"
)

// CopyEventCmd creates the copyEvent command
func CopyEventCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copyEvent <source_event_id> <new_name> <new_start_date>",
		Short: "Duplicate an event as the starting point for a new one",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sourceEventID, err := parseID(args[0], "source_event_id")
			if err != nil {
				return err
			}
			mode, _ := cmd.Flags().GetString("mode")

			result, err := services.CopyEvent(app.Ctx, app.Database, app.Logger, db.CopyEventParams{
				SourceEventID: sourceEventID,
				NewName:       args[1],
				NewStartDate:  args[2],
				Mode:          model.CopyMode(mode),
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Event copied successfully!\n\n")
			fmt.Printf("New Event ID: %d\n", result.NewEventID)
			fmt.Printf("Tasks:        %d\n", result.TasksCopied)
			fmt.Printf("Shifts:       %d\n", result.ShiftsCopied)
			if result.AssignmentsCopied > 0 {
				fmt.Printf("Assignments:  %d (reset to planned)\n", result.AssignmentsCopied)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("mode", string(model.CopyShifts), "How much to copy: structure, shifts or full")

	return cmd
}
