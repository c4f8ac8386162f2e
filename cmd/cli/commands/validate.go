package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fkoester/equishift/pkg/core/planner"
	"github.com/fkoester/equishift/pkg/core/services"
)

// ValidateCmd creates the validate command
func ValidateCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <event_id>",
		Short: "Check an event plan for conflicts and staffing gaps",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseID(args[0], "event_id")
			if err != nil {
				return err
			}

			result, err := services.ValidatePlan(app.Ctx, app.Database, app.Logger, eventID)
			if err != nil {
				return err
			}

			fmt.Printf("\nValidation of %q:\n\n", result.Event.Name)

			if len(result.Warnings) == 0 {
				fmt.Println("  ✓ No problems found.")
				fmt.Println()
				return nil
			}

			for _, w := range result.Warnings {
				tag := "warn"
				if w.Severity == planner.SeverityHard {
					tag = "HARD"
				}
				fmt.Printf("  [%s] %s\n", tag, w.Message)
			}
			fmt.Println()

			if result.OK() {
				fmt.Printf("✓ Plan is workable, %d advisory warnings\n\n", result.SoftCount)
			} else {
				fmt.Printf("✗ Plan has %d blocking problems and %d advisory warnings\n\n", result.HardCount, result.SoftCount)
			}

			return nil
		},
	}
}
