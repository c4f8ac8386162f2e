package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fkoester/equishift/pkg/core/services"
)

// CandidatesCmd creates the candidates command
func CandidatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "candidates <shift_id>",
		Short: "List who could take a shift, best candidates first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shiftID, err := parseID(args[0], "shift_id")
			if err != nil {
				return err
			}

			result, err := services.AvailableCandidates(app.Ctx, app.Database, app.Logger, shiftID)
			if err != nil {
				return err
			}

			fmt.Printf("\nCandidates for %s on %s (%s to %s):\n\n",
				result.TaskName,
				result.Shift.ShiftDate,
				result.Shift.StartTime,
				result.Shift.EndTime)

			if len(result.Candidates) == 0 {
				fmt.Println("  No candidates available.")
				fmt.Println()
				return nil
			}

			for i, c := range result.Candidates {
				marker := ""
				if c.IsTeamLeader {
					marker = " [TL]"
				} else if c.HasCompetence {
					marker = " [C]"
				}
				warnings := ""
				if len(c.Warnings) > 0 {
					warnings = fmt.Sprintf(" (%s)", c.WarningsText())
				}
				fmt.Printf("  %2d. %s%s%s\n", i+1, c.DisplayName, marker, warnings)
			}
			fmt.Println()

			return nil
		},
	}
}
