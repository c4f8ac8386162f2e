package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fkoester/equishift/internal/config"
	"github.com/fkoester/equishift/pkg/core/planner"
	"github.com/fkoester/equishift/pkg/core/services"
)

// ProposeCmd creates the propose command
func ProposeCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "propose <event_id>",
		Short: "Generate an assignment proposal for the open slots of an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseID(args[0], "event_id")
			if err != nil {
				return err
			}

			reset, _ := cmd.Flags().GetBool("reset")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			var seed *int64
			if cmd.Flags().Changed("seed") {
				v, _ := cmd.Flags().GetInt64("seed")
				seed = &v
			}

			weights := proposalWeights(app.Cfg.Proposal)

			result, err := services.GenerateProposal(app.Ctx, app.Database, app.Logger, eventID, weights, seed, reset, dryRun)
			if err != nil {
				return err
			}

			if dryRun {
				fmt.Printf("\nDry run for %q: %d assignments would be created\n\n", result.Event.Name, result.Created)
				for _, a := range result.Assignments {
					fmt.Printf("  shift %d <- person %d\n", a.ShiftID, a.PersonID)
				}
				fmt.Println()
				return nil
			}

			fmt.Printf("\n✓ Proposal saved for %q\n\n", result.Event.Name)
			if result.Deleted > 0 {
				fmt.Printf("Cleared:  %d previous assignments\n", result.Deleted)
			}
			fmt.Printf("Created:  %d assignments\n", result.Created)
			fmt.Printf("Staffing: %d/%d slots filled\n\n", result.TotalAssigned, result.TotalRequired)

			if result.TotalAssigned < result.TotalRequired {
				fmt.Println("Some slots are still open. Run 'candidates <shift_id>' to fill them by hand.")
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().Int64("seed", 0, "Fixed random seed for a reproducible proposal")
	cmd.Flags().Bool("reset", false, "Discard existing assignments of the event first")
	cmd.Flags().Bool("dry-run", false, "Compute the proposal without saving it")

	return cmd
}

// proposalWeights applies the configured tuning overrides to the defaults
func proposalWeights(cfg config.ProposalConfig) planner.Weights {
	weights := planner.DefaultWeights()
	if cfg.DisqualifyThreshold != nil {
		weights.DisqualifyThreshold = *cfg.DisqualifyThreshold
	}
	if cfg.TeamLeaderBand != nil {
		weights.TeamLeaderBand = *cfg.TeamLeaderBand
	}
	if cfg.FillBand != nil {
		weights.FillBand = *cfg.FillBand
	}
	return weights
}
