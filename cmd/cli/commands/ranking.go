package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fkoester/equishift/pkg/core/services"
)

// RankingCmd creates the ranking command
func RankingCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Show the fairness score ranking across all members",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			includeInactive, _ := cmd.Flags().GetBool("include-inactive")
			limit, _ := cmd.Flags().GetInt("limit")

			result, err := services.HistoricalRanking(app.Ctx, app.Database, app.Logger, includeInactive, limit)
			if err != nil {
				return err
			}

			fmt.Printf("\nFairness ranking (%d members, highest score first):\n\n", len(result.Scores))
			for i, s := range result.Scores {
				fmt.Printf("  %3d. %-30s %4d  (%s)\n", i+1, s.Name, s.Score, s.Status)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("include-inactive", false, "Include resting and exited members")
	cmd.Flags().Int("limit", 0, "Count at most this many logged duties per person (0 = all)")

	return cmd
}
