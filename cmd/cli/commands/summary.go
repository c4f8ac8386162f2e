package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fkoester/equishift/pkg/core/services"
)

// SummaryCmd creates the summary command
func SummaryCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show worked hours and attendance outcomes per member",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			currentYear, _ := cmd.Flags().GetBool("current-year")

			summaries, err := services.MemberSummaryReport(app.Ctx, app.Database, app.Logger, currentYear)
			if err != nil {
				return err
			}

			scope := "all time"
			if currentYear {
				scope = "current year"
			}
			fmt.Printf("\nMember summary (%s):\n\n", scope)
			fmt.Printf("  %-30s %8s %6s %6s %8s %8s\n", "Name", "Hours", "Done", "Subst", "Excused", "NoShow")
			for _, s := range summaries {
				fmt.Printf("  %-30s %8.1f %6d %6d %8d %8d\n",
					s.Name, s.TotalHours, s.DoneCount, s.SubstituteCount, s.ExcusedCount, s.NoShowCount)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().Bool("current-year", false, "Only count shifts from the current calendar year")

	return cmd
}
