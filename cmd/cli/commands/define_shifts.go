package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fkoester/equishift/pkg/core/services"
)

// DefineShiftsCmd creates the defineShifts command
func DefineShiftsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defineShifts <task_id>",
		Short: "Create shifts for a task, on one date or on a recurrence rule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := parseID(args[0], "task_id")
			if err != nil {
				return err
			}

			date, _ := cmd.Flags().GetString("date")
			recurrence, _ := cmd.Flags().GetString("rrule")
			startTime, _ := cmd.Flags().GetString("start")
			endTime, _ := cmd.Flags().GetString("end")
			required, _ := cmd.Flags().GetInt("required")

			result, err := services.DefineShifts(app.Ctx, app.Database, app.Logger, services.DefineShiftsParams{
				TaskID:         taskID,
				Date:           date,
				Recurrence:     recurrence,
				StartTime:      startTime,
				EndTime:        endTime,
				RequiredPeople: required,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ %d shifts created for %q\n\n", result.ShiftsCreated, result.Task.Name)
			for i, d := range result.Dates {
				fmt.Printf("  %2d. %s  %s to %s\n", i+1, d, startTime, endTime)
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("date", "", "Single shift date (YYYY-MM-DD)")
	cmd.Flags().String("rrule", "", "Recurrence rule, e.g. FREQ=DAILY;INTERVAL=2")
	cmd.Flags().String("start", "", "Shift start time (HH:MM)")
	cmd.Flags().String("end", "", "Shift end time (HH:MM)")
	cmd.Flags().Int("required", 1, "People required per shift")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	return cmd
}
