package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fkoester/equishift/pkg/core/model"
	"github.com/fkoester/equishift/pkg/core/services"
)

// RecordAttendanceCmd creates the recordAttendance command
func RecordAttendanceCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recordAttendance <assignment_id> <status>",
		Short: "Record how an assignment turned out",
		Long: `Record the attendance outcome of one assignment.

Valid statuses: planned, done, done_via_substitute, no_show, excused.
done_via_substitute requires --substitute with the person who stepped in.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assignmentID := args[0]
			status := model.AttendanceStatus(args[1])

			var substitute *int64
			if cmd.Flags().Changed("substitute") {
				v, _ := cmd.Flags().GetInt64("substitute")
				substitute = &v
			}

			if err := services.RecordAttendance(app.Ctx, app.Database, app.Logger, assignmentID, status, substitute); err != nil {
				return err
			}

			fmt.Printf("\n✓ Attendance recorded: %s\n\n", status)

			return nil
		},
	}

	cmd.Flags().Int64("substitute", 0, "Person who actually served, for done_via_substitute")

	return cmd
}
