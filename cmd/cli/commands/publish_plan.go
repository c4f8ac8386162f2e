package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fkoester/equishift/internal/config"
	"github.com/fkoester/equishift/pkg/clients/sheetsclient"
	"github.com/fkoester/equishift/pkg/core/services"
)

// PublishPlanCmd creates the publishPlan command. The sheets client is
// built here rather than at startup so the other commands never trigger
// the OAuth flow.
func PublishPlanCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publishPlan <event_id>",
		Short: "Publish an event plan to the plan spreadsheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := parseID(args[0], "event_id")
			if err != nil {
				return err
			}

			sheetID, _ := cmd.Flags().GetString("sheet")
			if sheetID == "" {
				sheetID = app.Cfg.PlanSheetID
			}

			oauthCfg, err := config.LoadOAuthClient()
			if err != nil {
				return fmt.Errorf("failed to load OAuth client config: %w", err)
			}

			client, err := sheetsclient.NewClient(app.Ctx, oauthCfg)
			if err != nil {
				return fmt.Errorf("failed to create sheets client: %w", err)
			}

			rowCount, err := services.PublishPlan(app.Ctx, app.Database, client, app.Logger, eventID, sheetID)
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Plan published to spreadsheet %s (%d rows)\n\n", sheetID, rowCount)

			return nil
		},
	}

	cmd.Flags().String("sheet", "", "Spreadsheet ID (defaults to planSheetID from the config)")

	return cmd
}
