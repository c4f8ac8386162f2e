package sheetsclient

import (
	"fmt"
)

// PlanRow is one published line of an event plan
type PlanRow struct {
	Date     string
	Time     string
	Task     string
	Helper   string
	TeamLead bool
	Phone    string
}

// PublishPlan writes an event plan to its own tab of the spreadsheet,
// named after the event. An existing tab with that name is overwritten.
func (c *Client) PublishPlan(spreadsheetID, tabTitle string, rows []PlanRow) error {
	existing, err := c.findSheet(spreadsheetID, tabTitle)
	if err != nil {
		return err
	}
	if existing == nil {
		if err := c.createSheet(spreadsheetID, tabTitle); err != nil {
			return err
		}
	}

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, []interface{}{"Date", "Time", "Task", "Helper", "Team lead", "Phone"})
	for _, row := range rows {
		lead := ""
		if row.TeamLead {
			lead = "yes"
		}
		values = append(values, []interface{}{row.Date, row.Time, row.Task, row.Helper, lead, row.Phone})
	}

	if err := c.writeValues(spreadsheetID, tabTitle, values); err != nil {
		return fmt.Errorf("failed to publish plan to tab %q: %w", tabTitle, err)
	}
	return nil
}
