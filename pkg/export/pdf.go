// Package export renders event plans into shareable documents.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PlanRow is one printable line of a plan document
type PlanRow struct {
	Date     string
	Time     string
	Task     string
	Helper   string
	TeamLead bool
	Phone    string
}

// PlanPDF renders an event plan as a landscape A4 table. Unfilled slots
// keep their row with an empty helper column so gaps stay visible on paper.
func PlanPDF(title string, rows []PlanRow) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	headers := []string{"Date", "Time", "Task", "Helper", "Lead", "Phone"}
	widths := []float64{35, 35, 70, 70, 17, 50}

	pdf.SetFont("Arial", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		lead := ""
		if row.TeamLead {
			lead = "TL"
		}
		cells := []string{row.Date, row.Time, row.Task, row.Helper, lead, row.Phone}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
