package infra

// pdf.go — Production status report generation using go-pdf/fpdf.
// Generates an A4 report with:
//   - Order and product header
//   - Overall progress and predicted completion date
//   - Stage timeline table (stage, status, progress, started / completed)
//
// The output file is saved to storagePath/report_{production_id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"woodtrack/internal/model"

	"github.com/go-pdf/fpdf"
)

// ProductionReport bundles the live-computed view of a production record
// for rendering. Callers compute progress, ETA, and timeline themselves so
// the renderer stays free of business rules.
type ProductionReport struct {
	Production *model.Production
	Progress   float64
	ETA        *time.Time
	Timeline   []model.TimelineEntry
}

// GenerateProductionReport writes a PDF status report for a production record.
// storagePath is the directory where the PDF will be written (created if needed).
// Returns the absolute path to the generated file.
func GenerateProductionReport(report ProductionReport, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	p := report.Production
	fileName := fmt.Sprintf("report_%s.pdf", p.ID)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Production Status Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, time.Now().Format("02 Jan 2006 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// ── Order info ────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, p.ProductName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Order: "+p.OrderID.String(), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Quantity: %d    Status: %s    Stage: %s",
		p.Quantity, p.Status, p.CurrentStage), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Progress: %.2f%%", report.Progress), "", 1, "L", false, 0, "")
	if report.ETA != nil {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, "Estimated completion: "+report.ETA.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(3)

	// ── Timeline header ───────────────────────────────────────────────────────
	col1 := contentW * 0.34 // stage
	col2 := contentW * 0.16 // status
	col3 := contentW * 0.12 // progress
	col4 := contentW * 0.19 // started
	col5 := contentW * 0.19 // completed

	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(col1, 6, "Stage", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 6, "Status", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "Progress", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "Started", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col5, 6, "Completed", "B", 1, "L", false, 0, "")

	// ── Timeline rows ─────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 8)
	for _, entry := range report.Timeline {
		stage := entry.Stage
		if len(stage) > 34 {
			stage = stage[:33] + "…"
		}
		pdf.CellFormat(col1, 6, stage, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, entry.Status, "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, fmt.Sprintf("%.0f%%", entry.ProgressPct), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, fmtReportTime(entry.StartedAt), "", 0, "L", false, 0, "")
		pdf.CellFormat(col5, 6, fmtReportTime(entry.CompletedAt), "", 1, "L", false, 0, "")
	}

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Generated by the production tracking service", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

func fmtReportTime(ts *string) string {
	if ts == nil {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, *ts)
	if err != nil {
		return *ts
	}
	return t.Format("02 Jan 15:04")
}
