package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/accesslens/accesslens/internal/model"
	"github.com/accesslens/accesslens/internal/platform/errs"
)

const (
	// DocumentTitle heads every exported report.
	DocumentTitle = "Accessibility Analysis Report"

	// PDFFileName is the fixed artifact name for PDF exports.
	PDFFileName = "accessibility-report.pdf"

	// MarkdownFileName is the fixed artifact name for markdown exports.
	MarkdownFileName = "accessibility-report.md"
)

// Page geometry in millimeters (A4 portrait). The title block sits at a
// fixed top-left anchor; the second table starts tableGap below the end
// of the first.
const (
	anchorX     = 20.0
	anchorY     = 20.0
	titleSize   = 20.0
	metaSize    = 12.0
	metaLeading = 10.0
	tableGap    = 10.0
	colWidth    = 80.0
	rowHeight   = 10.0
	cellSize    = 11.0
	pageBottom  = 277.0 // A4 height minus bottom margin
)

// reportEpoch pins the document creation date so identical inputs yield
// byte-for-byte identical files.
var reportEpoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// layout records where the tables landed, mainly so tests can pin the
// inter-table spacing rule.
type layout struct {
	TableAEnd   float64
	TableBStart float64
}

// BuildPDF renders one analysis result into a paginated PDF report.
// The transform is pure: the inputs are not mutated and the output is
// deterministic. The target URL is echoed as-is, not re-validated.
func BuildPDF(targetURL string, result *model.AnalysisResult) ([]byte, error) {
	doc := newDocument()
	renderReport(doc, targetURL, result)

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, &errs.AppError{
			Kind:    errs.ExportFailed,
			Message: "Failed to render the PDF report.",
			Cause:   err,
		}
	}
	return buf.Bytes(), nil
}

func newDocument() *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(reportEpoch)
	doc.SetModificationDate(reportEpoch)
	doc.SetCompression(false)
	// Pagination is handled per table row so continuation pages can
	// repeat the table header.
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	return doc
}

// renderReport draws the full document: title block, metadata lines,
// then the guideline and metric tables in fixed order.
func renderReport(doc *fpdf.Fpdf, targetURL string, result *model.AnalysisResult) layout {
	b := &pdfBuilder{doc: doc, tr: doc.UnicodeTranslatorFromDescriptor("")}

	doc.SetFont("Helvetica", "B", titleSize)
	doc.Text(anchorX, anchorY, b.tr(DocumentTitle))

	doc.SetFont("Helvetica", "", metaSize)
	doc.Text(anchorX, anchorY+1*metaLeading, b.tr("Website: "+targetURL))
	doc.Text(anchorX, anchorY+2*metaLeading, b.tr(fmt.Sprintf("Overall Score: %d/100", result.Score)))
	doc.Text(anchorX, anchorY+3*metaLeading, b.tr(fmt.Sprintf("Compliance Level: %s", result.Level)))

	aEnd := b.drawTable(anchorY+4*metaLeading, guidelineHeader, guidelineRows(result))
	bStart := aEnd + tableGap
	b.drawTable(bStart, metricHeader, metricRows(result))

	return layout{TableAEnd: aEnd, TableBStart: bStart}
}

var (
	guidelineHeader = [2]string{"WCAG Guideline", "Status"}
	metricHeader    = [2]string{"Metric", "Value"}
)

// guidelineRows returns Table A in its fixed POUR order.
func guidelineRows(r *model.AnalysisResult) [][2]string {
	return [][2]string{
		{"Perceivable", passFail(r.Perceivable)},
		{"Operable", passFail(r.Operable)},
		{"Understandable", passFail(r.Understandable)},
		{"Robust", passFail(r.Robust)},
	}
}

// metricRows returns Table B in its fixed order. IndustryComparison is
// deliberately absent.
func metricRows(r *model.AnalysisResult) [][2]string {
	return [][2]string{
		{"WCAG Violations", strconv.Itoa(r.WCAGViolations)},
		{"AI Suggestions", strconv.Itoa(r.AISuggestions)},
		{"Pages Scanned", strconv.Itoa(r.PagesScanned)},
		{"Estimated Fix Time", r.EstimatedFixTime},
		{"Color Contrast Issues", strconv.Itoa(r.ColorContrastIssues)},
		{"ARIA Label Issues", strconv.Itoa(r.AriaLabelIssues)},
		{"Keyboard Navigation Issues", strconv.Itoa(r.KeyboardNavigationIssues)},
	}
}

func passFail(ok bool) string {
	if ok {
		return "Pass"
	}
	return "Fail"
}

type pdfBuilder struct {
	doc *fpdf.Fpdf
	tr  func(string) string
}

// drawTable renders a two-column table starting at startY and returns
// the Y position just below its last row. Rows that would cross the
// bottom margin flow onto a fresh page with the header repeated, so
// consecutive tables can never overlap.
func (b *pdfBuilder) drawTable(startY float64, header [2]string, rows [][2]string) float64 {
	y := startY
	if y+rowHeight > pageBottom {
		b.doc.AddPage()
		y = anchorY
	}
	y = b.drawRow(y, header, true)

	for _, row := range rows {
		if y+rowHeight > pageBottom {
			b.doc.AddPage()
			y = b.drawRow(anchorY, header, true)
		}
		y = b.drawRow(y, row, false)
	}
	return y
}

func (b *pdfBuilder) drawRow(y float64, cells [2]string, heading bool) float64 {
	if heading {
		b.doc.SetFont("Helvetica", "B", cellSize)
		b.doc.SetFillColor(230, 230, 230)
	} else {
		b.doc.SetFont("Helvetica", "", cellSize)
	}

	b.doc.SetXY(anchorX, y)
	b.doc.CellFormat(colWidth, rowHeight, b.tr(cells[0]), "1", 0, "L", heading, 0, "")
	b.doc.CellFormat(colWidth, rowHeight, b.tr(cells[1]), "1", 0, "L", heading, 0, "")
	return y + rowHeight
}
