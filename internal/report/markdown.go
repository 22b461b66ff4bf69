package report

import (
	"bytes"
	"fmt"

	"github.com/nao1215/markdown"

	"github.com/accesslens/accesslens/internal/model"
	"github.com/accesslens/accesslens/internal/platform/errs"
)

// BuildMarkdown renders the same report structure as the PDF in GitHub
// markdown: title, metadata, guideline table, metric table.
func BuildMarkdown(targetURL string, result *model.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	md := markdown.NewMarkdown(&buf)

	md.H1(DocumentTitle)
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Website", targetURL},
			{"Overall Score", fmt.Sprintf("%d/100", result.Score)},
			{"Compliance Level", string(result.Level)},
		},
	})
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: guidelineHeader[:],
		Rows:   toTableRows(guidelineRows(result)),
	})
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: metricHeader[:],
		Rows:   toTableRows(metricRows(result)),
	})

	if err := md.Build(); err != nil {
		return nil, &errs.AppError{
			Kind:    errs.ExportFailed,
			Message: "Failed to render the markdown report.",
			Cause:   err,
		}
	}
	return buf.Bytes(), nil
}

func toTableRows(rows [][2]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = row[:]
	}
	return out
}
