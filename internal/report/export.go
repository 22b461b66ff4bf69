package report

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/accesslens/accesslens/internal/model"
	"github.com/accesslens/accesslens/internal/platform/errs"
)

// Deliverer hands a finished report artifact to its destination: a file
// on disk, an HTTP response, a test buffer. Keeping delivery behind this
// seam leaves the builders as pure data-to-bytes transforms.
type Deliverer interface {
	Deliver(filename string, data []byte) error
}

// FileDeliverer writes artifacts into a directory.
type FileDeliverer struct {
	Dir string
}

func (d FileDeliverer) Deliver(filename string, data []byte) error {
	if err := os.WriteFile(filepath.Join(d.Dir, filename), data, 0o644); err != nil {
		return &errs.AppError{
			Kind:    errs.ExportFailed,
			Message: "Failed to save the report file.",
			Cause:   err,
		}
	}
	return nil
}

// ExportPDF builds the PDF report and delivers it under the fixed
// artifact name. Build and delivery failures both propagate; a partial
// document is never delivered.
func ExportPDF(targetURL string, result *model.AnalysisResult, d Deliverer) error {
	data, err := BuildPDF(targetURL, result)
	if err != nil {
		return err
	}
	return deliver(d, PDFFileName, data)
}

// ExportMarkdown builds the markdown report and delivers it under the
// fixed artifact name.
func ExportMarkdown(targetURL string, result *model.AnalysisResult, d Deliverer) error {
	data, err := BuildMarkdown(targetURL, result)
	if err != nil {
		return err
	}
	return deliver(d, MarkdownFileName, data)
}

func deliver(d Deliverer, filename string, data []byte) error {
	err := d.Deliver(filename, data)
	if err == nil {
		return nil
	}

	var appErr *errs.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return &errs.AppError{
		Kind:    errs.ExportFailed,
		Message: "Failed to deliver the report.",
		Cause:   err,
	}
}
