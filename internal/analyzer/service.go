package analyzer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/accesslens/accesslens/internal/model"
	"github.com/accesslens/accesslens/internal/platform/errs"
	"github.com/accesslens/accesslens/internal/platform/requestid"
	"github.com/accesslens/accesslens/internal/scan"
)

// Service orchestrates a Provider and logs results.
type Service struct {
	provider Provider
	logger   *slog.Logger
}

// NewService creates a Service backed by the given provider.
func NewService(provider Provider, logger *slog.Logger) *Service {
	return &Service{provider: provider, logger: logger}
}

// Analyze runs one scan to completion and returns the finalized result.
func (s *Service) Analyze(ctx context.Context, targetURL string) (*model.AnalysisResult, error) {
	return s.AnalyzeWithProgress(ctx, targetURL, nil)
}

// AnalyzeWithProgress runs one scan, forwarding progress updates to
// onProgress, and logs the outcome. Scan errors that carry no category
// are wrapped as a generic scan failure.
func (s *Service) AnalyzeWithProgress(ctx context.Context, targetURL string, onProgress scan.ProgressFunc) (*model.AnalysisResult, error) {
	logger := s.logger.With("url", targetURL, "request_id", requestid.FromContext(ctx))

	progress := func(pct int) {
		logger.Debug("scan progress", "progress", pct)
		if onProgress != nil {
			onProgress(pct)
		}
	}

	result, err := s.provider.Scan(ctx, targetURL, progress)
	if err != nil {
		switch {
		case errors.Is(ctx.Err(), context.DeadlineExceeded):
			err = &errs.AppError{
				Kind:    errs.Timeout,
				Message: "Analysis timed out. Please try again.",
				Cause:   err,
			}
		default:
			var appErr *errs.AppError
			if !errors.As(err, &appErr) {
				err = &errs.AppError{
					Kind:    errs.ScanFailed,
					Message: scan.FailureMessage,
					Cause:   err,
				}
			}
		}

		logger.Error("analysis failed", "error", err)
		return nil, err
	}

	logger.Info("analysis complete",
		"score", result.Score,
		"level", result.Level,
		"wcag_violations", result.WCAGViolations,
		"pages_scanned", result.PagesScanned,
	)
	return result, nil
}
