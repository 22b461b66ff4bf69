package scan

import (
	"context"
	"net/url"
	"time"

	"github.com/accesslens/accesslens/internal/model"
	"github.com/accesslens/accesslens/internal/platform/errs"
)

const (
	progressStep = 10
	progressMax  = 100

	// DefaultStepDelay is the pause between simulated scan steps.
	DefaultStepDelay = 300 * time.Millisecond
)

// ProgressFunc receives scan progress as a 0-100 percentage.
type ProgressFunc func(pct int)

// Scanner is an abstract asynchronous analysis operation: it yields a
// stream of progress updates followed by a terminal result or error.
// Swapping in a real scanning backend must not require changes to the
// Session contract.
type Scanner interface {
	Scan(ctx context.Context, targetURL string, onProgress ProgressFunc) (*model.AnalysisResult, error)
}

// ValidateTargetURL checks that raw is a non-empty, well-formed http(s) URL.
func ValidateTargetURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid URL format. Please ensure you entered a valid URL (e.g., https://example.com).",
			Cause:   err,
		}
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Invalid URL format. Please ensure you entered a valid URL (e.g., https://example.com).",
		}
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return &errs.AppError{
			Kind:    errs.InvalidInput,
			Message: "Only http and https URLs are supported.",
		}
	}
	return nil
}

// baselineResult is the canned outcome produced by the simulated scan.
// A real backend replaces this wholesale.
var baselineResult = model.AnalysisResult{
	Score:                    85,
	Level:                    model.LevelAA,
	WCAGViolations:           15,
	AISuggestions:            5,
	PagesScanned:             20,
	EstimatedFixTime:         "2 hours",
	ColorContrastIssues:      3,
	AriaLabelIssues:          5,
	KeyboardNavigationIssues: 2,
	IndustryComparison:       75,
	Perceivable:              true,
	Operable:                 true,
	Understandable:           false,
	Robust:                   true,
}

// SimulatedScanner is a stand-in for a real scanning backend. It walks
// progress from 10 to 100 in fixed increments with a fixed inter-step
// delay and then produces the baseline result.
type SimulatedScanner struct {
	stepDelay time.Duration
}

// NewSimulatedScanner returns a SimulatedScanner with the given
// inter-step delay. A zero delay is valid and useful in tests.
func NewSimulatedScanner(stepDelay time.Duration) *SimulatedScanner {
	return &SimulatedScanner{stepDelay: stepDelay}
}

// Scan validates the target URL, emits the fixed progress sequence, and
// returns a copy of the baseline result. Context cancellation aborts
// the run with the context's error.
func (s *SimulatedScanner) Scan(ctx context.Context, targetURL string, onProgress ProgressFunc) (*model.AnalysisResult, error) {
	if err := ValidateTargetURL(targetURL); err != nil {
		return nil, err
	}

	for pct := progressStep; pct <= progressMax; pct += progressStep {
		if err := sleepCtx(ctx, s.stepDelay); err != nil {
			return nil, err
		}
		if onProgress != nil {
			onProgress(pct)
		}
	}

	result := baselineResult
	return &result, nil
}

// sleepCtx pauses for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
