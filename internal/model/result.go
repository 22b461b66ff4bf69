package model

import (
	"errors"
	"fmt"
)

// ConformanceLevel is a WCAG conformance tier. Levels are ordinal:
// A < AA < AAA.
type ConformanceLevel string

const (
	LevelA   ConformanceLevel = "A"
	LevelAA  ConformanceLevel = "AA"
	LevelAAA ConformanceLevel = "AAA"
)

// rank returns the ordinal position of the level, or -1 if unknown.
func (l ConformanceLevel) rank() int {
	switch l {
	case LevelA:
		return 0
	case LevelAA:
		return 1
	case LevelAAA:
		return 2
	}
	return -1
}

// Valid reports whether the level is one of A, AA, AAA.
func (l ConformanceLevel) Valid() bool {
	return l.rank() >= 0
}

// AtLeast reports whether l meets or exceeds the other level.
// Comparing an invalid level always returns false.
func (l ConformanceLevel) AtLeast(other ConformanceLevel) bool {
	if !l.Valid() || !other.Valid() {
		return false
	}
	return l.rank() >= other.rank()
}

// AnalysisResult holds the complete outcome of one accessibility scan.
// It is only constructed after a scan completes and is never partially
// populated.
type AnalysisResult struct {
	Score                    int              `json:"score"`
	Level                    ConformanceLevel `json:"level"`
	WCAGViolations           int              `json:"wcag_violations"`
	AISuggestions            int              `json:"ai_suggestions"`
	PagesScanned             int              `json:"pages_scanned"`
	EstimatedFixTime         string           `json:"estimated_fix_time"`
	ColorContrastIssues      int              `json:"color_contrast_issues"`
	AriaLabelIssues          int              `json:"aria_label_issues"`
	KeyboardNavigationIssues int              `json:"keyboard_navigation_issues"`

	// IndustryComparison is a 0-100 percentile against comparable sites.
	// It is carried for forward compatibility but not rendered in any
	// export format.
	IndustryComparison int `json:"industry_comparison"`

	// POUR principle checks.
	Perceivable    bool `json:"perceivable"`
	Operable       bool `json:"operable"`
	Understandable bool `json:"understandable"`
	Robust         bool `json:"robust"`
}

var (
	errScoreOutOfRange      = errors.New("score must be 0-100")
	errComparisonOutOfRange = errors.New("industry_comparison must be 0-100")
	errUnknownLevel         = errors.New("level must be one of A, AA, AAA")
	errNegativeCount        = errors.New("counts must be non-negative")
	errEmptyFixTime         = errors.New("estimated_fix_time must not be empty")
)

// Validate checks the fully-populated invariant: every field is in range.
func (r *AnalysisResult) Validate() error {
	if r.Score < 0 || r.Score > 100 {
		return fmt.Errorf("%w: got %d", errScoreOutOfRange, r.Score)
	}
	if !r.Level.Valid() {
		return fmt.Errorf("%w: got %q", errUnknownLevel, r.Level)
	}
	if r.IndustryComparison < 0 || r.IndustryComparison > 100 {
		return fmt.Errorf("%w: got %d", errComparisonOutOfRange, r.IndustryComparison)
	}
	for _, n := range []int{
		r.WCAGViolations,
		r.AISuggestions,
		r.PagesScanned,
		r.ColorContrastIssues,
		r.AriaLabelIssues,
		r.KeyboardNavigationIssues,
	} {
		if n < 0 {
			return errNegativeCount
		}
	}
	if r.EstimatedFixTime == "" {
		return errEmptyFixTime
	}
	return nil
}

// ErrorResponse is the JSON shape returned on failure.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}
