package scan

import (
	"context"

	"github.com/accesslens/accesslens/internal/model"
	"github.com/accesslens/accesslens/internal/platform/errs"
)

// FailureMessage is the single user-facing message for any scan failure.
const FailureMessage = "Failed to analyze website. Please try again."

// Status is the lifecycle state of an analysis session.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusCompleted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Session owns the ephemeral state of one analysis run: target URL,
// progress, status, and the result or error message. It is created per
// user-initiated scan and discarded afterwards; nothing is persisted.
//
// A Session is not safe for concurrent use. At most one Start runs at a
// time; the caller enforces this (e.g. by disabling the trigger while a
// run is active).
type Session struct {
	scanner Scanner

	// OnProgress, when set, is notified after each accepted progress
	// update. The rendering layer hangs its indicator here.
	OnProgress ProgressFunc

	targetURL  string
	progress   int
	status     Status
	result     *model.AnalysisResult
	errMessage string
}

// NewSession returns an idle session backed by the given scanner.
func NewSession(scanner Scanner) *Session {
	return &Session{scanner: scanner}
}

// Reset clears progress, result, and error, returning the session to Idle.
func (s *Session) Reset() {
	s.progress = 0
	s.status = StatusIdle
	s.result = nil
	s.errMessage = ""
}

// SetTargetURL stores the target URL. Changing the URL resets the
// session regardless of its prior status.
func (s *Session) SetTargetURL(targetURL string) {
	if targetURL == s.targetURL {
		return
	}
	s.targetURL = targetURL
	s.Reset()
}

// Start runs the scan to completion. On success the session holds the
// result and reads Completed; on any scan error it reads Failed with
// the generic failure message and cleared progress. An invalid target
// URL is rejected before the session leaves Idle.
func (s *Session) Start(ctx context.Context) error {
	if err := ValidateTargetURL(s.targetURL); err != nil {
		return err
	}

	s.Reset()
	s.status = StatusRunning

	result, err := s.scanner.Scan(ctx, s.targetURL, s.observeProgress)
	if err != nil {
		s.progress = 0
		s.result = nil
		s.errMessage = FailureMessage
		s.status = StatusFailed
		return &errs.AppError{Kind: errs.ScanFailed, Message: FailureMessage, Cause: err}
	}

	s.result = result
	s.status = StatusCompleted
	return nil
}

// observeProgress accepts monotonically non-decreasing updates capped
// at 100 and forwards them to OnProgress.
func (s *Session) observeProgress(pct int) {
	if pct <= s.progress || pct > progressMax {
		return
	}
	s.progress = pct
	if s.OnProgress != nil {
		s.OnProgress(pct)
	}
}

// TargetURL returns the current target URL.
func (s *Session) TargetURL() string { return s.targetURL }

// Progress returns the last accepted progress percentage.
func (s *Session) Progress() int { return s.progress }

// Status returns the session's lifecycle state.
func (s *Session) Status() Status { return s.status }

// Result returns the analysis result, or nil unless Completed.
func (s *Session) Result() *model.AnalysisResult { return s.result }

// ErrorMessage returns the user-facing failure message, or "" unless Failed.
func (s *Session) ErrorMessage() string { return s.errMessage }
