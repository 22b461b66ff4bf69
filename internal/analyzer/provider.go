package analyzer

import (
	"context"

	"github.com/accesslens/accesslens/internal/model"
	"github.com/accesslens/accesslens/internal/scan"
)

// Provider defines the contract for any analysis engine, simulated or
// real: stream progress, then return one finalized result.
type Provider interface {
	Scan(ctx context.Context, targetURL string, onProgress scan.ProgressFunc) (*model.AnalysisResult, error)
}
