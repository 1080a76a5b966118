// Package slog provides logging decorators for darkcrawl services.
package slog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fwojciec/darkcrawl"
)

// Ensure LoggingAnalyzer implements darkcrawl.Analyzer.
var _ darkcrawl.Analyzer = (*LoggingAnalyzer)(nil)

// LoggingAnalyzer wraps an Analyzer with logging for inference calls.
type LoggingAnalyzer struct {
	next   darkcrawl.Analyzer
	logger *slog.Logger
}

// NewLoggingAnalyzer creates a new LoggingAnalyzer.
func NewLoggingAnalyzer(next darkcrawl.Analyzer, logger *slog.Logger) *LoggingAnalyzer {
	return &LoggingAnalyzer{next: next, logger: logger}
}

// Analyze delegates to the wrapped analyzer and logs the operation. An
// exhausted retry budget logs at warn level since the crawl continues.
func (a *LoggingAnalyzer) Analyze(ctx context.Context, page *darkcrawl.CapturedPage) (resp *darkcrawl.FindingsResponse, err error) {
	defer func(begin time.Time) {
		var failed *darkcrawl.AnalysisFailedError
		switch {
		case errors.As(err, &failed):
			a.logger.Warn("analysis failed",
				"address", failed.Address,
				"attempts", failed.Attempts,
				"duration", time.Since(begin),
				"err", failed.Err,
			)
		case err != nil:
			a.logger.Error("analysis",
				"address", page.Address,
				"duration", time.Since(begin),
				"err", err,
			)
		default:
			a.logger.Info("analysis",
				"address", page.Address,
				"candidates", len(resp.Patterns),
				"attempts", resp.Attempts,
				"duration", time.Since(begin),
			)
		}
	}(time.Now())
	return a.next.Analyze(ctx, page)
}
