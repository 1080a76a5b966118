package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/darkcrawl"
)

// Ensure LoggingEntryService implements darkcrawl.EntryService.
var _ darkcrawl.EntryService = (*LoggingEntryService)(nil)

// LoggingEntryService wraps an EntryService with logging for dataset writes.
type LoggingEntryService struct {
	next   darkcrawl.EntryService
	logger *slog.Logger
}

// NewLoggingEntryService creates a new LoggingEntryService.
func NewLoggingEntryService(next darkcrawl.EntryService, logger *slog.Logger) *LoggingEntryService {
	return &LoggingEntryService{next: next, logger: logger}
}

// CreateEntry delegates to the wrapped service and logs the operation.
func (s *LoggingEntryService) CreateEntry(ctx context.Context, entry *darkcrawl.Entry) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create entry",
			"address", entry.Address,
			"findings", len(entry.Findings),
			"analysisFailed", entry.Provenance.AnalysisFailed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateEntry(ctx, entry)
}

// FindEntryByID delegates to the wrapped service.
func (s *LoggingEntryService) FindEntryByID(ctx context.Context, id string) (*darkcrawl.Entry, error) {
	return s.next.FindEntryByID(ctx, id)
}

// FindEntries delegates to the wrapped service.
func (s *LoggingEntryService) FindEntries(ctx context.Context, filter darkcrawl.EntryFilter) ([]*darkcrawl.Entry, error) {
	return s.next.FindEntries(ctx, filter)
}

// DeleteEntry delegates to the wrapped service and logs the operation.
func (s *LoggingEntryService) DeleteEntry(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete entry",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteEntry(ctx, id)
}

// Stats delegates to the wrapped service.
func (s *LoggingEntryService) Stats(ctx context.Context) (*darkcrawl.DatasetStats, error) {
	return s.next.Stats(ctx)
}
