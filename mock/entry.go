package mock

import (
	"context"

	"github.com/fwojciec/darkcrawl"
)

var _ darkcrawl.EntryService = (*EntryService)(nil)

// EntryService is a mock implementation of darkcrawl.EntryService.
type EntryService struct {
	CreateEntryFn   func(ctx context.Context, entry *darkcrawl.Entry) error
	FindEntryByIDFn func(ctx context.Context, id string) (*darkcrawl.Entry, error)
	FindEntriesFn   func(ctx context.Context, filter darkcrawl.EntryFilter) ([]*darkcrawl.Entry, error)
	DeleteEntryFn   func(ctx context.Context, id string) error
	StatsFn         func(ctx context.Context) (*darkcrawl.DatasetStats, error)
}

func (s *EntryService) CreateEntry(ctx context.Context, entry *darkcrawl.Entry) error {
	return s.CreateEntryFn(ctx, entry)
}

func (s *EntryService) FindEntryByID(ctx context.Context, id string) (*darkcrawl.Entry, error) {
	return s.FindEntryByIDFn(ctx, id)
}

func (s *EntryService) FindEntries(ctx context.Context, filter darkcrawl.EntryFilter) ([]*darkcrawl.Entry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *EntryService) DeleteEntry(ctx context.Context, id string) error {
	return s.DeleteEntryFn(ctx, id)
}

func (s *EntryService) Stats(ctx context.Context) (*darkcrawl.DatasetStats, error) {
	return s.StatsFn(ctx)
}
