package main_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/fwojciec/darkcrawl"
	main "github.com/fwojciec/darkcrawl/cmd/darkcrawl"
	"github.com/fwojciec/darkcrawl/crawl"
	"github.com/fwojciec/darkcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("runs the controller and prints the report", func(t *testing.T) {
		t.Parallel()

		browser := &mock.Browser{
			OpenFn: func(ctx context.Context, addr darkcrawl.Address) (darkcrawl.PageSession, error) {
				return &mock.PageSession{
					CaptureFn: func(ctx context.Context) (*darkcrawl.CapturedPage, error) {
						return &darkcrawl.CapturedPage{
							Address: addr,
							Image:   []byte("png"),
						}, nil
					},
					ExtractLinksFn: func(ctx context.Context) ([]string, error) {
						return nil, nil
					},
				}, nil
			},
		}

		var mu sync.Mutex
		var stored []*darkcrawl.Entry
		entries := &mock.EntryService{
			CreateEntryFn: func(ctx context.Context, entry *darkcrawl.Entry) error {
				mu.Lock()
				defer mu.Unlock()
				stored = append(stored, entry)
				return nil
			},
		}

		controller := &crawl.Controller{
			Browser: browser,
			Analyzer: &mock.Analyzer{
				AnalyzeFn: func(ctx context.Context, page *darkcrawl.CapturedPage) (*darkcrawl.FindingsResponse, error) {
					return &darkcrawl.FindingsResponse{Attempts: 1}, nil
				},
			},
			Cropper: &mock.Cropper{},
			Entries: entries,
			Pacer:   crawl.NewPacer(0),
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     stdout,
			Stderr:     &bytes.Buffer{},
			Entries:    entries,
			Controller: controller,
		}

		cmd := &main.CrawlCmd{Seed: "https://example.com", MaxPages: 5}
		require.NoError(t, cmd.Run(deps))

		assert.Contains(t, stdout.String(), "Crawling https://example.com")
		assert.Contains(t, stdout.String(), "visited 1")
		require.Len(t, stored, 1)
		assert.Equal(t, darkcrawl.Address("https://example.com"), stored[0].Address)
	})

	t.Run("reports malformed seed", func(t *testing.T) {
		t.Parallel()

		controller := &crawl.Controller{
			Pacer: crawl.NewPacer(0),
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:        context.Background(),
			Stdout:     &bytes.Buffer{},
			Stderr:     stderr,
			Controller: controller,
		}

		cmd := &main.CrawlCmd{Seed: "not-a-url"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "error:")
	})
}
