package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/darkcrawl"
	main "github.com/fwojciec/darkcrawl/cmd/darkcrawl"
	"github.com/fwojciec/darkcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes entry with force flag", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		entries := &mock.EntryService{
			DeleteEntryFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Entries: entries,
		}

		cmd := &main.DeleteCmd{ID: "entry-123", Force: true}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "entry-123", deletedID)
		assert.Contains(t, stdout.String(), "Deleted")
	})

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		deleteCalled := false
		entries := &mock.EntryService{
			DeleteEntryFn: func(_ context.Context, id string) error {
				deleteCalled = true
				return nil
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Entries: entries,
		}

		cmd := &main.DeleteCmd{ID: "entry-123"}
		require.Error(t, cmd.Run(deps))
		assert.False(t, deleteCalled)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("returns error when entry not found", func(t *testing.T) {
		t.Parallel()

		entries := &mock.EntryService{
			DeleteEntryFn: func(_ context.Context, id string) error {
				return darkcrawl.Errorf(darkcrawl.ENOTFOUND, "entry not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Entries: entries,
		}

		cmd := &main.DeleteCmd{ID: "missing", Force: true}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "not found")
	})
}

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints dataset statistics", func(t *testing.T) {
		t.Parallel()

		entries := &mock.EntryService{
			StatsFn: func(_ context.Context) (*darkcrawl.DatasetStats, error) {
				return &darkcrawl.DatasetStats{
					Entries:         42,
					FailedAnalyses:  3,
					Findings:        107,
					FindingsWithBox: 61,
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Entries: entries,
		}

		cmd := &main.StatsCmd{}
		require.NoError(t, cmd.Run(deps))

		output := stdout.String()
		assert.Contains(t, output, "42")
		assert.Contains(t, output, "3")
		assert.Contains(t, output, "107")
		assert.Contains(t, output, "61")
	})

	t.Run("returns error when stats fail", func(t *testing.T) {
		t.Parallel()

		entries := &mock.EntryService{
			StatsFn: func(_ context.Context) (*darkcrawl.DatasetStats, error) {
				return nil, darkcrawl.Errorf(darkcrawl.EINTERNAL, "database error")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  &bytes.Buffer{},
			Stderr:  stderr,
			Entries: entries,
		}

		cmd := &main.StatsCmd{}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "error:")
	})
}
