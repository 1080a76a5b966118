package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/darkcrawl"
	"github.com/fwojciec/darkcrawl/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }

func testEntry(addr string) *darkcrawl.Entry {
	return &darkcrawl.Entry{
		Address:    darkcrawl.Address(addr),
		CapturedAt: time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		Viewport:   darkcrawl.Viewport{Width: 1280, Height: 2400},
		Screenshot: []byte("png-bytes"),
		Summary:    "one urgency pattern",
		Findings: []darkcrawl.Finding{
			{
				Type:         darkcrawl.PatternUrgency,
				Description:  "countdown timer at checkout",
				Severity:     darkcrawl.SeverityHigh,
				LocationHint: "top banner",
				EvidenceText: "Offer ends in 04:59!",
				Confidence:   float64Ptr(0.92),
				Box:          &darkcrawl.BoundingBox{X: 10, Y: 20, Width: 100, Height: 50},
				Crop:         []byte("crop-bytes"),
			},
			{
				Type:        darkcrawl.PatternConfirmshaming,
				Description: "guilt-framed decline link",
				Severity:    darkcrawl.SeverityMedium,
			},
		},
		Provenance: darkcrawl.Provenance{
			Model:          "gemini-2.5-flash",
			SnapshotHash:   "cafebabe",
			DiscoveredFrom: "https://example.com",
			DiscoveryOrder: 3,
			Attempts:       1,
		},
	}
}

func TestEntryService_CreateEntry(t *testing.T) {
	t.Parallel()

	t.Run("assigns ID and persists findings in order", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewEntryService(MustOpenDB(t))
		entry := testEntry("https://example.com/cart")

		require.NoError(t, s.CreateEntry(context.Background(), entry))
		require.NotEmpty(t, entry.ID)

		got, err := s.FindEntryByID(context.Background(), entry.ID)
		require.NoError(t, err)
		assert.Equal(t, entry.Address, got.Address)
		assert.Equal(t, entry.CapturedAt, got.CapturedAt)
		assert.Equal(t, entry.Viewport, got.Viewport)
		assert.Equal(t, []byte("png-bytes"), got.Screenshot)
		assert.Equal(t, entry.Provenance, got.Provenance)

		require.Len(t, got.Findings, 2)
		assert.Equal(t, darkcrawl.PatternUrgency, got.Findings[0].Type)
		assert.Equal(t, &darkcrawl.BoundingBox{X: 10, Y: 20, Width: 100, Height: 50}, got.Findings[0].Box)
		assert.Equal(t, []byte("crop-bytes"), got.Findings[0].Crop)
		require.NotNil(t, got.Findings[0].Confidence)
		assert.InDelta(t, 0.92, *got.Findings[0].Confidence, 1e-9)
		assert.Equal(t, darkcrawl.PatternConfirmshaming, got.Findings[1].Type)
		assert.Nil(t, got.Findings[1].Box)
		assert.Nil(t, got.Findings[1].Confidence)
	})

	t.Run("duplicate ID returns conflict and keeps stored entry", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewEntryService(MustOpenDB(t))
		entry := testEntry("https://example.com/cart")
		require.NoError(t, s.CreateEntry(context.Background(), entry))

		dup := testEntry("https://example.com/other")
		dup.ID = entry.ID
		err := s.CreateEntry(context.Background(), dup)
		require.Error(t, err)
		assert.Equal(t, darkcrawl.ECONFLICT, darkcrawl.ErrorCode(err))

		got, err := s.FindEntryByID(context.Background(), entry.ID)
		require.NoError(t, err)
		assert.Equal(t, darkcrawl.Address("https://example.com/cart"), got.Address)
	})

	t.Run("rejects entry without address", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewEntryService(MustOpenDB(t))
		err := s.CreateEntry(context.Background(), &darkcrawl.Entry{})
		require.Error(t, err)
		assert.Equal(t, darkcrawl.EINVALID, darkcrawl.ErrorCode(err))
	})

	t.Run("persists failed analysis entries with zero findings", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewEntryService(MustOpenDB(t))
		entry := testEntry("https://example.com/broken")
		entry.Findings = nil
		entry.Provenance.Attempts = 3
		entry.Provenance.AnalysisFailed = true
		require.NoError(t, s.CreateEntry(context.Background(), entry))

		got, err := s.FindEntryByID(context.Background(), entry.ID)
		require.NoError(t, err)
		assert.True(t, got.Provenance.AnalysisFailed)
		assert.Equal(t, 3, got.Provenance.Attempts)
		assert.Empty(t, got.Findings)
	})
}

func TestEntryService_FindEntryByID_not_found(t *testing.T) {
	t.Parallel()

	s := sqlite.NewEntryService(MustOpenDB(t))
	_, err := s.FindEntryByID(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, darkcrawl.ENOTFOUND, darkcrawl.ErrorCode(err))
}

func TestEntryService_FindEntries(t *testing.T) {
	t.Parallel()

	t.Run("newest first, findings without crop bytes", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewEntryService(MustOpenDB(t))

		older := testEntry("https://example.com/a")
		older.CapturedAt = time.Date(2026, 8, 19, 12, 0, 0, 0, time.UTC)
		require.NoError(t, s.CreateEntry(context.Background(), older))

		newer := testEntry("https://example.com/b")
		newer.CapturedAt = time.Date(2026, 8, 21, 12, 0, 0, 0, time.UTC)
		require.NoError(t, s.CreateEntry(context.Background(), newer))

		got, err := s.FindEntries(context.Background(), darkcrawl.EntryFilter{})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, darkcrawl.Address("https://example.com/b"), got[0].Address)
		assert.Equal(t, darkcrawl.Address("https://example.com/a"), got[1].Address)

		// Listing omits heavy blobs but keeps finding metadata.
		assert.Nil(t, got[0].Screenshot)
		require.Len(t, got[0].Findings, 2)
		assert.Nil(t, got[0].Findings[0].Crop)
		assert.NotNil(t, got[0].Findings[0].Box)
	})

	t.Run("filters by address", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewEntryService(MustOpenDB(t))
		require.NoError(t, s.CreateEntry(context.Background(), testEntry("https://example.com/a")))
		require.NoError(t, s.CreateEntry(context.Background(), testEntry("https://example.com/b")))

		addr := "https://example.com/a"
		got, err := s.FindEntries(context.Background(), darkcrawl.EntryFilter{Address: &addr})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, darkcrawl.Address(addr), got[0].Address)
	})

	t.Run("filters by analysis failure flag", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewEntryService(MustOpenDB(t))
		ok := testEntry("https://example.com/ok")
		require.NoError(t, s.CreateEntry(context.Background(), ok))

		failed := testEntry("https://example.com/failed")
		failed.Findings = nil
		failed.Provenance.AnalysisFailed = true
		require.NoError(t, s.CreateEntry(context.Background(), failed))

		failedOnly := true
		got, err := s.FindEntries(context.Background(), darkcrawl.EntryFilter{AnalysisFailed: &failedOnly})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, darkcrawl.Address("https://example.com/failed"), got[0].Address)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewEntryService(MustOpenDB(t))
		for i := 0; i < 5; i++ {
			e := testEntry("https://example.com/p")
			e.CapturedAt = time.Date(2026, 8, 10+i, 12, 0, 0, 0, time.UTC)
			require.NoError(t, s.CreateEntry(context.Background(), e))
		}

		got, err := s.FindEntries(context.Background(), darkcrawl.EntryFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, time.Date(2026, 8, 13, 12, 0, 0, 0, time.UTC), got[0].CapturedAt)
	})
}

func TestEntryService_DeleteEntry(t *testing.T) {
	t.Parallel()

	t.Run("removes entry and cascades findings", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewEntryService(MustOpenDB(t))
		entry := testEntry("https://example.com/cart")
		require.NoError(t, s.CreateEntry(context.Background(), entry))

		require.NoError(t, s.DeleteEntry(context.Background(), entry.ID))

		_, err := s.FindEntryByID(context.Background(), entry.ID)
		assert.Equal(t, darkcrawl.ENOTFOUND, darkcrawl.ErrorCode(err))

		stats, err := s.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, stats.Findings)
	})

	t.Run("missing entry returns not found", func(t *testing.T) {
		t.Parallel()

		s := sqlite.NewEntryService(MustOpenDB(t))
		err := s.DeleteEntry(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, darkcrawl.ENOTFOUND, darkcrawl.ErrorCode(err))
	})
}

func TestEntryService_Stats(t *testing.T) {
	t.Parallel()

	s := sqlite.NewEntryService(MustOpenDB(t))

	entry := testEntry("https://example.com/cart")
	require.NoError(t, s.CreateEntry(context.Background(), entry))

	failed := testEntry("https://example.com/broken")
	failed.Findings = nil
	failed.Provenance.AnalysisFailed = true
	require.NoError(t, s.CreateEntry(context.Background(), failed))

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, 1, stats.FailedAnalyses)
	assert.Equal(t, 2, stats.Findings)
	assert.Equal(t, 1, stats.FindingsWithBox)
}
