package darkcrawl

import (
	"context"
	"time"
)

// Provenance records how an Entry was produced. It keeps crawl coverage
// auditable even when analysis fails.
type Provenance struct {
	// Model is the identifier of the inference model used.
	Model string `json:"model"`

	// SnapshotHash is the content hash of the document snapshot.
	SnapshotHash string `json:"snapshotHash"`

	// DiscoveredFrom is the Address of the page that first yielded this one.
	// Empty for the seed.
	DiscoveredFrom Address `json:"discoveredFrom,omitempty"`

	// DiscoveryOrder is the position in which the address was discovered.
	DiscoveryOrder int `json:"discoveryOrder"`

	// Attempts is the number of inference attempts made.
	Attempts int `json:"attempts"`

	// AnalysisFailed marks an Entry whose inference exhausted its retry
	// budget. Such entries carry zero findings.
	AnalysisFailed bool `json:"analysisFailed,omitempty"`

	// DroppedFindings is the number of candidates removed by validation.
	DroppedFindings int `json:"droppedFindings,omitempty"`
}

// Entry is the persisted record of one analyzed page visit: the validated
// findings, the summary aggregate, and provenance metadata. An Entry is
// created exactly once per successfully visited page and is immutable after
// creation; re-analysis produces a new Entry.
type Entry struct {
	ID         string     `json:"id"`
	Address    Address    `json:"address"`
	CapturedAt time.Time  `json:"capturedAt"`
	Viewport   Viewport   `json:"viewport"`
	Screenshot []byte     `json:"-"` // PNG page screenshot
	Findings   []Finding  `json:"findings"`
	Summary    string     `json:"summary,omitempty"`
	Provenance Provenance `json:"provenance"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.Address == "" {
		return Errorf(EINVALID, "entry address required")
	}
	for _, f := range e.Findings {
		if f.Box != nil && (f.Box.Width <= 0 || f.Box.Height <= 0) {
			return Errorf(EINVALID, "entry finding has degenerate bounding box")
		}
	}
	return nil
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	ID      *string `json:"id"`
	Address *string `json:"address"`

	// AnalysisFailed, when set, selects entries by their failure flag.
	AnalysisFailed *bool `json:"analysisFailed"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DatasetStats aggregates the stored dataset.
type DatasetStats struct {
	Entries         int `json:"entries"`
	FailedAnalyses  int `json:"failedAnalyses"`
	Findings        int `json:"findings"`
	FindingsWithBox int `json:"findingsWithBox"`
}

// EntryService manages the persisted dataset of entries. Writes are atomic
// and independent: no partial Entry is ever visible.
type EntryService interface {
	// CreateEntry persists a new entry with its findings. Idempotent on
	// entry ID: a duplicate ID returns ECONFLICT and leaves the stored
	// entry untouched.
	CreateEntry(ctx context.Context, entry *Entry) error

	// FindEntryByID retrieves an entry with its findings and crops.
	// Returns ENOTFOUND if the entry does not exist.
	FindEntryByID(ctx context.Context, id string) (*Entry, error)

	// FindEntries retrieves entries matching the filter, newest first.
	// Findings are included; screenshot and crop bytes are omitted.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)

	// DeleteEntry permanently removes an entry and its findings.
	// Returns ENOTFOUND if the entry does not exist.
	DeleteEntry(ctx context.Context, id string) error

	// Stats aggregates the stored dataset.
	Stats(ctx context.Context) (*DatasetStats, error)
}
