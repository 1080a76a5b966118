// Package fs exports the crawl dataset to the filesystem in a layout
// consumable by downstream training pipelines: one directory per entry with
// the screenshot, evidence crops, and a JSON annotation file.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/darkcrawl"
)

// Ensure Exporter implements darkcrawl.EntryWriter at compile time.
var _ darkcrawl.EntryWriter = (*Exporter)(nil)

// Exporter writes entries with atomic update semantics. Entries are staged
// in a temporary directory, then moved atomically on Commit so a partial
// export is never visible under the final name.
type Exporter struct {
	baseDir string
	name    string
}

// NewExporter creates a new Exporter.
// baseDir is the parent directory, name is the output directory name.
// Entries are staged in baseDir/name.tmp and moved to baseDir/name on Commit.
func NewExporter(baseDir, name string) *Exporter {
	return &Exporter{
		baseDir: baseDir,
		name:    name,
	}
}

func (e *Exporter) tempDir() string {
	return filepath.Join(e.baseDir, e.name+".tmp")
}

func (e *Exporter) finalDir() string {
	return filepath.Join(e.baseDir, e.name)
}

// WriteEntry stages one entry: entry.json with the findings and provenance,
// screenshot.png, and crop-N.png per finding that carries evidence pixels.
func (e *Exporter) WriteEntry(ctx context.Context, entry *darkcrawl.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if entry.ID == "" {
		return darkcrawl.Errorf(darkcrawl.EINVALID, "entry ID required for export")
	}

	dir := filepath.Join(e.tempDir(), entry.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "entry.json"), data, 0644); err != nil {
		return err
	}

	if len(entry.Screenshot) > 0 {
		if err := os.WriteFile(filepath.Join(dir, "screenshot.png"), entry.Screenshot, 0644); err != nil {
			return err
		}
	}

	for i, f := range entry.Findings {
		if len(f.Crop) == 0 {
			continue
		}
		name := fmt.Sprintf("crop-%d.png", i)
		if err := os.WriteFile(filepath.Join(dir, name), f.Crop, 0644); err != nil {
			return err
		}
	}

	return nil
}

// Commit atomically replaces the final directory with the staged one.
func (e *Exporter) Commit() error {
	// Remove existing final directory if present
	if err := os.RemoveAll(e.finalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	if err := os.Rename(e.tempDir(), e.finalDir()); err != nil {
		return err
	}

	return nil
}

// Abort discards the staged export.
func (e *Exporter) Abort() error {
	return os.RemoveAll(e.tempDir())
}
