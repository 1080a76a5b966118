package main

import (
	"fmt"

	"github.com/fwojciec/darkcrawl"
	"github.com/fwojciec/darkcrawl/fs"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	entries, err := deps.Entries.FindEntries(deps.Ctx, darkcrawl.EntryFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", darkcrawl.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No entries to export.")
		return nil
	}

	exporter := fs.NewExporter(c.Dir, c.Name)

	for _, listed := range entries {
		// Listing omits the heavy blobs; fetch the full entry for export.
		entry, err := deps.Entries.FindEntryByID(deps.Ctx, listed.ID)
		if err != nil {
			_ = exporter.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", darkcrawl.ErrorMessage(err))
			return err
		}
		if err := exporter.WriteEntry(deps.Ctx, entry); err != nil {
			_ = exporter.Abort()
			fmt.Fprintf(deps.Stderr, "error: %s\n", darkcrawl.ErrorMessage(err))
			return err
		}
	}

	if err := exporter.Commit(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Exported %d entries to %s/%s\n", len(entries), c.Dir, c.Name)
	return nil
}
