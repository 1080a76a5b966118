package main

import (
	"fmt"

	"github.com/fwojciec/darkcrawl"
	"github.com/fwojciec/darkcrawl/crawl"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	entry, err := deps.Entries.FindEntryByID(deps.Ctx, c.ID)
	if err != nil {
		if darkcrawl.ErrorCode(err) == darkcrawl.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: entry %q not found. Use 'darkcrawl list' to see entries.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", darkcrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Entry %s\n", entry.ID)
	fmt.Fprintf(deps.Stdout, "  Address:    %s\n", entry.Address)
	fmt.Fprintf(deps.Stdout, "  Captured:   %s\n", entry.CapturedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(deps.Stdout, "  Viewport:   %dx%d\n", entry.Viewport.Width, entry.Viewport.Height)
	fmt.Fprintf(deps.Stdout, "  Screenshot: %s\n", crawl.FormatBytes(len(entry.Screenshot)))
	fmt.Fprintf(deps.Stdout, "  Model:      %s (%d attempts)\n", entry.Provenance.Model, entry.Provenance.Attempts)
	if entry.Provenance.DiscoveredFrom != "" {
		fmt.Fprintf(deps.Stdout, "  From:       %s (order %d)\n", entry.Provenance.DiscoveredFrom, entry.Provenance.DiscoveryOrder)
	}
	if entry.Provenance.AnalysisFailed {
		fmt.Fprintln(deps.Stdout, "  Analysis:   FAILED")
	}
	if entry.Summary != "" {
		fmt.Fprintf(deps.Stdout, "  Summary:    %s\n", entry.Summary)
	}

	if len(entry.Findings) == 0 {
		fmt.Fprintln(deps.Stdout, "\nNo findings.")
		return nil
	}

	fmt.Fprintf(deps.Stdout, "\nFindings (%d, %d dropped by validation):\n", len(entry.Findings), entry.Provenance.DroppedFindings)
	for i, f := range entry.Findings {
		fmt.Fprintf(deps.Stdout, "\n  %d. [%s] %s\n", i+1, f.Type, f.Severity)
		fmt.Fprintf(deps.Stdout, "     %s\n", f.Description)
		if f.LocationHint != "" {
			fmt.Fprintf(deps.Stdout, "     Location: %s\n", f.LocationHint)
		}
		if f.EvidenceText != "" {
			fmt.Fprintf(deps.Stdout, "     Evidence: %q\n", f.EvidenceText)
		}
		if f.Confidence != nil {
			fmt.Fprintf(deps.Stdout, "     Confidence: %.2f\n", *f.Confidence)
		}
		if f.Box != nil {
			fmt.Fprintf(deps.Stdout, "     Box: %dx%d at (%d,%d)", f.Box.Width, f.Box.Height, f.Box.X, f.Box.Y)
			if len(f.Crop) > 0 {
				fmt.Fprintf(deps.Stdout, ", crop %s", crawl.FormatBytes(len(f.Crop)))
			}
			fmt.Fprintln(deps.Stdout)
		}
	}

	return nil
}
