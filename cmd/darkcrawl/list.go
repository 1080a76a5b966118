package main

import (
	"fmt"

	"github.com/fwojciec/darkcrawl"
	"github.com/fwojciec/darkcrawl/crawl"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := darkcrawl.EntryFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.Address != "" {
		filter.Address = &c.Address
	}
	if c.Failed {
		failed := true
		filter.AnalysisFailed = &failed
	}

	entries, err := deps.Entries.FindEntries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", darkcrawl.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No entries found. Use 'darkcrawl crawl' to build the dataset.")
		return nil
	}

	for _, e := range entries {
		status := fmt.Sprintf("%d findings", len(e.Findings))
		if e.Provenance.AnalysisFailed {
			status = "analysis failed"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			e.ID,
			e.CapturedAt.Format("2006-01-02 15:04"),
			crawl.TruncateURL(string(e.Address), 60),
			status,
		)
	}

	return nil
}
