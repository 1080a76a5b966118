package main

import (
	"fmt"

	"github.com/fwojciec/darkcrawl"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	stats, err := deps.Entries.Stats(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", darkcrawl.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Entries:           %d\n", stats.Entries)
	fmt.Fprintf(deps.Stdout, "Failed analyses:   %d\n", stats.FailedAnalyses)
	fmt.Fprintf(deps.Stdout, "Findings:          %d\n", stats.Findings)
	fmt.Fprintf(deps.Stdout, "Findings with box: %d\n", stats.FindingsWithBox)

	return nil
}
