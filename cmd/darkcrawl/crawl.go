package main

import (
	"fmt"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	fmt.Fprintf(deps.Stdout, "Crawling %s (max %d pages)...\n", c.Seed, c.MaxPages)

	report, err := deps.Controller.Run(deps.Ctx, c.Seed)
	if err != nil && report == nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %s\n", report)

	// Store errors mean entries were lost; the run itself still completed.
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	return nil
}
