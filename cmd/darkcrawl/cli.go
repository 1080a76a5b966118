package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/darkcrawl"
	"github.com/fwojciec/darkcrawl/crawl"
	"github.com/fwojciec/darkcrawl/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	DB         *sqlite.DB
	Entries    darkcrawl.EntryService
	Controller *crawl.Controller
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl  CrawlCmd  `cmd:"" help:"Crawl a site and build the findings dataset"`
	List   ListCmd   `cmd:"" help:"List dataset entries"`
	Show   ShowCmd   `cmd:"" help:"Show one entry with its findings"`
	Stats  StatsCmd  `cmd:"" help:"Show dataset statistics"`
	Delete DeleteCmd `cmd:"" help:"Delete an entry"`
	Export ExportCmd `cmd:"" help:"Export the dataset to a directory"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seed             string        `arg:"" help:"Seed URL defining the crawl origin"`
	MaxPages         int           `default:"2000" help:"Maximum pages to visit"`
	Delay            time.Duration `default:"2s" help:"Minimum delay between page visits"`
	Concurrency      int           `short:"c" default:"2" help:"Concurrent analysis limit"`
	ScrollIterations int           `default:"8" help:"Scroll passes per page during link discovery"`
	DiscoverOnly     bool          `help:"Visit and store pages without running inference"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Address string `help:"Filter by exact address"`
	Failed  bool   `help:"Show only entries whose analysis failed"`
	Limit   int    `default:"50" help:"Maximum entries to list"`
	Offset  int    `help:"Entries to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Entry ID"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Entry ID"`
	Force bool   `help:"Confirm deletion"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Dir  string `arg:"" help:"Parent directory for the export"`
	Name string `default:"dataset" help:"Export directory name"`
}
