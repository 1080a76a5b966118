// Package crawl provides the discovery-and-extraction pipeline controller.
// It drives breadth-first, safety-bounded discovery of a single origin and
// hands each captured page to a concurrent analysis stage (inference,
// validation, evidence cropping, persistence).
package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/fwojciec/darkcrawl"
	"github.com/fwojciec/darkcrawl/bloom"
	"golang.org/x/sync/errgroup"
)

// Controller defaults.
const (
	// DefaultMaxPages bounds the number of pages visited in one run.
	DefaultMaxPages = 2000
	// DefaultCaptureTimeout is the hard per-page capture bound.
	DefaultCaptureTimeout = 45 * time.Second
	// DefaultAnalysisConcurrency bounds in-flight analyses.
	DefaultAnalysisConcurrency = 2

	// badCandidateExpected sizes the log-once filter for malformed links.
	badCandidateExpected = 10000
	// badCandidateFPRate is acceptable because a false positive only
	// suppresses a duplicate log line, never a crawl decision.
	badCandidateFPRate = 0.01
)

// Controller orchestrates one crawl run. Page visits are strictly
// sequential against the Browser; the analysis stage runs concurrently and
// never holds up the frontier loop. The run is only done once all
// outstanding analyses have resolved.
type Controller struct {
	Browser  darkcrawl.Browser
	Snapshot darkcrawl.SnapshotLinkExtractor // fallback when in-page extraction yields nothing
	Analyzer darkcrawl.Analyzer
	Cropper  darkcrawl.Cropper
	Entries  darkcrawl.EntryService
	Pacer    darkcrawl.Pacer
	Logger   *slog.Logger

	// Model is recorded in entry provenance.
	Model string

	// MaxPages caps total visited pages. Defaults to DefaultMaxPages.
	MaxPages int

	// CaptureTimeout bounds capture plus link extraction per page.
	// Defaults to DefaultCaptureTimeout.
	CaptureTimeout time.Duration

	// AnalysisConcurrency bounds in-flight analyses.
	// Defaults to DefaultAnalysisConcurrency.
	AnalysisConcurrency int
}

// Run crawls the site starting at seed and returns the completion report.
//
// Failures local to one address (capture, extraction, analysis, store) are
// contained and do not abort the run; they are counted in the report and,
// for store failures, joined into the returned error so no entry loss goes
// unreported. Only a malformed seed or run-level cancellation ends the run
// early, and cancellation still drains in-flight analyses before returning.
func (c *Controller) Run(ctx context.Context, seed string) (*Report, error) {
	seedAddr, err := darkcrawl.Normalize(seed)
	if err != nil {
		return nil, fmt.Errorf("invalid seed address: %w", err)
	}

	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	maxPages := c.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	captureTimeout := c.CaptureTimeout
	if captureTimeout <= 0 {
		captureTimeout = DefaultCaptureTimeout
	}
	concurrency := c.AnalysisConcurrency
	if concurrency <= 0 {
		concurrency = DefaultAnalysisConcurrency
	}

	frontier := NewFrontier()
	frontier.Push(seedAddr, "")

	report := &Report{}
	badCandidates := bloom.NewFilter(badCandidateExpected, badCandidateFPRate)

	var g errgroup.Group
	g.SetLimit(concurrency)

	var storeMu sync.Mutex
	var storeErrs []error

	for report.Visited < maxPages {
		// Cancellation transitions straight to draining; nothing further
		// is dequeued or enqueued.
		if ctx.Err() != nil {
			break
		}

		item, ok := frontier.Pop()
		if !ok {
			break
		}

		if err := c.Pacer.Wait(ctx); err != nil {
			break
		}

		report.add(func(r *Report) { r.Visited++ })

		page, links, err := c.visit(ctx, item.Address, captureTimeout)
		if err != nil {
			// The address stays in the visited set: no per-page retry
			// within a run.
			report.add(func(r *Report) { r.CaptureFailures++ })
			logger.Warn("capture failed", "address", item.Address, "err", err)
			continue
		}

		for _, raw := range links {
			addr, err := darkcrawl.Normalize(raw)
			if err != nil {
				if badCandidates.AddIfNew(raw) {
					logger.Warn("dropping malformed link", "link", raw, "err", err)
				}
				continue
			}
			if !darkcrawl.SameOrigin(addr, seedAddr) {
				continue
			}
			frontier.Push(addr, item.Address)
		}

		logger.Info("visited",
			"address", item.Address,
			"order", item.Order,
			"links", len(links),
			"pending", frontier.Len(),
		)

		g.Go(func() error {
			if err := c.analyze(ctx, item, page, report, logger); err != nil {
				storeMu.Lock()
				storeErrs = append(storeErrs, err)
				storeMu.Unlock()
			}
			return nil
		})
	}

	// Draining: the run is only done once in-flight analyses resolve.
	logger.Debug("draining analyses")
	_ = g.Wait()

	report.add(func(r *Report) { r.Discovered = frontier.Discovered() })
	logger.Info("run complete", "report", report.String())

	return report, errors.Join(storeErrs...)
}

// visit opens the page, captures it, and extracts links before navigating
// away. The whole visit shares one capture deadline.
func (c *Controller) visit(ctx context.Context, addr darkcrawl.Address, timeout time.Duration) (*darkcrawl.CapturedPage, []string, error) {
	visitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	sess, err := c.Browser.Open(visitCtx, addr)
	if err != nil {
		return nil, nil, err
	}
	defer sess.Close()

	page, err := sess.Capture(visitCtx)
	if err != nil {
		return nil, nil, err
	}

	// Partial discovery is acceptable, total silence is not: an extraction
	// error keeps whatever was collected, and the snapshot extractor backs
	// up an empty in-page result.
	links, err := sess.ExtractLinks(visitCtx)
	if err != nil {
		c.logExtractionPartial(addr, len(links), err)
	}
	if len(links) == 0 && c.Snapshot != nil {
		if fallback, err := c.Snapshot.ExtractLinks(page.Snapshot, addr); err == nil {
			links = fallback
		}
	}

	return page, links, nil
}

func (c *Controller) logExtractionPartial(addr darkcrawl.Address, collected int, err error) {
	if c.Logger != nil {
		c.Logger.Debug("partial link extraction", "address", addr, "collected", collected, "err", err)
	}
}

// analyze runs the analysis stage for one captured page: inference,
// validation, evidence cropping, and persistence. The returned error is a
// store error only; analysis failures are absorbed into the report and the
// entry's provenance.
func (c *Controller) analyze(ctx context.Context, item darkcrawl.FrontierItem, page *darkcrawl.CapturedPage, report *Report, logger *slog.Logger) error {
	entry := &darkcrawl.Entry{
		Address:    page.Address,
		CapturedAt: page.CapturedAt,
		Viewport:   page.Viewport,
		Screenshot: page.Image,
		Provenance: darkcrawl.Provenance{
			Model:          c.Model,
			SnapshotHash:   ComputeHash(page.Snapshot),
			DiscoveredFrom: item.DiscoveredFrom,
			DiscoveryOrder: item.Order,
		},
	}

	resp, err := c.Analyzer.Analyze(ctx, page)
	if err != nil {
		var afe *darkcrawl.AnalysisFailedError
		if !errors.As(err, &afe) {
			// Canceled or otherwise aborted mid-run; nothing to persist.
			report.add(func(r *Report) { r.AnalysisFailures++ })
			return nil
		}
		// Coverage stays auditable: the page still produces an entry,
		// with zero findings and the failure flagged.
		entry.Provenance.Attempts = afe.Attempts
		entry.Provenance.AnalysisFailed = true
		report.add(func(r *Report) { r.AnalysisFailures++ })
		logger.Warn("analysis failed", "address", page.Address, "attempts", afe.Attempts, "err", afe.Err)
		return c.store(ctx, entry, report, logger)
	}

	valid, dropped := darkcrawl.ValidateFindings(resp.Patterns)
	for i := range valid {
		if valid[i].Box == nil {
			continue
		}
		crop, err := c.Cropper.Crop(page.Image, *valid[i].Box)
		if err != nil {
			// Loss of an illustrative crop is not grounds for losing the
			// finding; the box stays.
			logger.Debug("crop failed", "address", page.Address, "box", *valid[i].Box, "err", err)
			continue
		}
		valid[i].Crop = crop
	}

	entry.Findings = valid
	entry.Summary = resp.Summary
	entry.Provenance.Attempts = resp.Attempts
	entry.Provenance.DroppedFindings = dropped

	report.add(func(r *Report) {
		r.Analyzed++
		r.RawFindings += len(resp.Patterns)
		r.ValidFindings += len(valid)
		r.DroppedFindings += dropped
	})

	return c.store(ctx, entry, report, logger)
}

func (c *Controller) store(ctx context.Context, entry *darkcrawl.Entry, report *Report, logger *slog.Logger) error {
	if err := c.Entries.CreateEntry(ctx, entry); err != nil {
		report.add(func(r *Report) { r.StoreErrors++ })
		logger.Error("entry lost", "address", entry.Address, "err", err)
		return fmt.Errorf("storing entry for %s: %w", entry.Address, err)
	}
	return nil
}
