// Package gemini implements the vision inference client using Google
// Gemini. It sends the page screenshot and a condensed document snapshot to
// the model and parses the structured findings response, retrying with
// backoff on transport or contract failures.
package gemini

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/darkcrawl"
	"google.golang.org/genai"
)

// Model is the inference model identifier, recorded in entry provenance.
const Model = "gemini-2.5-flash"

// DefaultAttemptTimeout bounds a single inference attempt, independent of
// the backoff between attempts.
const DefaultAttemptTimeout = 90 * time.Second

// DefaultRetryDelays returns the backoff delays between inference attempts:
// 2s then 4s, for 3 total attempts.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{2 * time.Second, 4 * time.Second}
}

// Ensure Analyzer implements darkcrawl.Analyzer at compile time.
var _ darkcrawl.Analyzer = (*Analyzer)(nil)

// Analyzer implements darkcrawl.Analyzer using Google Gemini.
type Analyzer struct {
	client         *genai.Client
	extractor      darkcrawl.Extractor
	converter      darkcrawl.Converter
	logger         *slog.Logger
	delays         []time.Duration
	attemptTimeout time.Duration
}

// AnalyzerOption configures an Analyzer.
type AnalyzerOption func(*Analyzer)

// WithRetryDelays sets the backoff delays between attempts. The total
// attempt budget is len(delays)+1. Useful for testing without real waits.
func WithRetryDelays(delays []time.Duration) AnalyzerOption {
	return func(a *Analyzer) {
		a.delays = delays
	}
}

// WithAttemptTimeout sets the per-attempt timeout.
// Defaults to DefaultAttemptTimeout.
func WithAttemptTimeout(d time.Duration) AnalyzerOption {
	return func(a *Analyzer) {
		a.attemptTimeout = d
	}
}

// WithExtractor sets a content extractor used to reduce the document
// snapshot to its main content before prompting.
func WithExtractor(e darkcrawl.Extractor) AnalyzerOption {
	return func(a *Analyzer) {
		a.extractor = e
	}
}

// WithConverter sets an HTML-to-Markdown converter used to condense the
// document snapshot before prompting.
func WithConverter(c darkcrawl.Converter) AnalyzerOption {
	return func(a *Analyzer) {
		a.converter = c
	}
}

// WithLogger sets a logger for retry attempts.
func WithLogger(logger *slog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(client *genai.Client, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		client:         client,
		delays:         DefaultRetryDelays(),
		attemptTimeout: DefaultAttemptTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze sends the captured page to the model and returns the parsed
// findings response. A response that fails to parse as the contract shape
// counts as a failed attempt, not as zero findings. Once the retry budget
// is exhausted, Analyze returns an *AnalysisFailedError; the crawl
// continues regardless.
func (a *Analyzer) Analyze(ctx context.Context, page *darkcrawl.CapturedPage) (*darkcrawl.FindingsResponse, error) {
	if page == nil || len(page.Image) == 0 {
		return nil, darkcrawl.Errorf(darkcrawl.EINVALID, "captured page with screenshot required")
	}

	prompt := BuildUserPrompt(page, a.documentContext(page.Snapshot))
	config := BuildConfig()

	generate := func(ctx context.Context) (*darkcrawl.FindingsResponse, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, a.attemptTimeout)
		defer cancel()

		result, err := a.client.Models.GenerateContent(attemptCtx, Model,
			[]*genai.Content{{
				Parts: []*genai.Part{
					{Text: prompt},
					{InlineData: &genai.Blob{MIMEType: "image/png", Data: page.Image}},
				},
			}},
			config,
		)
		if err != nil {
			return nil, err
		}
		if result == nil {
			return nil, darkcrawl.Errorf(darkcrawl.EINTERNAL, "gemini returned nil result")
		}
		return ParseResponse(result.Text())
	}

	return GenerateWithRetryDelays(ctx, page.Address, generate, a.logger, a.delays)
}

// documentContext condenses the snapshot for the prompt: main content
// extraction first, then markdown conversion. Each stage degrades
// gracefully to its input on failure.
func (a *Analyzer) documentContext(snapshot string) string {
	html := snapshot
	if a.extractor != nil {
		if res, err := a.extractor.Extract(snapshot); err == nil && res.ContentHTML != "" {
			html = res.ContentHTML
		}
	}
	if a.converter != nil {
		if md, err := a.converter.Convert(html); err == nil && md != "" {
			return md
		}
	}
	return html
}

// GenerateFunc is the signature for a single inference attempt.
type GenerateFunc func(ctx context.Context) (*darkcrawl.FindingsResponse, error)

// GenerateWithRetryDelays runs generate with up to len(delays)+1 attempts,
// sleeping delays[i] after the i-th failure. The returned response records
// how many attempts it took. After the final failure it returns an
// *AnalysisFailedError wrapping the last error.
//
// Exported with injectable delays so retry behavior is testable without
// real waits.
func GenerateWithRetryDelays(ctx context.Context, addr darkcrawl.Address, generate GenerateFunc, logger *slog.Logger, delays []time.Duration) (*darkcrawl.FindingsResponse, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := generate(ctx)
		if err == nil {
			resp.Attempts = attempt
			return resp, nil
		}
		lastErr = err

		if attempt == maxAttempts {
			break
		}

		if logger != nil {
			logger.Warn("inference attempt failed",
				"address", addr,
				"attempt", attempt,
				"err", err,
			)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt-1]):
		}
	}

	return nil, &darkcrawl.AnalysisFailedError{
		Address:  addr,
		Attempts: maxAttempts,
		Err:      lastErr,
	}
}
