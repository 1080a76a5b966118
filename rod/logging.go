package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/darkcrawl"
)

// Ensure LoggingBrowser implements darkcrawl.Browser.
var _ darkcrawl.Browser = (*LoggingBrowser)(nil)

// LoggingBrowser wraps a Browser with debug logging for page opens,
// captures and link extraction.
type LoggingBrowser struct {
	next   darkcrawl.Browser
	logger *slog.Logger
}

// NewLoggingBrowser creates a new LoggingBrowser.
func NewLoggingBrowser(next darkcrawl.Browser, logger *slog.Logger) *LoggingBrowser {
	return &LoggingBrowser{next: next, logger: logger}
}

// Open logs the address being opened and delegates to the wrapped browser.
func (b *LoggingBrowser) Open(ctx context.Context, addr darkcrawl.Address) (sess darkcrawl.PageSession, err error) {
	defer func(begin time.Time) {
		b.logger.Info("open",
			"address", addr,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	sess, err = b.next.Open(ctx, addr)
	if err != nil {
		return nil, err
	}
	return &loggingSession{next: sess, addr: addr, logger: b.logger}, nil
}

// Close delegates to the wrapped browser.
func (b *LoggingBrowser) Close() error {
	return b.next.Close()
}

var _ darkcrawl.PageSession = (*loggingSession)(nil)

type loggingSession struct {
	next   darkcrawl.PageSession
	addr   darkcrawl.Address
	logger *slog.Logger
}

func (s *loggingSession) Capture(ctx context.Context) (page *darkcrawl.CapturedPage, err error) {
	defer func(begin time.Time) {
		bytes := 0
		if page != nil {
			bytes = len(page.Image)
		}
		s.logger.Info("capture",
			"address", s.addr,
			"bytes", bytes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Capture(ctx)
}

func (s *loggingSession) ExtractLinks(ctx context.Context) (links []string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("extract links",
			"address", s.addr,
			"count", len(links),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ExtractLinks(ctx)
}

func (s *loggingSession) Close() error {
	return s.next.Close()
}
