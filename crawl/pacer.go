package crawl

import (
	"context"
	"time"

	"github.com/fwojciec/darkcrawl"
	"golang.org/x/time/rate"
)

var _ darkcrawl.Pacer = (*Pacer)(nil)

// DefaultPageDelay is the default politeness interval between opening
// consecutive pages.
const DefaultPageDelay = 2 * time.Second

// Pacer enforces the politeness delay between page opens using a token
// bucket with a burst of 1: the first page opens immediately, every
// subsequent page waits out the interval.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer with the given inter-page delay.
// A non-positive delay disables pacing.
func NewPacer(delay time.Duration) *Pacer {
	if delay <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(delay), 1)}
}

// Wait blocks until the delay since the previous page open has elapsed.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
