package darkcrawl

import "context"

// FrontierItem is one discovered Address queued for visiting. Created when
// an Address is first seen; immutable; never re-queued within a run.
type FrontierItem struct {
	// Address is the normalized page identifier.
	Address Address

	// DiscoveredFrom is the Address of the page that first yielded this
	// one. Empty for the seed.
	DiscoveredFrom Address

	// Order is the position in which the address was discovered,
	// starting at 0 for the seed.
	Order int
}

// Frontier manages the crawl queue with exact deduplication. It owns the
// visited and pending sets for the lifetime of one crawl run; no other
// component mutates them.
type Frontier interface {
	// Push adds an address discovered on the from page.
	// Returns false if the address has already been seen.
	Push(addr Address, from Address) bool

	// Pop returns the next item in FIFO order, guaranteeing breadth-first
	// visitation. Returns false if the pending queue is empty.
	Pop() (FrontierItem, bool)

	// Len returns the number of pending items.
	Len() int

	// Seen returns true if the address has been queued or visited.
	Seen(addr Address) bool

	// Discovered returns the total number of addresses ever seen,
	// pending plus dequeued.
	Discovered() int
}

// Pacer enforces the politeness delay between opening consecutive pages.
type Pacer interface {
	// Wait blocks until the inter-page delay has elapsed since the
	// previous page was opened. Returns an error if the context is
	// canceled first.
	Wait(ctx context.Context) error
}
