package crawl

import (
	"sync"

	"github.com/fwojciec/darkcrawl"
)

// Compile-time interface verification.
var _ darkcrawl.Frontier = (*Frontier)(nil)

// Frontier is an in-memory crawl frontier with exact deduplication and FIFO
// ordering. FIFO dequeue guarantees breadth-first visitation: shallower
// pages discovered earlier are visited before deeper ones discovered later.
//
// Deduplication is exact (a map, not a probabilistic filter) because the
// run invariants demand it: no address is ever dequeued twice, and pending
// plus dequeued always equals everything ever discovered.
//
// It is safe for concurrent use, though a single controller owns it for the
// lifetime of one run.
type Frontier struct {
	mu    sync.Mutex
	seen  map[darkcrawl.Address]struct{}
	queue []darkcrawl.FrontierItem
	head  int
	order int
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{
		seen: make(map[darkcrawl.Address]struct{}),
	}
}

// Push adds an address discovered on the from page.
// Returns false if the address has already been seen.
// The address must already be normalized; the frontier does not canonicalize.
func (f *Frontier) Push(addr darkcrawl.Address, from darkcrawl.Address) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.seen[addr]; ok {
		return false
	}
	f.seen[addr] = struct{}{}
	f.queue = append(f.queue, darkcrawl.FrontierItem{
		Address:        addr,
		DiscoveredFrom: from,
		Order:          f.order,
	})
	f.order++
	return true
}

// Pop returns the next item in FIFO order.
// The bool result is false if the pending queue is empty.
func (f *Frontier) Pop() (darkcrawl.FrontierItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.head >= len(f.queue) {
		return darkcrawl.FrontierItem{}, false
	}
	item := f.queue[f.head]
	f.queue[f.head] = darkcrawl.FrontierItem{} // release for GC
	f.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if f.head > 256 && f.head*2 >= len(f.queue) {
		f.queue = append([]darkcrawl.FrontierItem(nil), f.queue[f.head:]...)
		f.head = 0
	}
	return item, true
}

// Len returns the number of pending items.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue) - f.head
}

// Seen returns true if the address has been queued or dequeued.
func (f *Frontier) Seen(addr darkcrawl.Address) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.seen[addr]
	return ok
}

// Discovered returns the total number of addresses ever seen.
func (f *Frontier) Discovered() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.order
}
