package mock

import (
	"context"

	"github.com/fwojciec/darkcrawl"
)

var _ darkcrawl.Frontier = (*Frontier)(nil)

// Frontier is a mock implementation of darkcrawl.Frontier.
type Frontier struct {
	PushFn       func(addr darkcrawl.Address, from darkcrawl.Address) bool
	PopFn        func() (darkcrawl.FrontierItem, bool)
	LenFn        func() int
	SeenFn       func(addr darkcrawl.Address) bool
	DiscoveredFn func() int
}

func (f *Frontier) Push(addr darkcrawl.Address, from darkcrawl.Address) bool {
	return f.PushFn(addr, from)
}

func (f *Frontier) Pop() (darkcrawl.FrontierItem, bool) {
	return f.PopFn()
}

func (f *Frontier) Len() int {
	return f.LenFn()
}

func (f *Frontier) Seen(addr darkcrawl.Address) bool {
	return f.SeenFn(addr)
}

func (f *Frontier) Discovered() int {
	return f.DiscoveredFn()
}

var _ darkcrawl.Pacer = (*Pacer)(nil)

// Pacer is a mock implementation of darkcrawl.Pacer.
type Pacer struct {
	WaitFn func(ctx context.Context) error
}

func (p *Pacer) Wait(ctx context.Context) error {
	if p.WaitFn == nil {
		return nil
	}
	return p.WaitFn(ctx)
}
