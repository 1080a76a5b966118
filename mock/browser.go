// Package mock provides hand-written mock implementations of the domain
// interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/darkcrawl"
)

var _ darkcrawl.Browser = (*Browser)(nil)

// Browser is a mock implementation of darkcrawl.Browser.
type Browser struct {
	OpenFn  func(ctx context.Context, addr darkcrawl.Address) (darkcrawl.PageSession, error)
	CloseFn func() error
}

func (b *Browser) Open(ctx context.Context, addr darkcrawl.Address) (darkcrawl.PageSession, error) {
	return b.OpenFn(ctx, addr)
}

func (b *Browser) Close() error {
	if b.CloseFn == nil {
		return nil
	}
	return b.CloseFn()
}

var _ darkcrawl.PageSession = (*PageSession)(nil)

// PageSession is a mock implementation of darkcrawl.PageSession.
type PageSession struct {
	CaptureFn      func(ctx context.Context) (*darkcrawl.CapturedPage, error)
	ExtractLinksFn func(ctx context.Context) ([]string, error)
	CloseFn        func() error
}

func (s *PageSession) Capture(ctx context.Context) (*darkcrawl.CapturedPage, error) {
	return s.CaptureFn(ctx)
}

func (s *PageSession) ExtractLinks(ctx context.Context) ([]string, error) {
	return s.ExtractLinksFn(ctx)
}

func (s *PageSession) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
