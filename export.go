package darkcrawl

import "context"

// EntryWriter writes one entry to an external representation, such as a
// training-ready directory of images and annotations.
type EntryWriter interface {
	WriteEntry(ctx context.Context, entry *Entry) error
}
