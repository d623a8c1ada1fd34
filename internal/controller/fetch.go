package controller

import (
	"context"

	"github.com/google/uuid"
)

// Fetch is one in-flight page request. It completes exactly once, after the
// resulting success or failure event has been dispatched.
type Fetch struct {
	id     uuid.UUID
	page   int
	done   chan struct{}
	err    error
	photos int
}

func newFetch(page int) *Fetch {
	return &Fetch{
		id:   uuid.New(),
		page: page,
		done: make(chan struct{}),
	}
}

func (f *Fetch) ID() uuid.UUID {
	return f.id
}

// Page is the page number read from the state when the fetch was issued.
func (f *Fetch) Page() int {
	return f.page
}

func (f *Fetch) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the fetch completes or ctx ends. Giving up on the wait does
// not stop the request.
func (f *Fetch) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err is the fetch error; only meaningful once Done is closed.
func (f *Fetch) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// Photos is the number of photos the page returned.
func (f *Fetch) Photos() int {
	select {
	case <-f.done:
		return f.photos
	default:
		return 0
	}
}

func (f *Fetch) complete(photos int, err error) {
	f.photos = photos
	f.err = err
	close(f.done)
}
