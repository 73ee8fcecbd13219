// Package abi is the opaque-handle boundary between the literal WASM export
// surface (cmd/mpdparser-wasm) and the mpd package: it hands the host a
// uint32 handle instead of a Go pointer, exactly the way the teacher's
// config package hands out a single guarded process-wide handle rather than
// letting callers reach into its internals directly.
package abi

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dashstream/mpdwasm/mpd"
)

// ErrUnknownHandle reports a handle that was never issued or has already
// been freed, as opposed to a parse failure on a live processor.
var ErrUnknownHandle = errors.New("abi: unknown or freed processor handle")

// Registry owns every live Processor, keyed by an opaque handle the host
// holds onto between calls. mpd.Processor already refuses re-entrant Parse
// calls on itself; Registry adds the handle-lifecycle half of that
// contract: a freed or unknown handle is a hard error, not a silent no-op.
type Registry struct {
	mu      sync.Mutex
	next    uint32
	entries map[uint32]*mpd.Processor
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[uint32]*mpd.Processor)}
}

// Create registers a new Processor reading from src and reporting to sink,
// returning the handle the host should use for subsequent Parse/Free calls.
func (r *Registry) Create(src io.Reader, sink mpd.Sink) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	handle := r.next
	r.entries[handle] = mpd.NewProcessor(src, sink)
	return handle
}

// Parse resumes parsing on the Processor behind handle.
func (r *Registry) Parse(handle uint32) error {
	p, err := r.lookup(handle)
	if err != nil {
		return err
	}
	return p.Parse()
}

// Free releases the Processor behind handle. Parsing again with a freed
// handle returns an error rather than panicking, since by that point the
// mistake is entirely on the host side of the ABI and there is no in-progress
// borrow to protect.
func (r *Registry) Free(handle uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, handle)
}

func (r *Registry) lookup(handle uint32) (*mpd.Processor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.entries[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	return p, nil
}
