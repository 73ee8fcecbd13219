//go:build wasip1

// Command mpdparser-wasm is the literal ABI entry point: it exports
// create_processor/parse/free_processor to the host and imports
// readNext/onTagOpen/onTagClose/onAttribute/onCustomEvent from it, using
// Go's //go:wasmexport and //go:wasmimport directives rather than cgo or a
// hand-rolled FFI shim -- the idiomatic way to meet a literal C-calling-
// convention ABI from a GOOS=wasip1 build.
package main

import (
	"errors"
	"io"
	"unsafe"

	"github.com/dashstream/mpdwasm/abi"
	"github.com/dashstream/mpdwasm/mpd"
)

var registry = abi.NewRegistry()

//go:wasmimport env readNext
func importReadNext(ptr unsafe.Pointer, length uint32) int32

//go:wasmimport env onTagOpen
func importOnTagOpen(kind uint32)

//go:wasmimport env onTagClose
func importOnTagClose(kind uint32)

//go:wasmimport env onAttribute
func importOnAttribute(kind uint32, ptr unsafe.Pointer, length uint32)

//go:wasmimport env onCustomEvent
func importOnCustomEvent(kind uint32, ptr unsafe.Pointer, length uint32)

// hostReader adapts the imported readNext function to io.Reader. readNext
// returns 0 when the host's currently buffered input is exhausted, which we
// must surface as io.EOF: see mpd.Processor's doc comment for why that's
// safe here even though the document as a whole may not be finished.
type hostReader struct{}

func (hostReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := importReadNext(unsafe.Pointer(&p[0]), uint32(len(p)))
	if n < 0 || int(n) > len(p) {
		return 0, errReadNext
	}
	if n == 0 {
		return 0, io.EOF
	}
	return int(n), nil
}

// errReadNext distinguishes a host-side readNext failure (a negative return,
// or more bytes claimed than the buffer holds) from the normal "no more data
// right now" suspend signal (a return of 0).
var errReadNext = errors.New("host readNext reported an error")

// hostSink adapts mpd.Sink calls to the four imported callbacks.
type hostSink struct{}

func (hostSink) TagOpen(kind mpd.TagKind)  { importOnTagOpen(uint32(kind)) }
func (hostSink) TagClose(kind mpd.TagKind) { importOnTagClose(uint32(kind)) }

func (hostSink) Attribute(kind mpd.AttrKind, payload []byte) {
	if len(payload) == 0 {
		importOnAttribute(uint32(kind), nil, 0)
		return
	}
	importOnAttribute(uint32(kind), unsafe.Pointer(&payload[0]), uint32(len(payload)))
}

func (hostSink) CustomEvent(kind mpd.CustomEventKind, payload []byte) {
	if len(payload) == 0 {
		importOnCustomEvent(uint32(kind), nil, 0)
		return
	}
	importOnCustomEvent(uint32(kind), unsafe.Pointer(&payload[0]), uint32(len(payload)))
}

// create_processor allocates a new parser bound to the module's single
// readNext import, returning an opaque handle the host uses for subsequent
// parse/free_processor calls.
//
//go:wasmexport create_processor
func createProcessor() uint32 {
	return registry.Create(hostReader{}, hostSink{})
}

// parse resumes parsing on the processor behind handle, running until the
// host's currently buffered input is exhausted. Returns 0 on success, -1 if
// handle is unknown or already freed, -2 on a read failure from the host --
// the processor behind the handle stays live and resumable in the -2 case.
//
//go:wasmexport parse
func parse(handle uint32) int32 {
	switch err := registry.Parse(handle); {
	case err == nil:
		return 0
	case errors.Is(err, abi.ErrUnknownHandle):
		return -1
	default:
		return -2
	}
}

// free_processor releases the processor behind handle. Calling parse again
// with a freed handle is an error, not a crash.
//
//go:wasmexport free_processor
func freeProcessor(handle uint32) {
	registry.Free(handle)
}

func main() {}
