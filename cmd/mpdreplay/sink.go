package main

import (
	"log"

	"github.com/dashstream/mpdwasm/mpd"
)

// loggingSink reports everything through the standard logger instead of a
// WASM callback, the way the teacher's handlers log requests through
// stdlib log rather than a structured logging library.
type loggingSink struct{}

func newLoggingSink() *loggingSink { return &loggingSink{} }

func (loggingSink) TagOpen(kind mpd.TagKind) {
	log.Printf("open  <%s>", kind)
}

func (loggingSink) TagClose(kind mpd.TagKind) {
	log.Printf("close </%s>", kind)
}

func (loggingSink) Attribute(kind mpd.AttrKind, payload []byte) {
	log.Printf("attr  kind=%d bytes=%d", kind, len(payload))
}

func (loggingSink) CustomEvent(kind mpd.CustomEventKind, payload []byte) {
	switch kind {
	case mpd.CustomEventError:
		log.Printf("error: %s", payload)
	default:
		log.Printf("log: %s", payload)
	}
}
