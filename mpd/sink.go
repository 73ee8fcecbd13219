package mpd

import (
	"encoding/binary"
	"math"
)

// Sink is the reporting boundary spec.md re-architects out of the typed
// projection layer below it (the "foreign-function reporting layer" split):
// everything in this package that needs to tell the outside world something
// happened does it by calling one of these four methods, never by talking to
// a host ABI directly. cmd/mpdparser-wasm implements Sink over the literal
// wasmimport callbacks; cmd/mpdreplay implements it over a logger; tests
// implement it over a plain slice.
type Sink interface {
	TagOpen(kind TagKind)
	TagClose(kind TagKind)
	Attribute(kind AttrKind, payload []byte)
	CustomEvent(kind CustomEventKind, payload []byte)
}

// reporter adapts the typed values the processor derives (strings, bools,
// f64s, coordinate pairs, segment runs, namespaced key/value pairs) onto a
// Sink's flat byte-payload Attribute calls, following the wire encoding
// spec.md §7 assigns to each value shape. It owns a single reusable scratch
// buffer: every report* method resets and refills it rather than allocating,
// since a Processor may report thousands of attributes over its lifetime.
type reporter struct {
	sink    Sink
	scratch []byte
}

func newReporter(sink Sink) *reporter {
	return &reporter{sink: sink, scratch: make([]byte, 0, 64)}
}

// reportString passes raw UTF-8 bytes through unmodified: attribute values
// that are already strings (codecs, mimeType, schemeIdUri, ...) need no
// projection.
func (r *reporter) reportString(kind AttrKind, value []byte) {
	r.sink.Attribute(kind, value)
}

// reportBool encodes a bool as a single byte: 1 for true, 0 for false.
func (r *reporter) reportBool(kind AttrKind, value bool) {
	r.scratch = r.scratch[:0]
	if value {
		r.scratch = append(r.scratch, 1)
	} else {
		r.scratch = append(r.scratch, 0)
	}
	r.sink.Attribute(kind, r.scratch)
}

// reportF64 encodes a float64 as its 8 native-endian bytes: the host reads
// it back by reinterpreting the pointer it receives, so there is no framing
// to parse on the other side.
func (r *reporter) reportF64(kind AttrKind, value float64) {
	r.scratch = r.scratch[:0]
	r.scratch = appendF64(r.scratch, value)
	r.sink.Attribute(kind, r.scratch)
}

// reportPair encodes two float64s back to back: 16 bytes, used for
// coordinate-like attributes (byte ranges, media ranges).
func (r *reporter) reportPair(kind AttrKind, a, b float64) {
	r.scratch = r.scratch[:0]
	r.scratch = appendF64(r.scratch, a)
	r.scratch = appendF64(r.scratch, b)
	r.sink.Attribute(kind, r.scratch)
}

// reportSegments encodes a <SegmentTimeline>'s derived run as 24 bytes per
// SegmentObject (start, duration, repeatCount, each an 8-byte native-endian
// float64), back to back.
func (r *reporter) reportSegments(kind AttrKind, segments []SegmentObject) {
	r.scratch = r.scratch[:0]
	for _, s := range segments {
		r.scratch = appendF64(r.scratch, s.Start)
		r.scratch = appendF64(r.scratch, s.Duration)
		r.scratch = appendF64(r.scratch, s.RepeatCount)
	}
	r.sink.Attribute(kind, r.scratch)
}

// reportNamespace encodes an xmlns key/value pair as two big-endian
// length-prefixed frames back to back: a plain byte concatenation can't mark
// where the key ends and the value begins, unlike every other string
// attribute, which is reported alone.
func (r *reporter) reportNamespace(kind AttrKind, key, value []byte) {
	r.scratch = r.scratch[:0]
	r.scratch = putU32BE(r.scratch, uint32(len(key)))
	r.scratch = append(r.scratch, key...)
	r.scratch = putU32BE(r.scratch, uint32(len(value)))
	r.scratch = append(r.scratch, value...)
	r.sink.Attribute(kind, r.scratch)
}

func (r *reporter) reportTagOpen(kind TagKind)  { r.sink.TagOpen(kind) }
func (r *reporter) reportTagClose(kind TagKind) { r.sink.TagClose(kind) }

func (r *reporter) reportCustomEvent(kind CustomEventKind, payload []byte) {
	r.sink.CustomEvent(kind, payload)
}

func appendF64(dst []byte, v float64) []byte {
	var buf [8]byte
	binary.NativeEndian.PutUint64(buf[:], math.Float64bits(v))
	return append(dst, buf[:]...)
}

// RecordingSink is a Sink that records every call verbatim, for use in
// tests that assert on the exact sequence of reported events rather than on
// a rendered tree.
type RecordingSink struct {
	TagOpens     []TagKind
	TagCloses    []TagKind
	Attributes   []RecordedAttribute
	CustomEvents []RecordedCustomEvent
}

type RecordedAttribute struct {
	Kind    AttrKind
	Payload []byte
}

type RecordedCustomEvent struct {
	Kind    CustomEventKind
	Payload []byte
}

func NewRecordingSink() *RecordingSink { return &RecordingSink{} }

func (s *RecordingSink) TagOpen(kind TagKind)  { s.TagOpens = append(s.TagOpens, kind) }
func (s *RecordingSink) TagClose(kind TagKind) { s.TagCloses = append(s.TagCloses, kind) }

func (s *RecordingSink) Attribute(kind AttrKind, payload []byte) {
	s.Attributes = append(s.Attributes, RecordedAttribute{Kind: kind, Payload: append([]byte(nil), payload...)})
}

func (s *RecordingSink) CustomEvent(kind CustomEventKind, payload []byte) {
	s.CustomEvents = append(s.CustomEvents, RecordedCustomEvent{Kind: kind, Payload: append([]byte(nil), payload...)})
}
