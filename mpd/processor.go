package mpd

import (
	"bytes"
	"io"
)

// This file is the Go counterpart of original_source's processor/mod.rs: the
// resumable state machine that drives the tokenizer and reports everything
// it recognizes through a reporter.
//
// original_source keeps a single quick_xml::Reader alive across suspend
// points and simply calls read_event again once more bytes are available --
// Rust's io::Read::read is explicitly allowed to return Ok(0) without that
// meaning "permanently exhausted", so quick_xml is happy to try again later.
// gosax follows normal Go io.Reader convention instead: once the reader it
// wraps returns io.EOF, gosax.Reader latches into a terminal state and never
// attempts another Read. A single gosax.Reader can therefore only ever be
// used for one resume-chunk. Processor works around this by owning the raw
// byte buffer itself: every Parse call drains whatever the source currently
// has to offer into buf, builds a fresh tokenizer over it, and trims the
// fully-tokenized prefix back off once the grammar-level state machine
// below (which is the literal, unaltered port of MPDProcessorState) has
// paused again. The grammar-level resumption logic is identical to the
// original; only the byte-level plumbing underneath it had to change.
type Processor struct {
	src io.Reader
	rep *reporter

	buf    []byte
	tok    *tokenizer
	tokBuf []byte

	segBuf    []SegmentObject
	state     procState
	resyncing bool
	busy      bool
}

type procStateKind uint8

const (
	stateMain procStateKind = iota
	stateSegmentTimeline
	stateLocation
	stateBaseURL
	stateCenc
	stateEventStream
	stateEventStreamEvent
)

type procState struct {
	kind procStateKind

	innerTags   uint32  // SegmentTimeline, Location, BaseURL, Cenc, EventStream
	initialTime float64 // SegmentTimeline

	eventStreamInnerTags uint32 // EventStreamEvent's enclosing EventStream depth
	eventBuf             []byte // accumulated re-serialized <Event> bytes
}

// NewProcessor creates a Processor reading MPD XML from src and reporting
// everything it recognizes to sink.
func NewProcessor(src io.Reader, sink Sink) *Processor {
	return &Processor{src: src, rep: newReporter(sink), state: procState{kind: stateMain}}
}

// Parse resumes parsing from wherever the last Parse call left off, running
// until the currently available input is exhausted. It is not re-entrant:
// calling Parse from within a Sink callback triggered by an in-progress
// Parse call is a programmer error and panics, mirroring original_source's
// RefCell-enforced single active borrow.
func (p *Processor) Parse() error {
	if p.busy {
		panic("mpd: Parse called re-entrantly")
	}
	p.busy = true
	defer func() { p.busy = false }()

	if err := p.pullAvailable(); err != nil {
		return err
	}

	if p.resyncing {
		// A markup construct rejected by the tokenizer on an earlier resume
		// was still missing its closing '>'; finish skipping it before
		// tokenizing anything else, so recovery lands at the same spot
		// regardless of how the input was chunked.
		i := bytes.IndexByte(p.buf, '>')
		if i < 0 {
			return nil
		}
		p.buf = append(p.buf[:0], p.buf[i+1:]...)
		p.resyncing = false
	}

	if p.tokBuf == nil || cap(p.tokBuf) < len(p.buf) {
		// gosax's working buffer accumulates everything it reads, so the
		// reused scratch must cover the currently buffered input. Grown
		// geometrically so input arriving a few bytes per resume doesn't
		// reallocate on every Parse call; still far below gosax's 2MB
		// NewReader default for typical manifests.
		p.tokBuf = make([]byte, 0, max(len(p.buf), 2*cap(p.tokBuf), 64*1024))
	}
	p.tok = newTokenizer(p.buf, p.tokBuf)
	state := p.state
	p.state = procState{kind: stateMain}

	switch state.kind {
	case stateMain:
		p.processMainElements()
	case stateSegmentTimeline:
		if p.processSegmentTimeline(state.innerTags, state.initialTime) {
			p.processMainElements()
		}
	case stateLocation:
		if p.processLocation(state.innerTags) {
			p.processMainElements()
		}
	case stateBaseURL:
		if p.processBaseURL(state.innerTags) {
			p.processMainElements()
		}
	case stateCenc:
		if p.processCenc(state.innerTags) {
			p.processMainElements()
		}
	case stateEventStream:
		if p.processEventStream(state.innerTags) {
			p.processMainElements()
		}
	case stateEventStreamEvent:
		complete := p.processEventStreamEvent(state.innerTags, state.eventStreamInnerTags, state.eventBuf)
		if complete {
			if p.processEventStream(state.eventStreamInnerTags) {
				p.processMainElements()
			}
		}
	}

	if pos := p.tok.bufferPosition(); pos > 0 {
		if pos >= len(p.buf) {
			p.buf = p.buf[:0]
		} else {
			p.buf = append(p.buf[:0], p.buf[pos:]...)
		}
	}
	p.tok = nil
	return nil
}

// recoverToken reports a tokenizer error and skips past the rejected
// construct. When the construct's closing '>' has not arrived yet, the skip
// is left pending for Parse to finish on a later resume.
func (p *Processor) recoverToken(err error) {
	reportError(p.rep, err)
	if !p.tok.resync() {
		p.resyncing = true
	}
}

// pullAvailable drains whatever src currently has ready into buf, stopping
// as soon as a Read reports it has nothing more right now.
func (p *Processor) pullAvailable() error {
	var chunk [4096]byte
	for {
		n, err := p.src.Read(chunk[:])
		if n > 0 {
			p.buf = append(p.buf, chunk[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

// processMainElements is the top-level loop: MPD, Period, AdaptationSet,
// Representation, and their various scheme/segment children. It only
// returns once the currently buffered input is exhausted. Tokenizer errors
// are reported and skipped past (gosax cannot advance over a construct it
// rejects, so the tokenizer resyncs to the next one).
func (p *Processor) processMainElements() {
	for {
		tok, err := p.tok.next()
		if err != nil {
			p.recoverToken(err)
			continue
		}
		switch tok.kind {
		case tokenStart:
			name := string(tok.name)
			switch name {
			case "Initialization":
				reportInitializationAttrs(p.rep, newAttrIter(tok.attrs))
			case "BaseURL":
				p.rep.reportTagOpen(TagBaseURL)
				reportBaseURLAttrs(p.rep, newAttrIter(tok.attrs))
				if !p.processBaseURL(0) {
					return
				}
			case "cenc:pssh":
				if !p.processCenc(0) {
					return
				}
			case "Location":
				if !p.processLocation(0) {
					return
				}
			case "SegmentTimeline":
				if !p.processSegmentTimeline(0, 0) {
					return
				}
			case "EventStream":
				p.rep.reportTagOpen(TagEventStream)
				reportEventStreamAttrs(p.rep, newAttrIter(tok.attrs))
				if !p.processEventStream(0) {
					return
				}
			default:
				if el, ok := mainElements[name]; ok {
					p.rep.reportTagOpen(el.kind)
					el.report(p.rep, newAttrIter(tok.attrs))
				}
			}
		case tokenEnd:
			if el, ok := mainElements[string(tok.name)]; ok {
				p.rep.reportTagClose(el.kind)
			}
		case tokenEOF:
			p.state = procState{kind: stateMain}
			return
		}
	}
}

// processSegmentTimeline accumulates <S> children into segBuf, reporting
// the whole run as a single SegmentTimeline attribute once the element
// closes.
func (p *Processor) processSegmentTimeline(innerTags uint32, timeBase float64) bool {
	for {
		tok, err := p.tok.next()
		if err != nil {
			p.recoverToken(err)
			break
		}
		switch tok.kind {
		case tokenStart:
			switch string(tok.name) {
			case "S":
				obj, err := buildSegmentObject(newAttrIter(tok.attrs), timeBase)
				if err != nil {
					reportError(p.rep, err)
					continue
				}
				timeBase = obj.nextTimeBase()
				p.segBuf = append(p.segBuf, obj)
			case "SegmentTimeline":
				innerTags++
			}
		case tokenEnd:
			if string(tok.name) == "SegmentTimeline" {
				if innerTags > 0 {
					innerTags--
				} else {
					p.rep.reportSegments(AttrSegmentTimeline, p.segBuf)
					p.segBuf = p.segBuf[:0]
					return true
				}
			}
		case tokenEOF:
			p.state = procState{kind: stateSegmentTimeline, innerTags: innerTags, initialTime: timeBase}
			return false
		}
	}
	p.segBuf = p.segBuf[:0]
	return true
}

// processLocation reports a <Location> element's text content as AttrLocation.
func (p *Processor) processLocation(innerTags uint32) bool {
	done, saved := p.collectText("Location", innerTags, AttrLocation)
	if !done {
		p.state = procState{kind: stateLocation, innerTags: saved}
	}
	return done
}

// processCenc reports a <cenc:pssh> element's text content as
// AttrContentProtectionCencPSSH.
func (p *Processor) processCenc(innerTags uint32) bool {
	done, saved := p.collectText("cenc:pssh", innerTags, AttrContentProtectionCencPSSH)
	if !done {
		p.state = procState{kind: stateCenc, innerTags: saved}
	}
	return done
}

// processBaseURL reports a <BaseURL> element's text content as AttrText,
// additionally closing the TagBaseURL its caller opened.
func (p *Processor) processBaseURL(innerTags uint32) bool {
	for {
		tok, err := p.tok.next()
		if err != nil {
			p.recoverToken(err)
			break
		}
		switch tok.kind {
		case tokenText:
			if len(tok.text) > 0 {
				unescaped, err := unescape(tok.text)
				if err != nil {
					reportError(p.rep, err)
					continue
				}
				p.rep.reportString(AttrText, unescaped)
			}
		case tokenStart:
			if string(tok.name) == "BaseURL" {
				innerTags++
			}
		case tokenEnd:
			if string(tok.name) == "BaseURL" {
				if innerTags > 0 {
					innerTags--
				} else {
					p.rep.reportTagClose(TagBaseURL)
					return true
				}
			}
		case tokenEOF:
			p.state = procState{kind: stateBaseURL, innerTags: innerTags}
			return false
		}
	}
	return true
}

// collectText implements the text-collection loop shared by Location and
// cenc:pssh: every non-empty Text child is reported as attr. Unlike
// processBaseURL, it reports no TagClose for the element.
func (p *Processor) collectText(elementName string, innerTags uint32, attr AttrKind) (done bool, savedInnerTags uint32) {
	for {
		tok, err := p.tok.next()
		if err != nil {
			p.recoverToken(err)
			break
		}
		switch tok.kind {
		case tokenText:
			if len(tok.text) > 0 {
				unescaped, err := unescape(tok.text)
				if err != nil {
					reportError(p.rep, err)
					continue
				}
				p.rep.reportString(attr, unescaped)
			}
		case tokenStart:
			if string(tok.name) == elementName {
				innerTags++
			}
		case tokenEnd:
			if string(tok.name) == elementName {
				if innerTags > 0 {
					innerTags--
				} else {
					return true, 0
				}
			}
		case tokenEOF:
			return false, innerTags
		}
	}
	return true, 0
}

// processEventStream loops over an <EventStream>'s children, dispatching
// each <Event> to processEventStreamEvent.
func (p *Processor) processEventStream(innerTags uint32) bool {
	for {
		tok, err := p.tok.next()
		if err != nil {
			p.recoverToken(err)
			break
		}
		switch tok.kind {
		case tokenStart:
			switch string(tok.name) {
			case "Event":
				p.rep.reportTagOpen(TagEventStreamElt)
				reportEventStreamEventAttrs(p.rep, newAttrIter(tok.attrs))
				eventBuf := append([]byte(nil), tok.raw...)
				if !p.processEventStreamEvent(0, innerTags, eventBuf) {
					return false
				}
			case "EventStream":
				innerTags++
			}
		case tokenEnd:
			if string(tok.name) == "EventStream" {
				if innerTags > 0 {
					innerTags--
				} else {
					p.rep.reportTagClose(TagEventStream)
					return true
				}
			}
		case tokenEOF:
			p.state = procState{kind: stateEventStream, innerTags: innerTags}
			return false
		}
	}
	return true
}

// processEventStreamEvent re-serializes an <Event> sub-tree verbatim
// (namespace-qualified children included) into eventBuf, reporting the
// whole thing as AttrEventStreamEvent once the element closes. Text is not
// trimmed while this runs, so text content and whitespace come out as in the
// source; a self-closing child comes out as a start/end pair (see
// tokenizer.next).
func (p *Processor) processEventStreamEvent(innerTags, eventStreamInnerTags uint32, eventBuf []byte) bool {
	p.tok.setTrimText(false)
	defer p.tok.setTrimText(true)

	for {
		tok, err := p.tok.next()
		if err != nil {
			p.recoverToken(err)
			break
		}
		if tok.kind != tokenEOF {
			eventBuf = append(eventBuf, tok.raw...)
		}
		switch tok.kind {
		case tokenStart:
			if string(tok.name) == "Event" {
				innerTags++
			}
		case tokenEnd:
			if string(tok.name) == "Event" {
				if innerTags > 0 {
					innerTags--
				} else {
					p.rep.reportString(AttrEventStreamEvent, eventBuf)
					p.rep.reportTagClose(TagEventStreamElt)
					return true
				}
			}
		case tokenEOF:
			p.state = procState{
				kind:                 stateEventStreamEvent,
				innerTags:            innerTags,
				eventStreamInnerTags: eventStreamInnerTags,
				eventBuf:             eventBuf,
			}
			return false
		}
	}
	return true
}
