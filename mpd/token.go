package mpd

import (
	"bytes"
	"io"

	"github.com/orisano/gosax"
)

// This file is the tokenizer adapter of spec.md §4.5: a thin façade over
// github.com/orisano/gosax's byte-oriented event reader (the Go sibling of
// the Rust original's quick_xml::Reader). gosax gives us Start/End/Text/
// CData/Comment/ProcessingInstruction/DocType/EOF events as raw byte
// slices into its internal buffer; this file adds the three things
// spec.md requires that gosax doesn't provide on its own: empty-element
// expansion into a Start/End pair, a text-trim toggle, and a running
// buffer position.

type tokenKind uint8

const (
	tokenStart tokenKind = iota
	tokenEnd
	tokenText
	tokenEOF
	// tokenOther covers Comment/ProcessingInstruction/DocType (CData is
	// delivered as tokenText): never inspected by the state machine, but
	// still captured verbatim by the <Event> re-serializer (processor.go's
	// processEventStreamEvent).
	tokenOther
)

type token struct {
	kind tokenKind
	// name is set for tokenStart/tokenEnd: the element's local name,
	// including any namespace prefix (e.g. "cenc:pssh").
	name []byte
	// attrs is the Start token's un-parsed attribute byte range, fed to
	// newAttrIter by callers that need them.
	attrs []byte
	// text is the raw content of a Text (or CData) token (not yet
	// unescaped -- callers unescape at the point of use).
	text []byte
	// raw is the token's original bytes (rebuilt in canonical form for the
	// Start/End pair of an expanded empty element), used only for <Event>
	// re-serialization.
	raw []byte
}

// attr is one raw (not yet unescaped) XML attribute.
type attr struct {
	name  []byte
	value []byte
}

// attrIter iterates the attributes of a start tag using gosax.NextAttribute,
// stripping the surrounding quotes gosax leaves on the value.
type attrIter struct {
	rest []byte
}

func newAttrIter(rest []byte) attrIter { return attrIter{rest: rest} }

func (it *attrIter) next() (attr, bool, error) {
	if len(bytes.TrimSpace(it.rest)) == 0 {
		return attr{}, false, nil
	}
	a, rest, err := gosax.NextAttribute(it.rest)
	if err != nil {
		return attr{}, false, newParsingError("invalid attribute: %v", err)
	}
	it.rest = rest
	if a.Key == nil {
		return attr{}, false, nil
	}
	return attr{name: a.Key, value: trimQuotes(a.Value)}, true, nil
}

func trimQuotes(v []byte) []byte {
	if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') {
		return v[1 : len(v)-1]
	}
	return v
}

// tokenizer wraps a gosax.Reader, adding the adapter behavior described
// above. It tokenizes one fixed byte buffer: the Processor rebuilds a fresh
// tokenizer over its accumulated buffer on every resume, so a tokenizer
// never has to survive past the end of the bytes it was given.
type tokenizer struct {
	data    []byte
	scratch []byte
	r       *gosax.Reader
	trim    bool
	pending *token // the synthetic End queued by empty-element expansion
	pos     int
	total   int
}

// newTokenizer tokenizes data. A non-nil scratch is handed to gosax as its
// working buffer, letting a caller that rebuilds tokenizers frequently (the
// Processor, once per resume) reuse one allocation instead of paying for
// gosax's default buffer every time.
func newTokenizer(data, scratch []byte) *tokenizer {
	t := &tokenizer{data: data, scratch: scratch, trim: true, total: len(data)}
	t.r = t.newReader(data)
	return t
}

func (t *tokenizer) newReader(data []byte) *gosax.Reader {
	if t.scratch != nil {
		return gosax.NewReaderBuf(bytes.NewReader(data), t.scratch[:0])
	}
	return gosax.NewReader(bytes.NewReader(data))
}

// resync recovers from a markup construct gosax errors on and cannot advance
// past: it skips the construct through its closing '>' and rebuilds the
// reader there, so parsing continues with whatever follows (text included)
// instead of wedging on the bad bytes. If the construct's '>' is not in the
// buffer yet, resync returns false with the position still at the construct:
// the reader is parked so the next call reports a clean EOF, and the caller
// finishes the skip on a later resume once the '>' has arrived.
func (t *tokenizer) resync() bool {
	t.pending = nil
	from := min(t.pos+1, t.total)
	if i := bytes.IndexByte(t.data[from:], '>'); i >= 0 {
		t.pos = from + i + 1
		t.r = t.newReader(t.data[t.pos:])
		return true
	}
	t.r = t.newReader(nil)
	return false
}

// setTrimText toggles leading/trailing whitespace trimming on Text tokens.
// Off only while capturing an <Event> sub-tree verbatim (spec.md §4.6.7).
func (t *tokenizer) setTrimText(trim bool) { t.trim = trim }

// bufferPosition returns the number of bytes consumed from the underlying
// reader so far.
func (t *tokenizer) bufferPosition() int { return t.pos }

// next returns the next token. On the underlying reader's EOF it returns a
// tokenEOF token and a nil error; true I/O errors are returned as-is.
func (t *tokenizer) next() (token, error) {
	if t.pending != nil {
		tok := *t.pending
		t.pending = nil
		return tok, nil
	}

	ev, err := t.r.Event()
	if err != nil {
		if err == io.EOF {
			// The buffer ended inside a tag, comment, or CData section.
			// Report EOF without advancing the position: the partial
			// token's bytes stay unconsumed and are re-tokenized whole on
			// the next resume.
			return token{kind: tokenEOF}, nil
		}
		return token{}, err
	}
	if ev.Type() == gosax.EventText && t.pos+len(ev.Bytes) == t.total {
		// Text running to the very end of the buffer may be a prefix of a
		// longer text node whose remainder has not arrived yet. Hold it
		// back, unconsumed, until the byte that terminates it is in the
		// buffer; otherwise a <BaseURL> split across two resume chunks
		// would be reported as two fragment values instead of one.
		return token{kind: tokenEOF}, nil
	}
	t.pos += len(ev.Bytes)

	switch ev.Type() {
	case gosax.EventEOF:
		return token{kind: tokenEOF}, nil

	case gosax.EventStart:
		name, rest, selfClosing := splitStartTag(ev.Bytes)
		start := token{kind: tokenStart, name: name, attrs: rest, raw: ev.Bytes}
		if selfClosing {
			// Expand into a Start immediately followed by a synthetic End,
			// matching quick_xml's expand_empty_elements(true): the state
			// machine never has to special-case empty elements itself. The
			// raw bytes of both synthetic tokens are rebuilt in canonical
			// non-self-closing form, since that's what re-serializing a
			// Start then an End event through a plain XML writer produces
			// -- an <Event/> re-serialized this way comes out as
			// "<Event></Event>", not byte-identical to the source, same as
			// the original implementation.
			start.raw = canonicalStartTag(name, rest)
			t.pending = &token{kind: tokenEnd, name: name, raw: canonicalEndTag(name)}
		}
		return start, nil

	case gosax.EventEnd:
		return token{kind: tokenEnd, name: splitEndTag(ev.Bytes), raw: ev.Bytes}, nil

	case gosax.EventText, gosax.EventCData:
		text := ev.Bytes
		if t.trim {
			text = bytes.TrimSpace(text)
		}
		return token{kind: tokenText, text: text, raw: ev.Bytes}, nil

	default: // comment, processing instruction, doctype
		return token{kind: tokenOther, raw: ev.Bytes}, nil
	}
}

// splitStartTag extracts a start tag's local name and un-parsed attribute
// bytes from gosax's raw "<Name attr=\"v\"...>" (or self-closing
// "<Name .../>") markup bytes.
func splitStartTag(raw []byte) (name, attrsRest []byte, selfClosing bool) {
	b := raw
	if len(b) > 1 && b[0] == '<' {
		b = b[1:]
	}
	if len(b) > 1 && b[len(b)-1] == '>' {
		b = b[:len(b)-1]
	}
	if len(b) > 0 && b[len(b)-1] == '/' {
		selfClosing = true
		b = b[:len(b)-1]
	}
	for i, c := range b {
		if isXMLSpace(c) {
			return b[:i], b[i+1:], selfClosing
		}
	}
	return b, nil, selfClosing
}

// splitEndTag extracts a "</Name>" token's local name.
func splitEndTag(raw []byte) []byte {
	b := raw
	if len(b) > 1 && b[0] == '<' {
		b = b[1:]
	}
	if len(b) > 0 && b[0] == '/' {
		b = b[1:]
	}
	if len(b) > 0 && b[len(b)-1] == '>' {
		b = b[:len(b)-1]
	}
	return bytes.TrimSpace(b)
}

func canonicalStartTag(name, attrsRest []byte) []byte {
	out := make([]byte, 0, len(name)+len(attrsRest)+3)
	out = append(out, '<')
	out = append(out, name...)
	if rest := bytes.TrimRight(attrsRest, " \t\r\n"); len(rest) > 0 {
		out = append(out, ' ')
		out = append(out, rest...)
	}
	out = append(out, '>')
	return out
}

func canonicalEndTag(name []byte) []byte {
	out := make([]byte, 0, len(name)+3)
	out = append(out, '<', '/')
	out = append(out, name...)
	out = append(out, '>')
	return out
}

func isXMLSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// unescape decodes XML entity references (&amp; &lt; ... and numeric
// references) in place, via gosax.Unescape.
func unescape(b []byte) ([]byte, error) {
	out, err := gosax.Unescape(append([]byte(nil), b...))
	if err != nil {
		return nil, newParsingError("could not unescape value: %v", err)
	}
	return out, nil
}
