package mpd

import "testing"

func TestAttrIter(t *testing.T) {
	it := newAttrIter([]byte(`id="a1" bandwidth="128000"`))
	var got []attr
	for {
		a, ok, err := it.next()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !ok {
			break
		}
		got = append(got, a)
	}
	if len(got) != 2 {
		t.Fatalf("got %d attrs, want 2", len(got))
	}
	if string(got[0].name) != "id" || string(got[0].value) != "a1" {
		t.Errorf("attr[0] = %+v", got[0])
	}
	if string(got[1].name) != "bandwidth" || string(got[1].value) != "128000" {
		t.Errorf("attr[1] = %+v", got[1])
	}
}

func TestTokenizerExpandsEmptyElements(t *testing.T) {
	tok := newTokenizer([]byte(`<Role schemeIdUri="urn:x" value="main"/>`), nil)

	start, err := tok.next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.kind != tokenStart || string(start.name) != "Role" {
		t.Fatalf("got %+v, want Start Role", start)
	}

	end, err := tok.next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end.kind != tokenEnd || string(end.name) != "Role" {
		t.Fatalf("got %+v, want End Role", end)
	}

	eof, err := tok.next()
	if err != nil || eof.kind != tokenEOF {
		t.Fatalf("got %+v, %v; want EOF, nil", eof, err)
	}
}

func TestTokenizerTrimsText(t *testing.T) {
	tok := newTokenizer([]byte("<a>  hello  </a>"), nil)
	tok.next() // Start "a"
	text, err := tok.next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(text.text) != "hello" {
		t.Errorf("text = %q, want %q", text.text, "hello")
	}
}

func TestTokenizerCanDisableTrim(t *testing.T) {
	tok := newTokenizer([]byte("<a>  hello  </a>"), nil)
	tok.setTrimText(false)
	tok.next() // Start "a"
	text, err := tok.next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(text.text) != "  hello  " {
		t.Errorf("text = %q, want untrimmed", text.text)
	}
}

func TestTokenizerSuspendsInsidePartialTag(t *testing.T) {
	tok := newTokenizer([]byte(`<MPD type="static"><Peri`), nil)

	start, err := tok.next()
	if err != nil || start.kind != tokenStart {
		t.Fatalf("got %+v, %v; want Start MPD", start, err)
	}

	eof, err := tok.next()
	if err != nil || eof.kind != tokenEOF {
		t.Fatalf("got %+v, %v; want EOF, nil", eof, err)
	}
	if got, want := tok.bufferPosition(), len(`<MPD type="static">`); got != want {
		t.Errorf("bufferPosition = %d, want %d (partial tag left unconsumed)", got, want)
	}
}

func TestTokenizerHoldsBackTrailingText(t *testing.T) {
	tok := newTokenizer([]byte("<BaseURL>https://example.com/ba"), nil)
	tok.next() // Start "BaseURL"

	eof, err := tok.next()
	if err != nil || eof.kind != tokenEOF {
		t.Fatalf("got %+v, %v; want EOF, nil", eof, err)
	}
	if got, want := tok.bufferPosition(), len("<BaseURL>"); got != want {
		t.Errorf("bufferPosition = %d, want %d (trailing text left unconsumed)", got, want)
	}
}

func TestUnescape(t *testing.T) {
	got, err := unescape([]byte("a &amp; b &lt;c&gt;"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "a & b <c>" {
		t.Errorf("unescape = %q, want %q", got, "a & b <c>")
	}
}
