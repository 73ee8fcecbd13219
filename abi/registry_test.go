package abi

import (
	"bytes"
	"errors"
	"testing"

	"github.com/dashstream/mpdwasm/mpd"
)

func TestRegistryParseUnknownHandle(t *testing.T) {
	r := NewRegistry()
	if err := r.Parse(999); !errors.Is(err, ErrUnknownHandle) {
		t.Fatalf("Parse(999) = %v, want ErrUnknownHandle", err)
	}
}

func TestRegistryCreateParseFree(t *testing.T) {
	r := NewRegistry()
	sink := mpd.NewRecordingSink()
	handle := r.Create(bytes.NewReader([]byte(`<MPD type="static"></MPD>`)), sink)

	if err := r.Parse(handle); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sink.TagOpens) != 1 || sink.TagOpens[0] != mpd.TagMPD {
		t.Fatalf("got TagOpens=%v, want [MPD]", sink.TagOpens)
	}

	r.Free(handle)
	if err := r.Parse(handle); !errors.Is(err, ErrUnknownHandle) {
		t.Fatalf("Parse after Free = %v, want ErrUnknownHandle", err)
	}
}

func TestRegistryHandlesAreDistinct(t *testing.T) {
	r := NewRegistry()
	sinkA := mpd.NewRecordingSink()
	sinkB := mpd.NewRecordingSink()
	a := r.Create(bytes.NewReader([]byte(`<MPD></MPD>`)), sinkA)
	b := r.Create(bytes.NewReader([]byte(`<Period></Period>`)), sinkB)
	if a == b {
		t.Fatalf("expected distinct handles, got %d and %d", a, b)
	}

	if err := r.Parse(a); err != nil {
		t.Fatalf("Parse(a): %v", err)
	}
	if err := r.Parse(b); err != nil {
		t.Fatalf("Parse(b): %v", err)
	}
	if len(sinkA.TagOpens) != 1 || sinkA.TagOpens[0] != mpd.TagMPD {
		t.Errorf("sinkA.TagOpens = %v, want [MPD]", sinkA.TagOpens)
	}
	if len(sinkB.TagOpens) != 1 || sinkB.TagOpens[0] != mpd.TagPeriod {
		t.Errorf("sinkB.TagOpens = %v, want [Period]", sinkB.TagOpens)
	}
}
