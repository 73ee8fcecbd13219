package mpd

import (
	"bytes"
	"io"
	"reflect"
	"testing"
)

const testFixture = `<?xml version="1.0"?>
<MPD xmlns="urn:mpeg:dash:schema:mpd:2011" xmlns:cenc="urn:mpeg:cenc:2013" type="static" minBufferTime="PT1.5S" mediaPresentationDuration="PT1H">
  <Period id="p0" start="PT0S">
    <BaseURL>https://example.com/base/</BaseURL>
    <AdaptationSet id="1" contentType="video" segmentAlignment="true">
      <Representation id="v0" bandwidth="500000" width="640" height="360" codecs="avc1.4d401f">
        <SegmentTemplate media="seg-$Number$.m4s" initialization="init.mp4" timescale="90000" startNumber="1">
          <SegmentTimeline>
            <S t="0" d="180000" r="2"/>
            <S d="90000"/>
          </SegmentTimeline>
        </SegmentTemplate>
      </Representation>
    </AdaptationSet>
    <EventStream schemeIdUri="urn:example:ev" timescale="1000">
      <Event presentationTime="0" duration="500" id="e1"><payload>hi</payload></Event>
    </EventStream>
  </Period>
  <Location>https://example.com/mpd2.xml</Location>
</MPD>`

// chunkReader is the test equivalent of cmd/mpdreplay's chunkedReader: it
// hands back at most chunkSize bytes per Read and always reports io.EOF
// afterward, forcing the Processor under test to suspend between chunks.
type chunkReader struct {
	r         *bytes.Reader
	chunkSize int
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(p) > c.chunkSize {
		p = p[:c.chunkSize]
	}
	n, err := c.r.Read(p)
	if n == 0 {
		if err == nil {
			err = io.EOF
		}
		return 0, err
	}
	return n, io.EOF
}

func parseFixtureInChunks(t *testing.T, chunkSize int) *RecordingSink {
	t.Helper()
	sink := NewRecordingSink()
	src := &chunkReader{r: bytes.NewReader([]byte(testFixture)), chunkSize: chunkSize}
	proc := NewProcessor(src, sink)
	for {
		if err := proc.Parse(); err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if src.r.Len() == 0 {
			// The final chunk was tokenized by the Parse call that read it;
			// one more call resumes once more with nothing left to read.
			if err := proc.Parse(); err != nil {
				t.Fatalf("Parse: %v", err)
			}
			return sink
		}
	}
}

func TestProcessorTagsBalance(t *testing.T) {
	sink := parseFixtureInChunks(t, 4096)
	if len(sink.TagOpens) != len(sink.TagCloses) {
		t.Fatalf("unbalanced tags: %d opens, %d closes", len(sink.TagOpens), len(sink.TagCloses))
	}
	// Properly nested elements close innermost first, so the close order is
	// not the open order.
	wantCloses := []TagKind{TagBaseURL, TagSegmentTemplate, TagRepresentation, TagAdaptationSet, TagEventStreamElt, TagEventStream, TagPeriod, TagMPD}
	if !reflect.DeepEqual(sink.TagCloses, wantCloses) {
		t.Errorf("tag closes = %v, want %v (opens were %v)", sink.TagCloses, wantCloses, sink.TagOpens)
	}
}

func TestProcessorResumeIsChunkSizeIndependent(t *testing.T) {
	reference := parseFixtureInChunks(t, 4096)

	for _, chunkSize := range []int{1, 3, 7, 16, 64} {
		got := parseFixtureInChunks(t, chunkSize)
		if !reflect.DeepEqual(got.TagOpens, reference.TagOpens) {
			t.Errorf("chunkSize=%d: tag opens %v, want %v", chunkSize, got.TagOpens, reference.TagOpens)
		}
		if !reflect.DeepEqual(got.TagCloses, reference.TagCloses) {
			t.Errorf("chunkSize=%d: tag closes %v, want %v", chunkSize, got.TagCloses, reference.TagCloses)
		}
		if !reflect.DeepEqual(got.Attributes, reference.Attributes) {
			t.Errorf("chunkSize=%d: attribute stream differs from single-chunk parse", chunkSize)
		}
		if !reflect.DeepEqual(got.CustomEvents, reference.CustomEvents) {
			t.Errorf("chunkSize=%d: custom events %v, want %v", chunkSize, got.CustomEvents, reference.CustomEvents)
		}
	}
}

func TestProcessorReportsSegmentTimeline(t *testing.T) {
	sink := parseFixtureInChunks(t, 4096)
	var found bool
	for _, a := range sink.Attributes {
		if a.Kind == AttrSegmentTimeline {
			found = true
			if len(a.Payload)%24 != 0 {
				t.Fatalf("SegmentTimeline payload length %d not a multiple of 24", len(a.Payload))
			}
			if len(a.Payload)/24 != 2 {
				t.Errorf("got %d segment objects, want 2", len(a.Payload)/24)
			}
		}
	}
	if !found {
		t.Error("no SegmentTimeline attribute reported")
	}
}

func TestProcessorReportsEventStreamEvent(t *testing.T) {
	sink := parseFixtureInChunks(t, 4096)
	var payload []byte
	for _, a := range sink.Attributes {
		if a.Kind == AttrEventStreamEvent {
			payload = a.Payload
		}
	}
	if payload == nil {
		t.Fatal("no EventStreamEvent attribute reported")
	}
	if !bytes.Contains(payload, []byte("<payload>hi</payload>")) {
		t.Errorf("re-serialized event %q missing inner payload", payload)
	}
	if !bytes.HasPrefix(payload, []byte("<Event")) {
		t.Errorf("re-serialized event %q should start with <Event", payload)
	}
}

func TestProcessorReportsLocationAndBaseURLText(t *testing.T) {
	sink := parseFixtureInChunks(t, 4096)
	var sawLocation, sawText bool
	for _, a := range sink.Attributes {
		switch a.Kind {
		case AttrLocation:
			sawLocation = true
			if string(a.Payload) != "https://example.com/mpd2.xml" {
				t.Errorf("Location = %q", a.Payload)
			}
		case AttrText:
			sawText = true
			if string(a.Payload) != "https://example.com/base/" {
				t.Errorf("BaseURL text = %q", a.Payload)
			}
		}
	}
	if !sawLocation {
		t.Error("no Location attribute reported")
	}
	if !sawText {
		t.Error("no BaseURL text attribute reported")
	}
}

func TestProcessorRecoversFromBadMarkup(t *testing.T) {
	sink := NewRecordingSink()
	proc := NewProcessor(bytes.NewReader([]byte(`<MPD type="static"><!bogus><Period id="p0"></Period></MPD>`)), sink)
	if err := proc.Parse(); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(sink.CustomEvents) != 1 || sink.CustomEvents[0].Kind != CustomEventError {
		t.Fatalf("custom events = %+v, want exactly one error", sink.CustomEvents)
	}
	want := []TagKind{TagMPD, TagPeriod}
	if !reflect.DeepEqual(sink.TagOpens, want) {
		t.Errorf("tag opens = %v, want %v (parsing should continue past the bad construct)", sink.TagOpens, want)
	}
}

func TestProcessorRejectsReentrantParse(t *testing.T) {
	sink := &reentrantSink{}
	src := &chunkReader{r: bytes.NewReader([]byte(testFixture)), chunkSize: 4096}
	proc := NewProcessor(src, sink)
	sink.proc = proc

	defer func() {
		if recover() == nil {
			t.Fatal("expected Parse to panic on re-entrant call")
		}
	}()
	proc.Parse()
}

// reentrantSink calls back into Parse from within a Sink callback, which
// must panic rather than corrupt the Processor's state.
type reentrantSink struct {
	proc *Processor
}

func (s *reentrantSink) TagOpen(TagKind) { s.proc.Parse() }
func (s *reentrantSink) TagClose(TagKind) {}
func (s *reentrantSink) Attribute(AttrKind, []byte) {}
func (s *reentrantSink) CustomEvent(CustomEventKind, []byte) {}
