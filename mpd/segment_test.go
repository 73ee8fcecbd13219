package mpd

import "testing"

func TestBuildSegmentObjectDefaultsStartToTimeBase(t *testing.T) {
	obj, err := buildSegmentObject(newAttrIter([]byte(`d="1000" r="2"`)), 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj.Start != 500 || obj.Duration != 1000 || obj.RepeatCount != 2 {
		t.Errorf("got %+v, want Start=500 Duration=1000 RepeatCount=2", obj)
	}
}

func TestBuildSegmentObjectExplicitStart(t *testing.T) {
	obj, err := buildSegmentObject(newAttrIter([]byte(`t="200" d="1000"`)), 999)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if obj.Start != 200 {
		t.Errorf("got Start=%v, want 200 (explicit t overrides timeBase)", obj.Start)
	}
}

func TestSegmentObjectNextTimeBase(t *testing.T) {
	tests := []struct {
		obj  SegmentObject
		want float64
	}{
		{SegmentObject{Start: 0, Duration: 1000, RepeatCount: 0}, 1000},
		{SegmentObject{Start: 0, Duration: 1000, RepeatCount: 2}, 3000},
		{SegmentObject{Start: 500, Duration: 200, RepeatCount: 4}, 1500},
	}
	for _, test := range tests {
		if got := test.obj.nextTimeBase(); got != test.want {
			t.Errorf("%+v.nextTimeBase() = %v, want %v", test.obj, got, test.want)
		}
	}
}
