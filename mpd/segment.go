package mpd

// SegmentObject is the Go counterpart of original_source's SegmentObject:
// one derived <S> element from a <SegmentTimeline>. Fields are float64
// (rather than the more natural uint64) to keep a single wire-encoding rule
// for the whole SegmentTimeline attribute (see reportSegments in sink.go).
type SegmentObject struct {
	Start       float64
	Duration    float64
	RepeatCount float64
}

// nextTimeBase computes the running time_base carried from one <S> to the
// next (spec.md §4.4): the end of this segment's last repeated occurrence.
func (s SegmentObject) nextTimeBase() float64 {
	if s.RepeatCount > 0 {
		return s.Start + s.Duration*(s.RepeatCount+1)
	}
	return s.Start + s.Duration
}

// buildSegmentObject derives a SegmentObject from an <S> element's
// attributes plus the running time_base. Only a parsing error (malformed
// attribute list or t/d/r value) is returned; unrecognized attributes are
// ignored.
func buildSegmentObject(attrs attrIter, timeBase float64) (SegmentObject, error) {
	var obj SegmentObject
	hasT := false

	for {
		a, ok, err := attrs.next()
		if err != nil {
			return obj, err
		}
		if !ok {
			break
		}
		switch string(a.name) {
		case "t":
			v, err := parseU64(a.value)
			if err != nil {
				return obj, err
			}
			obj.Start = float64(v)
			hasT = true
		case "d":
			v, err := parseU64(a.value)
			if err != nil {
				return obj, err
			}
			obj.Duration = float64(v)
		case "r":
			v, err := parseU64(a.value)
			if err != nil {
				return obj, err
			}
			obj.RepeatCount = float64(v)
		}
	}

	if !hasT {
		obj.Start = timeBase
	}
	return obj, nil
}
