package mpd

// TagKind identifies a DASH element the parser tracks structurally. Values
// are part of the wire ABI (see AttrKind) and must stay stable.
type TagKind uint8

const (
	TagMPD                  TagKind = 1
	TagPeriod               TagKind = 2
	TagUTCTiming            TagKind = 3
	TagAdaptationSet        TagKind = 4
	TagEventStream          TagKind = 5
	TagEventStreamElt       TagKind = 6
	TagRepresentation       TagKind = 7
	TagAccessibility        TagKind = 8
	TagContentComponent     TagKind = 9
	TagContentProtection    TagKind = 10
	TagEssentialProperty    TagKind = 11
	TagRole                 TagKind = 12
	TagSupplementalProperty TagKind = 13
	TagBaseURL              TagKind = 15
	TagSegmentTemplate      TagKind = 16
	TagSegmentBase          TagKind = 17
	TagSegmentList          TagKind = 18
	TagInbandEventStream    TagKind = 19
	TagSegmentURL           TagKind = 20
)

// String is only used for log/test output, never for wire encoding.
func (t TagKind) String() string {
	switch t {
	case TagMPD:
		return "MPD"
	case TagPeriod:
		return "Period"
	case TagUTCTiming:
		return "UTCTiming"
	case TagAdaptationSet:
		return "AdaptationSet"
	case TagEventStream:
		return "EventStream"
	case TagEventStreamElt:
		return "Event"
	case TagRepresentation:
		return "Representation"
	case TagAccessibility:
		return "Accessibility"
	case TagContentComponent:
		return "ContentComponent"
	case TagContentProtection:
		return "ContentProtection"
	case TagEssentialProperty:
		return "EssentialProperty"
	case TagRole:
		return "Role"
	case TagSupplementalProperty:
		return "SupplementalProperty"
	case TagBaseURL:
		return "BaseURL"
	case TagSegmentTemplate:
		return "SegmentTemplate"
	case TagSegmentBase:
		return "SegmentBase"
	case TagSegmentList:
		return "SegmentList"
	case TagInbandEventStream:
		return "InbandEventStream"
	case TagSegmentURL:
		return "SegmentURL"
	default:
		return "Unknown"
	}
}

// mainElements maps the recognized local names of the "main loop" elements
// (everything that isn't handled by a dedicated sub-routine) to their
// TagKind and attribute dispatcher.
var mainElements = map[string]struct {
	kind   TagKind
	report func(*reporter, attrIter)
}{
	"MPD":                   {TagMPD, reportMPDAttrs},
	"Period":                {TagPeriod, reportPeriodAttrs},
	"AdaptationSet":         {TagAdaptationSet, reportAdaptationSetAttrs},
	"Representation":        {TagRepresentation, reportRepresentationAttrs},
	"Accessibility":         {TagAccessibility, reportSchemeAttrs},
	"ContentComponent":      {TagContentComponent, reportContentComponentAttrs},
	"ContentProtection":     {TagContentProtection, reportContentProtectionAttrs},
	"EssentialProperty":     {TagEssentialProperty, reportSchemeAttrs},
	"InbandEventStream":     {TagInbandEventStream, reportSchemeAttrs},
	"Role":                  {TagRole, reportSchemeAttrs},
	"SupplementalProperty":  {TagSupplementalProperty, reportSchemeAttrs},
	"SegmentBase":           {TagSegmentBase, reportSegmentBaseAttrs},
	"SegmentTemplate":       {TagSegmentTemplate, reportSegmentTemplateAttrs},
	"SegmentList":           {TagSegmentList, reportSegmentBaseAttrs},
	"SegmentURL":            {TagSegmentURL, reportSegmentURLAttrs},
	"UTCTiming":             {TagUTCTiming, reportSchemeAttrs},
}

// Every element in mainElements also reports a TagClose on its End token;
// processMainElements' End branch looks the kind up in the same table instead of
// keeping a second, easily-drifting map in sync.
