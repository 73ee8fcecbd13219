package mpd

// AttrKind identifies a semantic attribute value projected from raw MPD
// XML onto the Sink. Numeric codes are part of the wire ABI (see sink.go's
// reporter for the per-kind wire encoding) and must stay stable; they mirror
// original_source's AttributeName enum one for one, including its gaps.
type AttrKind uint8

const (
	AttrID                         AttrKind = 0
	AttrDuration                   AttrKind = 1
	AttrProfiles                   AttrKind = 2
	AttrAudioSamplingRate          AttrKind = 3
	AttrCodecs                     AttrKind = 4
	AttrCodingDependency           AttrKind = 5
	AttrFrameRate                  AttrKind = 6
	AttrHeight                     AttrKind = 7
	AttrWidth                      AttrKind = 8
	AttrMaxPlayoutRate             AttrKind = 9
	AttrMaxSAPPeriod               AttrKind = 10
	AttrMimeType                   AttrKind = 11
	AttrSegmentProfiles            AttrKind = 12
	AttrContentProtectionValue     AttrKind = 13
	AttrContentProtectionKeyID     AttrKind = 14
	AttrContentProtectionCencPSSH  AttrKind = 15
	AttrSchemeIDURI                AttrKind = 16
	AttrSchemeValue                AttrKind = 17
	AttrMediaRange                 AttrKind = 18
	AttrSegmentTimeline            AttrKind = 19
	AttrStartNumber                AttrKind = 20
	AttrAvailabilityTimeComplete   AttrKind = 22
	AttrIndexRangeExact            AttrKind = 23
	AttrPresentationTimeOffset     AttrKind = 24
	AttrEventPresentationTime      AttrKind = 25
	AttrTimeScale                  AttrKind = 27
	AttrIndex                      AttrKind = 28
	AttrInitializationRange        AttrKind = 29
	AttrMedia                      AttrKind = 30
	AttrIndexRange                 AttrKind = 31
	AttrBitstreamSwitching         AttrKind = 32
	AttrType                       AttrKind = 33
	AttrAvailabilityStartTime      AttrKind = 34
	AttrAvailabilityEndTime        AttrKind = 35
	AttrPublishTime                AttrKind = 36
	AttrMinimumUpdatePeriod        AttrKind = 37
	AttrMinBufferTime              AttrKind = 38
	AttrTimeShiftBufferDepth       AttrKind = 39
	AttrSuggestedPresentationDelay AttrKind = 40
	AttrMaxSegmentDuration         AttrKind = 41
	AttrMaxSubsegmentDuration      AttrKind = 42
	AttrAvailabilityTimeOffset     AttrKind = 43
	AttrStart                      AttrKind = 45
	AttrXLinkHref                  AttrKind = 46
	AttrXLinkActuate               AttrKind = 47
	AttrGroup                      AttrKind = 48
	AttrMaxBandwidth               AttrKind = 49
	AttrMaxFrameRate               AttrKind = 50
	AttrMaxHeight                  AttrKind = 51
	AttrMaxWidth                   AttrKind = 52
	AttrMinBandwidth               AttrKind = 53
	AttrMinFrameRate               AttrKind = 54
	AttrMinHeight                  AttrKind = 55
	AttrMinWidth                   AttrKind = 56
	AttrSelectionPriority          AttrKind = 57
	AttrSegmentAlignment           AttrKind = 58
	AttrSubsegmentAlignment        AttrKind = 59
	AttrLanguage                   AttrKind = 60
	AttrContentType                AttrKind = 61
	AttrPar                        AttrKind = 62
	AttrBitrate                    AttrKind = 63
	AttrText                       AttrKind = 64
	AttrQualityRanking             AttrKind = 65
	AttrLocation                   AttrKind = 66
	AttrInitializationMedia        AttrKind = 67
	AttrMediaPresentationDuration  AttrKind = 68
	// AttrEventStreamEltRange is a legacy variant superseded by
	// AttrEventStreamEvent (see SPEC_FULL.md §5); kept for ABI parity, never
	// emitted by this implementation.
	AttrEventStreamEltRange AttrKind = 69
	AttrNamespace           AttrKind = 70
	AttrLabel               AttrKind = 71
	// AttrEventStreamEvent carries the byte-perfect re-serialized <Event>
	// sub-tree (see processor.go's processEventStreamEvent). Its code is
	// implementation-assigned per spec.md §6; 72 is the next free slot.
	AttrEventStreamEvent AttrKind = 72
)
