package mpd

import "fmt"

// CustomEventKind distinguishes the two custom-event variants the ABI
// exposes through onCustomEvent. Log is reserved and never produced by
// this package.
type CustomEventKind uint8

const (
	CustomEventLog   CustomEventKind = 0
	CustomEventError CustomEventKind = 1
)

// ParsingError is a soft, non-fatal error: it is reported through the Sink
// as a CustomEventError and parsing continues from the next recoverable
// token. It never aborts the state machine.
type ParsingError struct {
	msg string
}

func newParsingError(format string, args ...any) *ParsingError {
	return &ParsingError{msg: fmt.Sprintf(format, args...)}
}

func (e *ParsingError) Error() string { return e.msg }

// reportError turns any error (tokenizer, scalar-parse, or attribute-decode)
// into a CustomEventError on the given sink, carrying the error's message
// text as-is.
func reportError(r *reporter, err error) {
	if err == nil {
		return
	}
	r.reportCustomEvent(CustomEventError, []byte(err.Error()))
}
