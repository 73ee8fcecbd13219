package mpd

import (
	"math"
	"strconv"
)

// This file is the Go counterpart of original_source's utils.rs: pure
// functions projecting raw XML attribute bytes onto semantic Go values.
// Beyond the string conversions strconv needs, only a fractional duration
// component allocates (readNextFloat's normalized copy), and all report errors
// through the same *ParsingError type so the caller can hand them straight
// to reportError.

func parseU64(b []byte) (uint64, error) {
	v, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return 0, newParsingError("invalid unsigned integer %q: %v", b, err)
	}
	return v, nil
}

func parseI64(b []byte) (int64, error) {
	v, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, newParsingError("invalid integer %q: %v", b, err)
	}
	return v, nil
}

func parseF64(b []byte) (float64, error) {
	v, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return 0, newParsingError("invalid float %q: %v", b, err)
	}
	return v, nil
}

func parseBool(b []byte) (bool, error) {
	switch string(b) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, newParsingError("invalid boolean: %s", b)
	}
}

// parseU64OrBool smuggles a boolean through an f64 channel: "true" becomes
// +Inf, "false" becomes -Inf, anything else is parsed as a plain u64. Used
// for segmentAlignment/subsegmentAlignment, which the DASH schema defines
// as a union of xs:boolean and xs:unsignedInt.
func parseU64OrBool(b []byte) (float64, error) {
	switch string(b) {
	case "true":
		return math.Inf(1), nil
	case "false":
		return math.Inf(-1), nil
	default:
		v, err := parseU64(b)
		if err != nil {
			return 0, err
		}
		return float64(v), nil
	}
}

// parseByteRange parses "<u64>-<u64>" into (start, end).
func parseByteRange(b []byte) (start, end float64, err error) {
	i := 0
	for {
		if i >= len(b) {
			return 0, 0, newParsingError("invalid byte-range: end encountered too soon in %q", b)
		}
		if b[i] == '-' {
			break
		}
		i++
	}
	startU, err := parseU64(b[:i])
	if err != nil {
		return 0, 0, err
	}
	endU, err := parseU64(b[i+1:])
	if err != nil {
		return 0, 0, err
	}
	return float64(startU), float64(endU), nil
}

// parseMaybeDivision parses either a plain float or a "a/b" rational (used
// for frameRate/minFrameRate/maxFrameRate, e.g. "30000/1001").
func parseMaybeDivision(b []byte) (float64, error) {
	for i, c := range b {
		if c == '/' {
			num, err := parseF64(b[:i])
			if err != nil {
				return 0, err
			}
			den, err := parseF64(b[i+1:])
			if err != nil {
				return 0, err
			}
			return num / den, nil
		}
	}
	return parseF64(b)
}

// parseISO8601Duration parses P[nY][nM][nD][T[nH][nM][n(.|,)nS]] into a
// number of seconds, using the approximate calendar factors
// year=365d, month=30d, day=24h. The decimal separator of the seconds
// component may be '.' or ','. Mirrors original_source/utils.rs exactly,
// including its rejection of a bare "P" with nothing after it.
func parseISO8601Duration(b []byte) (float64, error) {
	if len(b) == 0 || b[0] != 'P' {
		return 0, newParsingError("unexpected duration %q: should start with \"P\"", b)
	}
	if len(b) < 2 {
		return 0, newParsingError("unexpected duration %q: nothing after \"P\"", b)
	}

	var result float64
	base := 1
	if b[1] != 'T' {
		for {
			number, i, err := readNextFloat(b, base)
			if err != nil {
				return 0, err
			}
			if i == len(b) {
				return 0, newParsingError("invalid ISO 8601 duration %q: end encountered too soon", b)
			}
			var factor float64
			switch b[i] {
			case 'Y':
				factor = 365 * 24 * 60 * 60
			case 'M':
				factor = 30 * 24 * 60 * 60
			case 'D':
				factor = 24 * 60 * 60
			default:
				return 0, newParsingError("invalid duration %q: unexpected unit %q", b, b[i])
			}
			result += number * factor
			base = i + 1
			if base == len(b) {
				return result, nil
			}
			if b[base] == 'T' {
				break
			}
		}
	}
	base++
	for {
		number, i, err := readNextFloat(b, base)
		if err != nil {
			return 0, err
		}
		if i == len(b) {
			return 0, newParsingError("invalid ISO 8601 duration %q: end encountered too soon", b)
		}
		var factor float64
		switch b[i] {
		case 'H':
			factor = 60 * 60
		case 'M':
			factor = 60
		case 'S':
			factor = 1
		default:
			return 0, newParsingError("invalid duration %q: unexpected unit %q", b, b[i])
		}
		result += number * factor
		base = i + 1
		if base == len(b) {
			return result, nil
		}
	}
}

// readNextFloat reads a decimal number (with an optional '.'- or
// ','-separated fractional part) starting at offset, returning its value
// and the offset of the first byte following it.
func readNextFloat(b []byte, offset int) (float64, int, error) {
	i := offset
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	if i == len(b) || (b[i] != '.' && b[i] != ',') {
		v, err := parseU64(b[offset:i])
		if err != nil {
			return 0, 0, err
		}
		return float64(v), i, nil
	}

	fracStart := i
	i++
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		i++
	}
	normalized := make([]byte, 0, i-offset)
	normalized = append(normalized, b[offset:fracStart]...)
	normalized = append(normalized, '.')
	normalized = append(normalized, b[fracStart+1:i]...)
	v, err := parseF64(normalized)
	if err != nil {
		return 0, 0, err
	}
	return v, i, nil
}

// putU32BE appends v's 4 big-endian bytes to dst.
func putU32BE(dst []byte, v uint32) []byte {
	return append(dst, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}
