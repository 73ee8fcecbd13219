package mpd

import (
	"math"
	"testing"
)

func TestParseISO8601Duration(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"PT10S", 10},
		{"PT1M30S", 90},
		{"PT1H", 3600},
		{"P1D", 24 * 60 * 60},
		{"P1Y2M3DT4H5M6S", 365*24*60*60 + 2*30*24*60*60 + 3*24*60*60 + 4*3600 + 5*60 + 6},
		{"PT0.5S", 0.5},
		{"PT0,5S", 0.5},
		{"PT1M0.25S", 60.25},
	}
	for _, test := range tests {
		got, err := parseISO8601Duration([]byte(test.input))
		if err != nil {
			t.Fatalf("parseISO8601Duration(%q): unexpected error: %v", test.input, err)
		}
		if got != test.expected {
			t.Errorf("parseISO8601Duration(%q) = %v, want %v", test.input, got, test.expected)
		}
	}
}

func TestParseISO8601DurationErrors(t *testing.T) {
	for _, input := range []string{"", "P", "PT", "10S", "PTXS"} {
		if _, err := parseISO8601Duration([]byte(input)); err == nil {
			t.Errorf("parseISO8601Duration(%q): expected error, got nil", input)
		}
	}
}

func TestParseU64OrBool(t *testing.T) {
	if v, err := parseU64OrBool([]byte("true")); err != nil || v != math.Inf(1) {
		t.Errorf("parseU64OrBool(true) = %v, %v; want +Inf, nil", v, err)
	}
	if v, err := parseU64OrBool([]byte("false")); err != nil || v != math.Inf(-1) {
		t.Errorf("parseU64OrBool(false) = %v, %v; want -Inf, nil", v, err)
	}
	if v, err := parseU64OrBool([]byte("7")); err != nil || v != 7 {
		t.Errorf("parseU64OrBool(7) = %v, %v; want 7, nil", v, err)
	}
}

func TestParseByteRange(t *testing.T) {
	start, end, err := parseByteRange([]byte("0-999"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start != 0 || end != 999 {
		t.Errorf("parseByteRange(0-999) = (%v, %v), want (0, 999)", start, end)
	}
	if _, _, err := parseByteRange([]byte("no-dash-here-that-is-numeric")); err == nil {
		t.Error("expected error for malformed byte range")
	}
}

func TestParseMaybeDivision(t *testing.T) {
	v, err := parseMaybeDivision([]byte("30000/1001"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 30000.0 / 1001.0
	if v != want {
		t.Errorf("parseMaybeDivision(30000/1001) = %v, want %v", v, want)
	}
	v, err = parseMaybeDivision([]byte("25"))
	if err != nil || v != 25 {
		t.Errorf("parseMaybeDivision(25) = %v, %v; want 25, nil", v, err)
	}
}
