package cost

import (
	"encoding/json"
	"math"
	"net/url"
	"testing"
)

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"abc", 0},
		{"3,50", 3.5},
		{"12.5kg", 12.5},
		{"0.5", 0.5},
		{"  7", 7},
		{"\t\n42", 42},
		{"-3", -3},
		{"+2", 2},
		{".5", 0.5},
		{"5.", 5},
		{"1e3", 1000},
		{"2.5E-1", 0.25},
		{"1e", 1},
		{"1e+", 1},
		{"1.e2", 100},
		{"-", 0},
		{".", 0},
		{"-.", 0},
		{"1,234,5", 1.234},
		{"0x1A", 0},
		{"Infinity", 0},
		{"1e400", 0},
		{"12 000", 12},
		{"10%", 10},
	}

	for _, tt := range tests {
		if got := ParseNumeric(tt.in); got != tt.want {
			t.Errorf("ParseNumeric(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

type label string

func (l label) String() string { return string(l) }

// brokenLabel panics when printed.
type brokenLabel struct{}

func (brokenLabel) String() string { panic("boom") }

func TestParseNumericNonString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"int", 42, 42},
		{"negative int", -7, -7},
		{"float64", 3.25, 3.25},
		{"float32", float32(0.5), 0.5},
		{"bool", true, 0},
		{"bytes", []byte("4,2"), 4.2},
		{"json number", json.Number("2.5"), 2.5},
		{"stringer", label("9 pcs"), 9},
		{"nil pointer stringer", (*url.URL)(nil), 0},
		{"panicking stringer", brokenLabel{}, 0},
		{"struct", struct{}{}, 0},
		{"slice", []int{1, 2}, 0},
		{"NaN", math.NaN(), 0},
		{"+Inf", math.Inf(1), 0},
		{"-Inf", math.Inf(-1), 0},
		{"large float", 1e21, 1e21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseNumeric(tt.in); got != tt.want {
				t.Errorf("ParseNumeric(%s) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParseNumericAlwaysFinite(t *testing.T) {
	inputs := []string{
		"", "NaN", "nan", "inf", "-Infinity", "1e999", "-1e999", "1e-999",
		"∞", "١٢٣", "--5", "++5", "+-5", "e5", ".e5", "0.0.0", "\x00", "🍅",
	}
	for _, in := range inputs {
		got := ParseNumeric(in)
		if math.IsNaN(got) || math.IsInf(got, 0) {
			t.Errorf("ParseNumeric(%q) = %v, want finite", in, got)
		}
	}
}
