package sgf

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "sgf_studio/internal/errors"
)

func TestDecodeProperty(t *testing.T) {
	tests := []struct {
		name   string
		ident  string
		values []string
		want   Property
	}{
		{"black move", "B", []string{"dd"}, Move{Color: Black, At: CoordAt(3, 3)}},
		{"white pass", "W", []string{"tt"}, Move{Color: White, At: PassCoord()}},
		{"add black", "AB", []string{"dd", "pp"}, Setup{Color: Black, Points: []Coord{CoordAt(3, 3), CoordAt(15, 15)}}},
		{"add white", "AW", []string{"dp"}, Setup{Color: White, Points: []Coord{CoordAt(3, 15)}}},
		{"komi", "KM", []string{"6.5"}, Komi(13)},
		{"komi rounds to half", "KM", []string{"7.3"}, Komi(15)},
		{"komi negative", "KM", []string{"-0.5"}, Komi(-1)},
		{"size", "SZ", []string{"9"}, BoardSize(9)},
		{"format", "FF", []string{"4"}, FileFormat(4)},
		{"game", "GM", []string{"1"}, GameTypeGo},
		{"black player", "PB", []string{"Honinbo Shusaku"}, PlayerName{Color: Black, Name: "Honinbo Shusaku"}},
		{"comment escapes", "C", []string{`a\]b\\c`}, Comment(`a]b\c`)},
		{"charset", "CA", []string{"UTF-8"}, Charset("UTF-8")},
		{"unknown", "XY", []string{`raw\]`, ""}, Unknown{Tag: "XY", Raw: []string{`raw\]`, ""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeProperty(tt.ident, tt.values)
			if err != nil {
				t.Fatalf("DecodeProperty: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			if got.Ident() != tt.ident {
				t.Errorf("Ident() = %q, want %q", got.Ident(), tt.ident)
			}
		})
	}
}

func TestDecodePropertyErrors(t *testing.T) {
	tests := []struct {
		ident  string
		values []string
	}{
		{"B", []string{"zz"}},
		{"B", []string{"dd", "ee"}},
		{"AB", []string{"dd", "d"}},
		{"SZ", []string{"nineteen"}},
		{"SZ", []string{"0"}},
		{"FF", []string{"5"}},
		{"FF", []string{"x"}},
		{"KM", []string{"six"}},
		{"KM", []string{"Inf"}},
		{"KM", []string{"-inf"}},
		{"KM", []string{"NaN"}},
		{"KM", []string{"1e300"}},
		{"KM", []string{"16384"}},
		{"GM", []string{"go"}},
	}
	for _, tt := range tests {
		if _, err := DecodeProperty(tt.ident, tt.values); !errors.Is(err, errs.ErrInvalidProperty) {
			t.Errorf("DecodeProperty(%s%v) error = %v, want ErrInvalidProperty", tt.ident, tt.values, err)
		}
	}
}

func TestKomiFromPointsSaturates(t *testing.T) {
	tests := []struct {
		points float64
		want   string
	}{
		{math.Inf(1), "16383"},
		{math.Inf(-1), "-16383"},
		{1e300, "16383"},
		{math.NaN(), "0"},
		{-0.5, "-0.5"},
	}
	for _, tt := range tests {
		k := KomiFromPoints(tt.points)
		if got := k.String(); got != tt.want {
			t.Errorf("KomiFromPoints(%v) = %q, want %q", tt.points, got, tt.want)
		}
		back, err := DecodeProperty("KM", []string{k.String()})
		if err != nil || back != k {
			t.Errorf("KM[%s] decodes to %v, %v", k, back, err)
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		prop Property
		want string
	}{
		{Move{Color: Black, At: CoordAt(3, 3)}, "B[dd]"},
		{Move{Color: White, At: PassCoord()}, "W[tt]"},
		{Setup{Color: Black, Points: []Coord{CoordAt(3, 3), CoordAt(15, 15)}}, "AB[dd][pp]"},
		{Komi(13), "KM[6.5]"},
		{Komi(12), "KM[6]"},
		{Komi(-1), "KM[-0.5]"},
		{Comment("a]b"), `C[a\]b]`},
		{PlayerName{Color: White, Name: "Go Seigen"}, "PW[Go Seigen]"},
		{Unknown{Tag: "MN", Raw: []string{"1", `x\]`}}, `MN[1][x\]]`},
	}
	for _, tt := range tests {
		if got := Render(tt.prop); got != tt.want {
			t.Errorf("Render(%#v) = %q, want %q", tt.prop, got, tt.want)
		}
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	for _, s := range []string{"plain", `back\slash`, "close]bracket", `both\]`} {
		if got := UnescapeText(EscapeText(s)); got != s {
			t.Errorf("escape round trip of %q gave %q", s, got)
		}
	}
	if got := UnescapeText("soft\\\nbreak"); got != "softbreak" {
		t.Errorf("soft line break kept: %q", got)
	}
}
