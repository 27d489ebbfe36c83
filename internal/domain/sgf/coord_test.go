package sgf

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	errs "sgf_studio/internal/errors"
)

func TestParseCoord(t *testing.T) {
	tests := []struct {
		in      string
		col     int
		row     int
		wantErr bool
	}{
		{in: "aa", col: 0, row: 0},
		{in: "dp", col: 3, row: 15},
		{in: "sa", col: 18, row: 0},
		{in: "ss", col: 18, row: 18},
		{in: "ua", wantErr: true},
		{in: "Dd", wantErr: true},
		{in: "d", wantErr: true},
		{in: "ddd", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		c, err := ParseCoord(tt.in)
		if tt.wantErr {
			if !errors.Is(err, errs.ErrInvalidProperty) {
				t.Errorf("ParseCoord(%q) error = %v, want ErrInvalidProperty", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseCoord(%q): %v", tt.in, err)
		}
		if c.Col() != tt.col || c.Row() != tt.row {
			t.Errorf("ParseCoord(%q) = (%d,%d), want (%d,%d)", tt.in, c.Col(), c.Row(), tt.col, tt.row)
		}
		if c.String() != tt.in {
			t.Errorf("String() = %q, want %q", c.String(), tt.in)
		}
	}
}

func TestPass(t *testing.T) {
	c, err := ParseCoord("tt")
	if err != nil {
		t.Fatal(err)
	}
	if !c.IsPass() || c != PassCoord() {
		t.Errorf("tt should decode to the pass sentinel")
	}
	if c.String() != "tt" {
		t.Errorf("pass renders as %q", c.String())
	}
	empty, err := ParseMoveCoord("")
	if err != nil || !empty.IsPass() {
		t.Errorf("empty move value should be a pass, got %v, %v", empty, err)
	}
	if CoordAt(3, 3).IsPass() {
		t.Errorf("dd reported as pass")
	}
}

func TestPassHasNoPosition(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("Col on a pass should panic")
		}
	}()
	PassCoord().Col()
}

func TestParsePointListRectangle(t *testing.T) {
	got, err := ParsePointList("bb:ac")
	if err != nil {
		t.Fatal(err)
	}
	want := []Coord{CoordAt(0, 1), CoordAt(1, 1), CoordAt(0, 2), CoordAt(1, 2)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rectangle mismatch (-want +got):\n%s", diff)
	}
	if _, err := ParsePointList("tt"); err == nil {
		t.Errorf("pass accepted as a setup point")
	}
}
