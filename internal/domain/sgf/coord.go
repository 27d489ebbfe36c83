package sgf

import (
	"fmt"

	errs "sgf_studio/internal/errors"
)

// MaxBoardSize is the largest board expressible with the a..s coordinate alphabet.
const MaxBoardSize = 19

const (
	coordMask = 0b11111
	passIndex = MaxBoardSize
)

// Coord упаковывает координату SGF в uint16:
// биты [4:0] — колонка (первая буква), биты [9:5] — строка (вторая буква).
// Пара индексов (19, 19), то есть "tt", обозначает пас.
type Coord uint16

// CoordAt builds a coordinate from 0-based column and row indices.
// Indices outside [0,19) are a programming error.
func CoordAt(col, row int) Coord {
	if col < 0 || col >= MaxBoardSize || row < 0 || row >= MaxBoardSize {
		panic(fmt.Sprintf("sgf: coordinate (%d,%d) out of range", col, row))
	}
	return Coord(col | row<<5)
}

// PassCoord returns the pass sentinel "tt".
func PassCoord() Coord {
	return Coord(passIndex | passIndex<<5)
}

func (c Coord) IsPass() bool {
	return int(c)&coordMask == passIndex
}

// Col returns the 0-based column. Calling it on a pass is a programming error.
func (c Coord) Col() int {
	c.mustBePoint()
	return int(c) & coordMask
}

// Row returns the 0-based row. Calling it on a pass is a programming error.
func (c Coord) Row() int {
	c.mustBePoint()
	return int(c>>5) & coordMask
}

func (c Coord) mustBePoint() {
	if c.IsPass() {
		panic("sgf: pass has no board position")
	}
}

func (c Coord) String() string {
	return string([]byte{'a' + byte(int(c)&coordMask), 'a' + byte(int(c>>5)&coordMask)})
}

// ParseCoord decodes a two-letter point such as "dd". "tt" is the pass sentinel.
func ParseCoord(s string) (Coord, error) {
	if s == "tt" {
		return PassCoord(), nil
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("%w: coordinate %q must be two letters", errs.ErrInvalidProperty, s)
	}
	col, ok := letterIndex(s[0])
	if !ok {
		return 0, fmt.Errorf("%w: coordinate %q: bad first letter %q", errs.ErrInvalidProperty, s, s[0])
	}
	row, ok := letterIndex(s[1])
	if !ok {
		return 0, fmt.Errorf("%w: coordinate %q: bad second letter %q", errs.ErrInvalidProperty, s, s[1])
	}
	return CoordAt(col, row), nil
}

// ParseMoveCoord is ParseCoord that also accepts the empty FF4 pass spelling.
func ParseMoveCoord(s string) (Coord, error) {
	if s == "" {
		return PassCoord(), nil
	}
	return ParseCoord(s)
}

// ParsePointList decodes one value of a point list: either a single point or
// a compressed rectangle "aa:cc", expanded row by row.
func ParsePointList(s string) ([]Coord, error) {
	if len(s) != 5 || s[2] != ':' {
		c, err := ParseCoord(s)
		if err != nil {
			return nil, err
		}
		if c.IsPass() {
			return nil, fmt.Errorf("%w: pass is not a point", errs.ErrInvalidProperty)
		}
		return []Coord{c}, nil
	}
	from, err := ParseCoord(s[:2])
	if err != nil {
		return nil, err
	}
	to, err := ParseCoord(s[3:])
	if err != nil {
		return nil, err
	}
	if from.IsPass() || to.IsPass() {
		return nil, fmt.Errorf("%w: pass is not a point", errs.ErrInvalidProperty)
	}
	c0, c1 := minMax(from.Col(), to.Col())
	r0, r1 := minMax(from.Row(), to.Row())
	points := make([]Coord, 0, (c1-c0+1)*(r1-r0+1))
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			points = append(points, CoordAt(col, row))
		}
	}
	return points, nil
}

func letterIndex(b byte) (int, bool) {
	if b < 'a' || b >= 'a'+MaxBoardSize {
		return 0, false
	}
	return int(b - 'a'), true
}

func minMax(a, b int) (int, int) {
	if a > b {
		return b, a
	}
	return a, b
}
