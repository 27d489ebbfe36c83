package sgf

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	errs "sgf_studio/internal/errors"
)

// Color is the side that owns a move, setup list or player name.
type Color uint8

const (
	Black Color = iota + 1
	White
)

func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

func (c Color) String() string {
	switch c {
	case Black:
		return "B"
	case White:
		return "W"
	}
	return "?"
}

// Property is one tagged datum of a node. The set of implementations is closed:
// the known variants below plus Unknown, which carries anything else verbatim.
type Property interface {
	// Ident is the property identifier, also used as the upsert key.
	Ident() string
	// Values returns the escaped text of each bracketed value.
	Values() []string
	isProperty()
}

type (
	Application string
	Charset     string
	Date        string
	Result      string
	Comment     string

	// Move is B or W. At may be the pass sentinel.
	Move struct {
		Color Color
		At    Coord
	}

	// Setup is AB or AW.
	Setup struct {
		Color  Color
		Points []Coord
	}

	// FileFormat is FF, a version in 1..4.
	FileFormat int

	// GameType is GM; 1 is Go.
	GameType int

	// Komi is KM stored in half points.
	Komi int

	// BoardSize is SZ.
	BoardSize int

	// PlayerName is PB or PW.
	PlayerName struct {
		Color Color
		Name  string
	}

	// Unknown keeps an unrecognised property exactly as it was read.
	Unknown struct {
		Tag string
		Raw []string
	}
)

const GameTypeGo GameType = 1

func (Application) Ident() string  { return "AP" }
func (Charset) Ident() string      { return "CA" }
func (Date) Ident() string         { return "DT" }
func (Result) Ident() string       { return "RE" }
func (Comment) Ident() string      { return "C" }
func (FileFormat) Ident() string   { return "FF" }
func (GameType) Ident() string     { return "GM" }
func (Komi) Ident() string         { return "KM" }
func (BoardSize) Ident() string    { return "SZ" }
func (m Move) Ident() string       { return m.Color.String() }
func (s Setup) Ident() string      { return "A" + s.Color.String() }
func (p PlayerName) Ident() string { return "P" + p.Color.String() }
func (u Unknown) Ident() string    { return u.Tag }

func (a Application) Values() []string { return []string{EscapeText(string(a))} }
func (c Charset) Values() []string     { return []string{EscapeText(string(c))} }
func (d Date) Values() []string        { return []string{EscapeText(string(d))} }
func (r Result) Values() []string      { return []string{EscapeText(string(r))} }
func (c Comment) Values() []string     { return []string{EscapeText(string(c))} }
func (f FileFormat) Values() []string  { return []string{strconv.Itoa(int(f))} }
func (g GameType) Values() []string    { return []string{strconv.Itoa(int(g))} }
func (k Komi) Values() []string        { return []string{k.String()} }
func (s BoardSize) Values() []string   { return []string{strconv.Itoa(int(s))} }
func (m Move) Values() []string        { return []string{m.At.String()} }
func (p PlayerName) Values() []string  { return []string{EscapeText(p.Name)} }
func (u Unknown) Values() []string     { return u.Raw }

func (s Setup) Values() []string {
	values := make([]string, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.String()
	}
	return values
}

func (Application) isProperty() {}
func (Charset) isProperty()     {}
func (Date) isProperty()        {}
func (Result) isProperty()      {}
func (Comment) isProperty()     {}
func (FileFormat) isProperty()  {}
func (GameType) isProperty()    {}
func (Komi) isProperty()        {}
func (BoardSize) isProperty()   {}
func (Move) isProperty()        {}
func (Setup) isProperty()       {}
func (PlayerName) isProperty()  {}
func (Unknown) isProperty()     {}

// MaxKomi bounds komi in points either way; it fits half points in an int16.
const MaxKomi = 16383

// KomiFromPoints rounds to the nearest half point, saturating at ±MaxKomi.
// NaN reads as zero.
func KomiFromPoints(points float64) Komi {
	switch {
	case math.IsNaN(points):
		return 0
	case points > MaxKomi:
		points = MaxKomi
	case points < -MaxKomi:
		points = -MaxKomi
	}
	return Komi(roundHalfAway(points * 2))
}

func (k Komi) Points() float64 {
	return float64(k) / 2
}

func (k Komi) String() string {
	n := int(k)
	sign := ""
	if n < 0 {
		sign, n = "-", -n
	}
	if n%2 == 0 {
		return fmt.Sprintf("%s%d", sign, n/2)
	}
	return fmt.Sprintf("%s%d.5", sign, n/2)
}

func roundHalfAway(f float64) int {
	if f < 0 {
		return -int(-f + 0.5)
	}
	return int(f + 0.5)
}

// Render returns the canonical text of a property, e.g. "AB[dd][pp]".
func Render(p Property) string {
	var b strings.Builder
	b.WriteString(p.Ident())
	for _, v := range p.Values() {
		b.WriteByte('[')
		b.WriteString(v)
		b.WriteByte(']')
	}
	return b.String()
}

// DecodeProperty interprets raw values for an identifier. Values must be given
// as they appear between the brackets, escapes included.
func DecodeProperty(ident string, values []string) (Property, error) {
	switch ident {
	case "B", "W":
		v, err := single(ident, values)
		if err != nil {
			return nil, err
		}
		at, err := ParseMoveCoord(v)
		if err != nil {
			return nil, err
		}
		return Move{Color: colorOf(ident[0]), At: at}, nil
	case "AB", "AW":
		points := make([]Coord, 0, len(values))
		for _, v := range values {
			list, err := ParsePointList(v)
			if err != nil {
				return nil, err
			}
			points = append(points, list...)
		}
		return Setup{Color: colorOf(ident[1]), Points: points}, nil
	case "PB", "PW":
		v, err := single(ident, values)
		if err != nil {
			return nil, err
		}
		return PlayerName{Color: colorOf(ident[1]), Name: UnescapeText(v)}, nil
	case "FF":
		n, err := integer(ident, values)
		if err != nil {
			return nil, err
		}
		if n < 1 || n > 4 {
			return nil, fmt.Errorf("%w: FF must be 1-4, got %d", errs.ErrInvalidProperty, n)
		}
		return FileFormat(n), nil
	case "GM":
		n, err := integer(ident, values)
		if err != nil {
			return nil, err
		}
		if n < 1 {
			return nil, fmt.Errorf("%w: GM must be positive, got %d", errs.ErrInvalidProperty, n)
		}
		return GameType(n), nil
	case "SZ":
		n, err := integer(ident, values)
		if err != nil {
			return nil, err
		}
		if n < 1 || n > 255 {
			return nil, fmt.Errorf("%w: SZ must be a positive integer, got %d", errs.ErrInvalidProperty, n)
		}
		return BoardSize(n), nil
	case "KM":
		v, err := single(ident, values)
		if err != nil {
			return nil, err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: KM must be a number, got %q", errs.ErrInvalidProperty, v)
		}
		if math.Abs(f) > MaxKomi {
			return nil, fmt.Errorf("%w: KM must be within ±%d, got %q", errs.ErrInvalidProperty, MaxKomi, v)
		}
		return KomiFromPoints(f), nil
	case "AP", "CA", "DT", "RE", "C":
		v, err := single(ident, values)
		if err != nil {
			return nil, err
		}
		text := UnescapeText(v)
		switch ident {
		case "AP":
			return Application(text), nil
		case "CA":
			return Charset(text), nil
		case "DT":
			return Date(text), nil
		case "RE":
			return Result(text), nil
		}
		return Comment(text), nil
	}
	raw := make([]string, len(values))
	copy(raw, values)
	return Unknown{Tag: ident, Raw: raw}, nil
}

func colorOf(b byte) Color {
	if b == 'B' {
		return Black
	}
	return White
}

func single(ident string, values []string) (string, error) {
	if len(values) != 1 {
		return "", fmt.Errorf("%w: %s takes exactly one value, got %d", errs.ErrInvalidProperty, ident, len(values))
	}
	return values[0], nil
}

func integer(ident string, values []string) (int, error) {
	v, err := single(ident, values)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", errs.ErrInvalidProperty, ident, v)
	}
	return n, nil
}

// UnescapeText resolves backslash escapes and drops escaped line breaks.
func UnescapeText(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case '\n':
			if i+1 < len(s) && s[i+1] == '\r' {
				i++
			}
		case '\r':
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
		default:
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// EscapeText is the inverse of UnescapeText for ']' and '\'.
func EscapeText(s string) string {
	if !strings.ContainsAny(s, `]\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == ']' || s[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}
