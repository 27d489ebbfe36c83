package board

import (
	"strings"

	"sgf_studio/internal/domain/sgf"
)

type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

func cellOf(c sgf.Color) Cell {
	if c == sgf.Black {
		return Black
	}
	return White
}

func (c Cell) opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// Board is a position reconstructed from a game tree. It is never stored in
// the tree; build a fresh one with FromTree for every query.
type Board struct {
	Size  int
	cells [sgf.MaxBoardSize][sgf.MaxBoardSize]Cell

	// MoveNumber counts B/W moves on the path, setup stones excluded.
	MoveNumber int
	// CapturedBlack and CapturedWhite count removed stones of that colour.
	CapturedBlack int
	CapturedWhite int

	ko      sgf.Coord
	hasKo   bool
	lastMov sgf.Color
}

type point struct{ col, row int }

// New returns an empty board of the given dimension, clamped to 1..19.
func New(size int) Board {
	if size < 1 || size > sgf.MaxBoardSize {
		size = sgf.MaxBoardSize
	}
	return Board{Size: size}
}

// FromTree replays the path from the root of cursor's game down to cursor.
// An empty tree or a cursor the tree never issued gives an empty 19x19 board.
func FromTree(tree *sgf.GameTree, cursor sgf.NodeID) Board {
	b := New(sgf.MaxBoardSize)
	if tree == nil || !tree.Contains(cursor) {
		return b
	}
	for _, id := range tree.Path(cursor) {
		for _, prop := range tree.Node(id).Properties {
			b.apply(prop)
		}
	}
	return b
}

func (b *Board) apply(prop sgf.Property) {
	switch p := prop.(type) {
	case sgf.BoardSize:
		size := int(p)
		if size > sgf.MaxBoardSize {
			size = sgf.MaxBoardSize
		}
		b.Size = size
	case sgf.Setup:
		for _, c := range p.Points {
			if b.onBoard(c) {
				b.set(c, cellOf(p.Color))
			}
		}
		b.hasKo = false
	case sgf.Move:
		b.MoveNumber++
		b.lastMov = p.Color
		b.play(cellOf(p.Color), p.At)
	}
}

func (b *Board) play(color Cell, at sgf.Coord) {
	b.hasKo = false
	if !b.onBoard(at) {
		return
	}
	b.set(at, color)

	captured := 0
	var lastCaptured point
	for _, n := range b.neighbours(point{at.Col(), at.Row()}) {
		if b.cells[n.row][n.col] != color.opponent() {
			continue
		}
		group := b.group(n)
		if b.liberties(group) > 0 {
			continue
		}
		for _, s := range group {
			b.cells[s.row][s.col] = Empty
		}
		if color == Black {
			b.CapturedWhite += len(group)
		} else {
			b.CapturedBlack += len(group)
		}
		captured += len(group)
		lastCaptured = group[0]
	}

	if captured == 1 && b.liberties(b.group(point{at.Col(), at.Row()})) == 1 {
		b.ko = sgf.CoordAt(lastCaptured.col, lastCaptured.row)
		b.hasKo = true
	}
}

// At returns the state of a cell. Passes and off-board points read as Empty.
func (b *Board) At(c sgf.Coord) Cell {
	if !b.onBoard(c) {
		return Empty
	}
	return b.cells[c.Row()][c.Col()]
}

// Ko returns the point that may not be refilled right now, if any.
func (b *Board) Ko() (sgf.Coord, bool) {
	return b.ko, b.hasKo
}

// NextColor is the side to play: the opponent of the last mover, black first.
func (b *Board) NextColor() sgf.Color {
	if b.lastMov == 0 {
		return sgf.Black
	}
	return b.lastMov.Opponent()
}

func (b *Board) onBoard(c sgf.Coord) bool {
	return !c.IsPass() && c.Col() < b.Size && c.Row() < b.Size
}

func (b *Board) set(c sgf.Coord, v Cell) {
	b.cells[c.Row()][c.Col()] = v
}

func (b *Board) neighbours(p point) []point {
	out := make([]point, 0, 4)
	if p.row > 0 {
		out = append(out, point{p.col, p.row - 1})
	}
	if p.row+1 < b.Size {
		out = append(out, point{p.col, p.row + 1})
	}
	if p.col > 0 {
		out = append(out, point{p.col - 1, p.row})
	}
	if p.col+1 < b.Size {
		out = append(out, point{p.col + 1, p.row})
	}
	return out
}

// group flood-fills the stones connected to p.
func (b *Board) group(p point) []point {
	color := b.cells[p.row][p.col]
	var seen [sgf.MaxBoardSize][sgf.MaxBoardSize]bool
	seen[p.row][p.col] = true
	stack := []point{p}
	var out []point
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, cur)
		for _, n := range b.neighbours(cur) {
			if !seen[n.row][n.col] && b.cells[n.row][n.col] == color {
				seen[n.row][n.col] = true
				stack = append(stack, n)
			}
		}
	}
	return out
}

// liberties counts distinct empty points next to the group.
func (b *Board) liberties(group []point) int {
	var seen [sgf.MaxBoardSize][sgf.MaxBoardSize]bool
	n := 0
	for _, s := range group {
		for _, nb := range b.neighbours(s) {
			if b.cells[nb.row][nb.col] == Empty && !seen[nb.row][nb.col] {
				seen[nb.row][nb.col] = true
				n++
			}
		}
	}
	return n
}

// String draws the position with X for black and O for white.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			switch b.cells[row][col] {
			case Black:
				sb.WriteByte('X')
			case White:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Rows copies the visible part of the grid, rows top to bottom.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.Size)
	for row := range rows {
		rows[row] = append([]Cell(nil), b.cells[row][:b.Size]...)
	}
	return rows
}
