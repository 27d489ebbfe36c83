package record

import (
	"strings"

	"sgf_studio/internal/domain/record"
	"sgf_studio/internal/domain/sgf"
	"sgf_studio/internal/usecase/board"
	"sgf_studio/internal/usecase/codec"
	"sgf_studio/internal/usecase/editor"
)

// StateOf snapshots an editor for clients. The caller holds the session lock.
func StateOf(key string, ed *editor.Editor) *record.State {
	node := ed.Current()

	children := make([]int, len(node.Children))
	for i, c := range node.Children {
		children[i] = int(c)
	}
	props := make([]string, len(node.Properties))
	for i, p := range node.Properties {
		props[i] = sgf.Render(p)
	}

	return &record.State{
		Key:        key,
		Cursor:     int(ed.Cursor()),
		Parent:     int(node.Parent),
		Children:   children,
		Properties: props,
		Board:      BoardViewOf(ed.Board()),
		SGF:        codec.Serialize(ed.Tree()),
	}
}

func BoardViewOf(b board.Board) record.BoardView {
	rows := make([]string, 0, b.Size)
	for _, row := range b.Rows() {
		var sb strings.Builder
		for _, cell := range row {
			switch cell {
			case board.Black:
				sb.WriteByte('B')
			case board.White:
				sb.WriteByte('W')
			default:
				sb.WriteByte('.')
			}
		}
		rows = append(rows, sb.String())
	}

	view := record.BoardView{
		Size:          b.Size,
		Rows:          rows,
		MoveNumber:    b.MoveNumber,
		CapturedBlack: b.CapturedBlack,
		CapturedWhite: b.CapturedWhite,
		NextColor:     b.NextColor().String(),
	}
	if ko, ok := b.Ko(); ok {
		view.Ko = &record.Point{Col: ko.Col(), Row: ko.Row()}
	}
	return view
}

// Summarize reads the searchable header from the first game and counts what
// is reachable in all of them.
func Summarize(key string, tree *sgf.GameTree) record.Summary {
	s := record.Summary{Key: key, Games: len(tree.Roots), BoardSize: sgf.MaxBoardSize}
	if len(tree.Roots) == 0 {
		return s
	}

	for _, p := range tree.Node(tree.Roots[0]).Properties {
		switch v := p.(type) {
		case sgf.PlayerName:
			if v.Color == sgf.Black {
				s.PlayerBlack = v.Name
			} else {
				s.PlayerWhite = v.Name
			}
		case sgf.Result:
			s.Result = string(v)
		case sgf.Date:
			s.Date = string(v)
		case sgf.BoardSize:
			s.BoardSize = int(v)
		case sgf.Komi:
			s.Komi = v.Points()
		}
	}

	for _, root := range tree.Roots {
		for range tree.Subtree(root) {
			s.Nodes++
		}
	}
	for _, node := range tree.Mainline(tree.Roots[0]) {
		for _, p := range node.Properties {
			if _, ok := p.(sgf.Move); ok {
				s.Moves++
			}
		}
	}
	return s
}
