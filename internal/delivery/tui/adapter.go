package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"sgf_studio/internal/domain/sgf"
	"sgf_studio/internal/usecase/board"
	"sgf_studio/internal/usecase/codec"
	"sgf_studio/internal/usecase/editor"
)

// stateMsg is a copy of everything the view needs, taken on the editor's
// goroutine and handed to the program.
type stateMsg struct {
	board    board.Board
	cursor   sgf.NodeID
	isRoot   bool
	children int
	props    []string
	comment  string
	outline  []string
	sgf      string
}

func snapshot(e *editor.Editor) stateMsg {
	node := e.Current()
	msg := stateMsg{
		board:    e.Board(),
		cursor:   e.Cursor(),
		isRoot:   node.IsRoot(),
		children: len(node.Children),
		props:    make([]string, 0, len(node.Properties)),
		outline:  outline(e.Tree(), e.Cursor()),
		sgf:      codec.Serialize(e.Tree()),
	}
	for _, p := range node.Properties {
		if c, ok := p.(sgf.Comment); ok {
			msg.comment = string(c)
			continue
		}
		msg.props = append(msg.props, sgf.Render(p))
	}
	return msg
}

const (
	outlineLines = 12
	outlineLabel = 28
)

// outline lists the cursor's game one node per line. Indentation grows by one
// step below each node with variations and the cursor is marked with "*".
// Only a window of outlineLines around the cursor is kept.
func outline(t *sgf.GameTree, cursor sgf.NodeID) []string {
	root := t.Path(cursor)[0]
	depth := map[sgf.NodeID]int{root: 0}
	var lines []string
	at := 0
	for id, node := range t.Subtree(root) {
		d := depth[id]
		next := d
		if len(node.Children) > 1 {
			next++
		}
		for _, child := range node.Children {
			depth[child] = next
		}

		marker := "  "
		if id == cursor {
			marker = "* "
			at = len(lines)
		}
		labels := make([]string, 0, len(node.Properties))
		for _, p := range node.Properties {
			labels = append(labels, sgf.Render(p))
		}
		label := []rune(strings.Join(labels, " "))
		if len(label) > outlineLabel {
			label = append(label[:outlineLabel-1], '~')
		}
		line := fmt.Sprintf("%s%s[%d] %s", strings.Repeat("  ", d), marker, id, string(label))
		lines = append(lines, strings.TrimRight(line, " "))
	}

	start := clamp(at-outlineLines/2, 0, max(len(lines)-outlineLines, 0))
	return lines[start:min(start+outlineLines, len(lines))]
}

// sender is the part of *tea.Program the adapter needs.
type sender interface {
	Send(msg tea.Msg)
}

// Adapter connects editor.Run to a running bubbletea program.
type Adapter struct {
	program  sender
	commands <-chan editor.Command
	done     <-chan struct{}
}

func (a *Adapter) Render(e *editor.Editor) error {
	a.program.Send(snapshot(e))
	return nil
}

func (a *Adapter) NextCommand() (editor.Command, error) {
	select {
	case cmd := <-a.commands:
		return cmd, nil
	case <-a.done:
		return nil, editor.ErrQuit
	}
}

// Run shows ed in the terminal until the user quits. save receives the
// record text whenever the user asks to write it out.
func Run(ed *editor.Editor, title string, save func(text string) error) error {
	commands := make(chan editor.Command, 64)
	done := make(chan struct{})

	p := tea.NewProgram(NewModel(title, commands, save), tea.WithAltScreen())
	adapter := &Adapter{program: p, commands: commands, done: done}

	errc := make(chan error, 1)
	go func() {
		errc <- editor.Run(ed, adapter)
	}()

	_, err := p.Run()
	close(done)
	if loopErr := <-errc; err == nil {
		err = loopErr
	}
	return err
}
