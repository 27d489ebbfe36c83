package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"sgf_studio/internal/domain/sgf"
	"sgf_studio/internal/usecase/board"
	"sgf_studio/internal/usecase/editor"
)

type mode int

const (
	modeBrowse mode = iota
	modeComment
)

type Model struct {
	title    string
	commands chan<- editor.Command
	save     func(text string) error

	state  stateMsg
	loaded bool
	mode   mode
	input  textinput.Model
	col    int
	row    int
	status string
	width  int
	height int

	// pending is set once a command is sent and cleared by the next state,
	// so every key acts on the position it was pressed over.
	pending bool
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)

	blackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#111111")).Background(lipgloss.Color("#D9B36C")).Bold(true)
	whiteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#D9B36C")).Bold(true)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B4F1D")).Background(lipgloss.Color("#D9B36C"))
	cursorCell = lipgloss.NewStyle().Background(lipgloss.Color("#5F5F87")).Foreground(lipgloss.Color("#EEEEEE")).Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)
)

func NewModel(title string, commands chan<- editor.Command, save func(text string) error) Model {
	ti := textinput.New()
	ti.Placeholder = "comment"
	ti.CharLimit = 1024
	ti.Width = 40

	return Model{
		title:    title,
		commands: commands,
		save:     save,
		input:    ti,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

type savedMsg struct {
	err error
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.state = msg
		m.loaded = true
		m.pending = false
		m.clampCursor()
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved"
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.mode == modeComment {
			return m.updateComment(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	switch key := msg.String(); key {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.row--
	case "down", "j":
		m.row++
	case "left", "h":
		m.col--
	case "right", "l":
		m.col++
	case "enter", " ":
		m.play(sgf.CoordAt(m.col, m.row))
	case "p":
		m.play(sgf.PassCoord())
	case "]", "n":
		m.send(editor.NavigateNext{})
	case "[", "b":
		m.send(editor.NavigatePrev{})
	case "v":
		if m.send(editor.AppendVariation{}) {
			m.status = "variation added"
		}
	case "x":
		if m.state.isRoot {
			m.status = "the root cannot be deleted"
			break
		}
		m.send(editor.DeleteCurrentNode{})
	case "c":
		m.mode = modeComment
		m.input.SetValue(m.state.comment)
		m.input.CursorEnd()
		return m, m.input.Focus()
	case "s":
		if m.pending {
			m.status = waitingStatus
			break
		}
		return m, m.saveRecord()
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			m.send(editor.NavigateBranch{Index: int(key[0] - '1')})
		}
	}
	m.clampCursor()
	return m, nil
}

func (m Model) updateComment(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.mode = modeBrowse
		m.input.Blur()
		if text := m.input.Value(); text != "" {
			m.send(editor.SetProperty{Property: sgf.Comment(text)})
		} else {
			m.send(editor.RemoveProperty{Ident: "C"})
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// play checks the move against the shown position before sending it.
func (m *Model) play(at sgf.Coord) {
	if !m.loaded {
		return
	}
	color := m.state.board.NextColor()
	if err := board.CheckMove(m.state.board, color, at); err != nil {
		m.status = err.Error()
		return
	}
	m.send(editor.AddMove{Property: sgf.Move{Color: color, At: at}})
}

const waitingStatus = "waiting for the editor, key dropped"

// send hands cmd to the editor unless an earlier command has not been shown yet.
func (m *Model) send(cmd editor.Command) bool {
	if m.pending {
		m.status = waitingStatus
		return false
	}
	select {
	case m.commands <- cmd:
		m.pending = true
		return true
	default:
		m.status = "busy, key dropped"
		return false
	}
}

func (m Model) saveRecord() tea.Cmd {
	if m.save == nil {
		return nil
	}
	text := m.state.sgf
	return func() tea.Msg {
		return savedMsg{err: m.save(text)}
	}
}

func (m *Model) clampCursor() {
	size := m.state.board.Size
	if size < 1 {
		size = sgf.MaxBoardSize
	}
	m.col = clamp(m.col, 0, size-1)
	m.row = clamp(m.row, 0, size-1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (m Model) View() string {
	if !m.loaded {
		return "\n  Loading...\n"
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderBoard(), m.renderPanel())

	var bottom string
	if m.mode == modeComment {
		bottom = "Comment: " + m.input.View()
	} else {
		bottom = helpStyle.Render("arrows move  enter play  p pass  [ ] prev/next  1-9 branch  v variation  x delete  c comment  s save  q quit")
	}
	if m.status != "" {
		bottom = statusStyle.Render(m.status) + "\n" + bottom
	}

	return "\n" + lipgloss.JoinVertical(lipgloss.Left, body, "", bottom) + "\n"
}

func (m Model) renderBoard() string {
	b := m.state.board
	ko, hasKo := b.Ko()

	var sb strings.Builder
	for row := 0; row < b.Size; row++ {
		for col := 0; col < b.Size; col++ {
			at := sgf.CoordAt(col, row)
			glyph, style := " . ", emptyStyle
			switch b.At(at) {
			case board.Black:
				glyph, style = " X ", blackStyle
			case board.White:
				glyph, style = " O ", whiteStyle
			default:
				if hasKo && ko == at {
					glyph = " # "
				}
			}
			if col == m.col && row == m.row {
				style = cursorCell
			}
			sb.WriteString(style.Render(glyph))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m Model) renderPanel() string {
	s := m.state
	b := s.board

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(m.title) + "\n\n")
	fmt.Fprintf(&sb, "Move: %d\n", b.MoveNumber)
	fmt.Fprintf(&sb, "To play: %s\n", colorName(b.NextColor()))
	fmt.Fprintf(&sb, "Captured: black %d, white %d\n", b.CapturedBlack, b.CapturedWhite)
	fmt.Fprintf(&sb, "Point: %s\n\n", sgf.CoordAt(m.col, m.row))

	sb.WriteString(titleStyle.Render("NODE") + "\n")
	fmt.Fprintf(&sb, "#%d, %d variation(s)\n", s.cursor, s.children)
	for _, p := range s.props {
		sb.WriteString(p + "\n")
	}
	if s.comment != "" {
		sb.WriteString("\n" + titleStyle.Render("COMMENT") + "\n" + s.comment + "\n")
	}
	if len(s.outline) > 0 {
		sb.WriteString("\n" + titleStyle.Render("TREE") + "\n" + strings.Join(s.outline, "\n") + "\n")
	}
	return panelStyle.Width(40).Render(sb.String())
}

func colorName(c sgf.Color) string {
	if c == sgf.Black {
		return "black"
	}
	return "white"
}
