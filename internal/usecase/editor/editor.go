package editor

import (
	"fmt"

	"sgf_studio/internal/domain/sgf"
	"sgf_studio/internal/usecase/board"
)

// Editor pairs a game tree with a cursor. It is not safe for concurrent use;
// callers serialise access to one Editor.
type Editor struct {
	tree   *sgf.GameTree
	cursor sgf.NodeID
}

// New wraps tree, putting the cursor on its first root. A tree without games
// gets an empty one so there is always somewhere to stand.
func New(tree *sgf.GameTree) *Editor {
	e := &Editor{}
	e.load(tree)
	return e
}

func (e *Editor) Tree() *sgf.GameTree {
	return e.tree
}

func (e *Editor) Cursor() sgf.NodeID {
	return e.cursor
}

// Current is the node under the cursor.
func (e *Editor) Current() *sgf.TreeNode {
	return e.tree.Node(e.cursor)
}

// Board replays the game up to the cursor.
func (e *Editor) Board() board.Board {
	return board.FromTree(e.tree, e.cursor)
}

// Apply runs one command. Navigation that cannot happen leaves the cursor where it is.
func (e *Editor) Apply(cmd Command) {
	switch c := cmd.(type) {
	case AddMove:
		e.cursor = e.tree.AddChild(e.cursor, c.Property)
	case SetProperty:
		node := e.Current()
		ident := c.Property.Ident()
		for i, p := range node.Properties {
			if p.Ident() == ident {
				node.Properties[i] = c.Property
				return
			}
		}
		node.Properties = append(node.Properties, c.Property)
	case RemoveProperty:
		node := e.Current()
		kept := node.Properties[:0]
		for _, p := range node.Properties {
			if p.Ident() != c.Ident {
				kept = append(kept, p)
			}
		}
		node.Properties = kept
	case DeleteCurrentNode:
		old := e.cursor
		if parent := e.Current().Parent; parent != sgf.NoNode {
			e.cursor = parent
			e.tree.RemoveSubtree(old)
		}
	case AppendVariation:
		e.tree.AddChild(e.cursor)
	case NavigateNext:
		if children := e.Current().Children; len(children) > 0 {
			e.cursor = children[0]
		}
	case NavigatePrev:
		if parent := e.Current().Parent; parent != sgf.NoNode {
			e.cursor = parent
		}
	case NavigateBranch:
		if children := e.Current().Children; c.Index >= 0 && c.Index < len(children) {
			e.cursor = children[c.Index]
		}
	case Load:
		e.load(c.Tree)
	default:
		panic(fmt.Sprintf("editor: unknown command %T", cmd))
	}
}

func (e *Editor) load(tree *sgf.GameTree) {
	if tree == nil {
		tree = &sgf.GameTree{}
	}
	if len(tree.Roots) == 0 {
		tree.AddRoot()
	}
	e.tree = tree
	e.cursor = tree.Roots[0]
}
