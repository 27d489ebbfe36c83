package sgf

import (
	"fmt"
	"iter"
)

// NodeID addresses a node inside a GameTree. IDs are never reused.
type NodeID int

// NoNode marks the absent parent of a root.
const NoNode NodeID = -1

// TreeNode — один узел записи: свойства в исходном порядке, родитель и
// упорядоченный список вариантов (первый ребёнок — основная линия).
type TreeNode struct {
	Properties []Property
	Parent     NodeID
	Children   []NodeID
}

func (n *TreeNode) IsRoot() bool {
	return n.Parent == NoNode
}

// GameTree is an append-only arena of nodes plus one root per game in the file.
// Removed subtrees stay allocated, so every issued NodeID stays valid.
// The zero value is a tree holding no games.
type GameTree struct {
	nodes []TreeNode
	Roots []NodeID
}

// NewGameTree returns a tree with a single root bearing no properties.
func NewGameTree() *GameTree {
	t := &GameTree{}
	t.AddRoot()
	return t
}

// Len is the number of allocated nodes, detached ones included.
func (t *GameTree) Len() int {
	return len(t.nodes)
}

// Contains reports whether id was issued by this tree.
func (t *GameTree) Contains(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

// Node returns the node at id. The pointer is valid until the next AddRoot or
// AddChild. An id not issued by this tree is a programming error.
func (t *GameTree) Node(id NodeID) *TreeNode {
	if !t.Contains(id) {
		panic(fmt.Sprintf("sgf: node %d does not exist (tree has %d nodes)", id, len(t.nodes)))
	}
	return &t.nodes[id]
}

// AddRoot appends a new top-level game and returns its root.
func (t *GameTree) AddRoot(props ...Property) NodeID {
	id := t.alloc(NoNode, props)
	t.Roots = append(t.Roots, id)
	return id
}

// AddChild appends a node as the last child of parent.
func (t *GameTree) AddChild(parent NodeID, props ...Property) NodeID {
	t.Node(parent)
	id := t.alloc(parent, props)
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

func (t *GameTree) alloc(parent NodeID, props []Property) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, TreeNode{
		Properties: append([]Property(nil), props...),
		Parent:     parent,
	})
	return id
}

// RemoveSubtree unlinks id from its parent. Roots are left alone.
func (t *GameTree) RemoveSubtree(id NodeID) {
	parent := t.Node(id).Parent
	if parent == NoNode {
		return
	}
	p := &t.nodes[parent]
	for i, c := range p.Children {
		if c == id {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			return
		}
	}
}

// Mainline yields start and then the first child of each node down to a leaf.
func (t *GameTree) Mainline(start NodeID) iter.Seq2[NodeID, *TreeNode] {
	return func(yield func(NodeID, *TreeNode) bool) {
		for id := start; ; {
			node := t.Node(id)
			if !yield(id, node) || len(node.Children) == 0 {
				return
			}
			id = node.Children[0]
		}
	}
}

// Subtree yields every node reachable from start in depth-first pre-order,
// children left to right.
func (t *GameTree) Subtree(start NodeID) iter.Seq2[NodeID, *TreeNode] {
	return func(yield func(NodeID, *TreeNode) bool) {
		stack := []NodeID{start}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			node := t.Node(id)
			if !yield(id, node) {
				return
			}
			for i := len(node.Children) - 1; i >= 0; i-- {
				stack = append(stack, node.Children[i])
			}
		}
	}
}

// Path returns the ids from the root of id's game down to id itself.
func (t *GameTree) Path(id NodeID) []NodeID {
	var path []NodeID
	for cur := id; cur != NoNode; cur = t.Node(cur).Parent {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
