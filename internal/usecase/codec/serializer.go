package codec

import (
	"io"
	"strings"

	"sgf_studio/internal/domain/sgf"
)

// Serialize writes each root as its own "(...)" collection with no separators.
// Straight-line play stays inline; every child of a branching node gets its
// own parentheses.
func Serialize(tree *sgf.GameTree) string {
	var builder strings.Builder
	for _, root := range tree.Roots {
		builder.WriteString("(")
		serializeNode(&builder, tree, root)
		builder.WriteString(")")
	}
	return builder.String()
}

// WriteTo streams the serialized tree to w.
func WriteTo(w io.Writer, tree *sgf.GameTree) error {
	_, err := io.WriteString(w, Serialize(tree))
	return err
}

func serializeNode(builder *strings.Builder, tree *sgf.GameTree, id sgf.NodeID) {
	for {
		node := tree.Node(id)
		builder.WriteString(";")
		for _, prop := range node.Properties {
			builder.WriteString(sgf.Render(prop))
		}

		switch len(node.Children) {
		case 0:
			return
		case 1:
			id = node.Children[0]
			continue
		}

		for _, child := range node.Children {
			builder.WriteString("(")
			serializeNode(builder, tree, child)
			builder.WriteString(")")
		}
		return
	}
}
