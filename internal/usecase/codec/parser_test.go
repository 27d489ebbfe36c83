package codec

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"sgf_studio/internal/domain/sgf"
	errs "sgf_studio/internal/errors"
)

func mustParse(t *testing.T, src string) *sgf.GameTree {
	t.Helper()
	tree, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse error: %v\nsource:\n%s", err, src)
	}
	return tree
}

func TestParseMainline(t *testing.T) {
	tree := mustParse(t, "(;GM[1]FF[4]SZ[19];B[dd];W[pd];B[dp])")
	if len(tree.Roots) != 1 {
		t.Fatalf("roots = %d, want 1", len(tree.Roots))
	}
	var got [][]sgf.Property
	for _, node := range tree.Mainline(tree.Roots[0]) {
		got = append(got, node.Properties)
	}
	want := [][]sgf.Property{
		{sgf.GameTypeGo, sgf.FileFormat(4), sgf.BoardSize(19)},
		{sgf.Move{Color: sgf.Black, At: sgf.CoordAt(3, 3)}},
		{sgf.Move{Color: sgf.White, At: sgf.CoordAt(15, 3)}},
		{sgf.Move{Color: sgf.Black, At: sgf.CoordAt(3, 15)}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mainline (-want +got):\n%s", diff)
	}
}

func TestParseVariations(t *testing.T) {
	tree := mustParse(t, "(;SZ[19];B[dd](;W[pp];B[pd])(;W[dp]))")
	root := tree.Roots[0]
	b := tree.Node(root).Children[0]
	children := tree.Node(b).Children
	if len(children) != 2 {
		t.Fatalf("B[dd] has %d children, want 2", len(children))
	}
	first := tree.Node(children[0]).Properties[0]
	second := tree.Node(children[1]).Properties[0]
	if sgf.Render(first) != "W[pp]" || sgf.Render(second) != "W[dp]" {
		t.Errorf("variation order = %s, %s", sgf.Render(first), sgf.Render(second))
	}
	if len(tree.Node(children[0]).Children) != 1 {
		t.Errorf("first variation should continue with B[pd]")
	}
}

func TestParseMultipleGames(t *testing.T) {
	tree := mustParse(t, "(;GM[1];B[aa])\n(;GM[1];W[bb])")
	if len(tree.Roots) != 2 {
		t.Fatalf("roots = %d, want 2", len(tree.Roots))
	}
	for _, root := range tree.Roots {
		if !tree.Node(root).IsRoot() {
			t.Errorf("root %d has a parent", root)
		}
	}
}

func TestParseWhitespaceAndEscapes(t *testing.T) {
	tree := mustParse(t, "  (\n ;\tC[he said \\]hi\\]]\n  AB [aa] [bb]\n)\n")
	got := tree.Node(tree.Roots[0]).Properties
	want := []sgf.Property{
		sgf.Comment("he said ]hi]"),
		sgf.Setup{Color: sgf.Black, Points: []sgf.Coord{sgf.CoordAt(0, 0), sgf.CoordAt(1, 1)}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("properties (-want +got):\n%s", diff)
	}
}

func TestParseUnknownPassthrough(t *testing.T) {
	tree := mustParse(t, "(;GM[1]MULTIGOGM[1]XX[a\\]b][c])")
	got := tree.Node(tree.Roots[0]).Properties
	want := []sgf.Property{
		sgf.GameTypeGo,
		sgf.Unknown{Tag: "MULTIGOGM", Raw: []string{"1"}},
		sgf.Unknown{Tag: "XX", Raw: []string{`a\]b`, "c"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("properties (-want +got):\n%s", diff)
	}
}

func TestParseEmptyInput(t *testing.T) {
	tree := mustParse(t, " \n")
	if len(tree.Roots) != 0 || tree.Len() != 0 {
		t.Errorf("empty input should give an empty forest, got %d roots", len(tree.Roots))
	}
}

func TestParseEmptyCollectionPromotesVariations(t *testing.T) {
	tree := mustParse(t, "((;B[aa])(;B[bb]))")
	if len(tree.Roots) != 2 {
		t.Errorf("roots = %d, want 2", len(tree.Roots))
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		wantLine int
		wantCol  int
		cause    error
	}{
		{name: "bad coordinate", src: "(;B[zz])", wantLine: 1, wantCol: 3, cause: errs.ErrInvalidProperty},
		{name: "bad size", src: "(;SZ[big])", wantLine: 1, wantCol: 3, cause: errs.ErrInvalidProperty},
		{name: "bad format", src: "(;FF[9])", wantLine: 1, wantCol: 3, cause: errs.ErrInvalidProperty},
		{name: "unterminated value", src: "(;C[oops", wantLine: 1, wantCol: 4},
		{name: "unclosed paren", src: "(;B[dd]", wantLine: 1, wantCol: 1},
		{name: "stray close", src: "(;B[dd]))", wantLine: 1, wantCol: 9},
		{name: "garbage", src: "(;B[dd]x)", wantLine: 1, wantCol: 8},
		{name: "lower case ident", src: "(;b[dd])", wantLine: 1, wantCol: 3},
		{name: "missing value", src: "(;B;W[dd])", wantLine: 1, wantCol: 3},
		{name: "node after variation", src: "(;B[aa](;W[bb]);B[cc])", wantLine: 1, wantCol: 16},
		{name: "second line", src: "(;GM[1]\n;W[st])", wantLine: 2, wantCol: 2, cause: errs.ErrInvalidProperty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, err := Parse(tt.src)
			if err == nil {
				t.Fatalf("expected parse error, got tree with %d nodes", tree.Len())
			}
			if tree != nil {
				t.Errorf("partial tree returned")
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if !errors.Is(err, errs.ErrMalformedRecord) {
				t.Errorf("error does not wrap ErrMalformedRecord: %v", err)
			}
			if tt.cause != nil && !errors.Is(err, tt.cause) {
				t.Errorf("error does not wrap %v: %v", tt.cause, err)
			}
			if pe.Line != tt.wantLine || pe.Column != tt.wantCol {
				t.Errorf("location = %d:%d, want %d:%d (%v)", pe.Line, pe.Column, tt.wantLine, tt.wantCol, err)
			}
		})
	}
}
