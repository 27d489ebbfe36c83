package board

import (
	"errors"
	"testing"

	"sgf_studio/internal/domain/sgf"
	"sgf_studio/internal/usecase/codec"
)

func pt(t *testing.T, s string) sgf.Coord {
	t.Helper()
	c, err := sgf.ParseCoord(s)
	if err != nil {
		t.Fatalf("ParseCoord(%q): %v", s, err)
	}
	return c
}

// lastOnMainline parses src and returns the board at the end of the first game's mainline.
func lastOnMainline(t *testing.T, src string) (*sgf.GameTree, sgf.NodeID, Board) {
	t.Helper()
	tree, err := codec.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	var last sgf.NodeID
	for id := range tree.Mainline(tree.Roots[0]) {
		last = id
	}
	return tree, last, FromTree(tree, last)
}

func TestEmptyTreeGivesEmptyBoard(t *testing.T) {
	tree := sgf.NewGameTree()
	for _, b := range []Board{
		FromTree(tree, tree.Roots[0]),
		FromTree(tree, 99),
		FromTree(&sgf.GameTree{}, 0),
		FromTree(nil, 0),
	} {
		if b.MoveNumber != 0 || b.Size != 19 {
			t.Errorf("got move=%d size=%d", b.MoveNumber, b.Size)
		}
		if _, ok := b.Ko(); ok {
			t.Errorf("empty board has a ko point")
		}
		for _, row := range b.Rows() {
			for _, c := range row {
				if c != Empty {
					t.Fatalf("empty board has stones:\n%s", b.String())
				}
			}
		}
	}
}

func TestMainlineAccumulates(t *testing.T) {
	_, _, b := lastOnMainline(t, "(;GM[1]FF[4]SZ[19];B[dd];W[pp];B[dp])")
	if b.At(pt(t, "dd")) != Black || b.At(pt(t, "pp")) != White || b.At(pt(t, "dp")) != Black {
		t.Errorf("stones missing:\n%s", b.String())
	}
	if b.MoveNumber != 3 {
		t.Errorf("MoveNumber = %d, want 3", b.MoveNumber)
	}
	if b.NextColor() != sgf.White {
		t.Errorf("NextColor = %v, want W", b.NextColor())
	}
}

func TestBranchIsolation(t *testing.T) {
	tree, err := codec.Parse("(;B[dd](;W[pp])(;W[dp]))")
	if err != nil {
		t.Fatal(err)
	}
	bNode := tree.Node(tree.Roots[0]).Children[0]
	first := FromTree(tree, tree.Node(bNode).Children[0])
	second := FromTree(tree, tree.Node(bNode).Children[1])

	if first.At(pt(t, "pp")) != White || first.At(pt(t, "dp")) != Empty {
		t.Errorf("W[pp] branch:\n%s", first.String())
	}
	if second.At(pt(t, "dp")) != White || second.At(pt(t, "pp")) != Empty {
		t.Errorf("W[dp] branch:\n%s", second.String())
	}
}

func TestSetupStonesDoNotCount(t *testing.T) {
	_, _, b := lastOnMainline(t, "(;AB[dd][pp]AW[dp])")
	if b.MoveNumber != 0 {
		t.Errorf("MoveNumber = %d, want 0", b.MoveNumber)
	}
	if b.At(pt(t, "dd")) != Black || b.At(pt(t, "pp")) != Black || b.At(pt(t, "dp")) != White {
		t.Errorf("setup stones wrong:\n%s", b.String())
	}
}

func TestSingleCapture(t *testing.T) {
	_, _, b := lastOnMainline(t, "(;AW[bb]AB[ab][ba][bc];B[cb])")
	if b.At(pt(t, "bb")) != Empty {
		t.Errorf("white stone at bb survived:\n%s", b.String())
	}
	if b.CapturedBlack != 0 || b.CapturedWhite != 1 {
		t.Errorf("captures = black %d white %d, want 0 and 1", b.CapturedBlack, b.CapturedWhite)
	}
	if _, ok := b.Ko(); ok {
		t.Errorf("capturing stone has several liberties, no ko expected")
	}
}

const koShape = "(;AB[ed][de][ef]AW[fd][ee][ge][ff];B[fe]"

func TestKoSetAndCleared(t *testing.T) {
	_, _, b := lastOnMainline(t, koShape+")")
	ko, ok := b.Ko()
	if !ok || ko != pt(t, "ee") {
		t.Fatalf("Ko() = %v, %v; want ee\n%s", ko, ok, b.String())
	}
	if b.CapturedWhite != 1 {
		t.Errorf("CapturedWhite = %d, want 1", b.CapturedWhite)
	}

	_, _, b = lastOnMainline(t, koShape+";AB[aa])")
	if _, ok := b.Ko(); ok {
		t.Errorf("setup stones should clear ko")
	}

	_, _, b = lastOnMainline(t, koShape+";W[pp])")
	if _, ok := b.Ko(); ok {
		t.Errorf("a move elsewhere should clear ko")
	}

	_, _, b = lastOnMainline(t, koShape+";W[tt])")
	if _, ok := b.Ko(); ok {
		t.Errorf("a pass should clear ko")
	}
	if b.MoveNumber != 2 {
		t.Errorf("pass should count as a move, MoveNumber = %d", b.MoveNumber)
	}
}

func TestNoKoOnMultiStoneCapture(t *testing.T) {
	_, _, b := lastOnMainline(t, "(;AW[ee][ef]AB[ed][de][df][eg][ff];B[fe])")
	if b.CapturedWhite != 2 {
		t.Fatalf("CapturedWhite = %d, want 2\n%s", b.CapturedWhite, b.String())
	}
	if b.At(pt(t, "ee")) != Empty || b.At(pt(t, "ef")) != Empty {
		t.Errorf("captured stones still on board:\n%s", b.String())
	}
	if _, ok := b.Ko(); ok {
		t.Errorf("multi-stone capture must not set ko")
	}
}

func TestWhiteCapturesBlack(t *testing.T) {
	_, _, b := lastOnMainline(t, "(;AB[aa];W[ba];B[pp];W[ab])")
	if b.At(pt(t, "aa")) != Empty || b.CapturedBlack != 1 || b.CapturedWhite != 0 {
		t.Errorf("black corner stone should be captured: black=%d white=%d\n%s",
			b.CapturedBlack, b.CapturedWhite, b.String())
	}
}

func TestSuicideIsReplayedNotRejected(t *testing.T) {
	_, _, b := lastOnMainline(t, "(;AW[ba][ab];B[aa])")
	if b.At(pt(t, "aa")) != Black {
		t.Errorf("replay must store the move as given:\n%s", b.String())
	}
	if b.MoveNumber != 1 {
		t.Errorf("MoveNumber = %d, want 1", b.MoveNumber)
	}
}

func TestBoardSize(t *testing.T) {
	_, _, b := lastOnMainline(t, "(;SZ[9];B[cc];W[pp])")
	if b.Size != 9 || len(b.Rows()) != 9 {
		t.Fatalf("Size = %d, want 9", b.Size)
	}
	if b.At(pt(t, "cc")) != Black {
		t.Errorf("cc missing")
	}
	if b.MoveNumber != 2 {
		t.Errorf("off-board move should still count, MoveNumber = %d", b.MoveNumber)
	}
}

func TestString(t *testing.T) {
	_, _, b := lastOnMainline(t, "(;SZ[3];B[aa];W[cc])")
	want := "X . .\n. . .\n. . O\n"
	if got := b.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestCheckMove(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		color sgf.Color
		at    string
		want  error
	}{
		{name: "legal", src: "(;B[dd])", color: sgf.White, at: "pp"},
		{name: "pass", src: "(;B[dd])", color: sgf.White, at: "tt"},
		{name: "occupied", src: "(;B[dd])", color: sgf.White, at: "dd", want: ErrOccupied},
		{name: "off board", src: "(;SZ[9];B[dd])", color: sgf.White, at: "pp", want: ErrOffBoard},
		{name: "suicide", src: "(;AW[ba][ab])", color: sgf.Black, at: "aa", want: ErrSuicide},
		{name: "capture is not suicide", src: "(;AW[bb]AB[ab][ba][bc])", color: sgf.Black, at: "cb"},
		{name: "ko", src: koShape + ")", color: sgf.White, at: "ee", want: ErrKo},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, b := lastOnMainline(t, tt.src)
			before := b.String()
			err := CheckMove(b, tt.color, pt(t, tt.at))
			if tt.want == nil && err != nil {
				t.Fatalf("CheckMove = %v, want nil", err)
			}
			if tt.want != nil {
				if !errors.Is(err, tt.want) || !IsIllegal(err) {
					t.Fatalf("CheckMove = %v, want %v", err, tt.want)
				}
			}
			if b.String() != before {
				t.Errorf("CheckMove modified the board")
			}
		})
	}
}
