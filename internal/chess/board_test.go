package chess

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultSetupString(t *testing.T) {
	want := strings.Join([]string{
		"  A B C D E F G H   Captures: ",
		"8 r n b q k b n r 8 ",
		"7 p p p p p p p p 7 ",
		"6 - - - - - - - - 6 ",
		"5 - - - - - - - - 5 ",
		"4 - - - - - - - - 4 ",
		"3 - - - - - - - - 3 ",
		"2 P P P P P P P P 2 ",
		"1 R N B Q K B N R 1 ",
		"  a b c d e f g h   Captures: ",
	}, "\n")
	if diff := cmp.Diff(want, DefaultSetup().String()); diff != "" {
		t.Errorf("String() mismatch (-want +got):\n%s", diff)
	}
}

func TestBoardDimensions(t *testing.T) {
	b := NewBoard(5, 7)
	rows, cols := b.Dimensions()
	if rows != 5 || cols != 7 {
		t.Errorf("Dimensions() = (%d, %d), want (5, 7)", rows, cols)
	}
	tests := []struct {
		pos  Pos
		want bool
	}{
		{Pos{Row: 0, Col: 0}, true},
		{Pos{Row: 4, Col: 6}, true},
		{Pos{Row: 5, Col: 0}, false},
		{Pos{Row: 0, Col: 7}, false},
		{Pos{Row: -1, Col: 3}, false},
	}
	for _, tt := range tests {
		if got := b.InsideBounds(tt.pos); got != tt.want {
			t.Errorf("InsideBounds(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
	if b.Get(Pos{Row: 9, Col: 9}) != nil {
		t.Error("Get outside the board should return nil")
	}
}

func TestAddEvictsOccupant(t *testing.T) {
	b := NewBoard(8, 8)
	a1 := MustParsePos("a1")
	rook := b.Add(NewPiece(White, Rook), a1)
	if b.Get(a1) != rook || rook.Pos() != a1 || rook.Board() != b {
		t.Fatalf("Add did not place the rook on a1")
	}

	knight := b.Add(NewPiece(Black, Knight), a1)
	if b.Get(a1) != knight {
		t.Errorf("Get(a1) = %v, want black knight", b.Get(a1))
	}
	if len(b.Pieces(White)) != 0 {
		t.Errorf("white index = %v, want empty after eviction", b.Pieces(White))
	}
	checkIndex(t, b)

	if got := b.Remove(a1); got != knight {
		t.Errorf("Remove(a1) = %v, want the knight", got)
	}
	if got := b.Remove(a1); got != nil {
		t.Errorf("Remove on empty square = %v, want nil", got)
	}
	if !b.IsEmpty(a1) || len(b.Pieces(Black)) != 0 {
		t.Error("board not empty after Remove")
	}
}

func TestUndoMoveEmptyHistoryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("UndoMove on empty history did not panic")
		}
	}()
	NewBoard(8, 8).UndoMove()
}

func TestMovePerformedTwicePanics(t *testing.T) {
	b := DefaultSetup()
	m := NewMove(MustParsePos("e2"), MustParsePos("e4"))
	b.Move(m)
	b.UndoMove()
	defer func() {
		if recover() == nil {
			t.Error("performing a move twice did not panic")
		}
	}()
	b.Move(m)
}

func TestCapturedSummary(t *testing.T) {
	b := NewBoard(8, 8)
	b.Add(NewPiece(White, Rook), MustParsePos("a1"))
	b.Add(NewPiece(Black, Queen), MustParsePos("a8"))
	b.Add(NewPiece(Black, Bishop), MustParsePos("h8"))

	b.Move(NewMove(MustParsePos("a1"), MustParsePos("a8")))
	b.Move(NewMove(MustParsePos("a8"), MustParsePos("h8")))

	if diff := cmp.Diff([]Kind{Bishop, Queen}, b.Captured(Black)); diff != "" {
		t.Errorf("Captured(Black) mismatch (-want +got):\n%s", diff)
	}
	if got := b.Captured(White); len(got) != 0 {
		t.Errorf("Captured(White) = %v, want none", got)
	}
	lines := strings.Split(b.String(), "\n")
	if got, want := lines[len(lines)-1], "  a b c d e f g h   Captures: B Q "; got != want {
		t.Errorf("last line = %q, want %q", got, want)
	}
	checkIndex(t, b)
}

// Every raw move in the position must leave the board exactly as it was after
// perform followed by undo.
func assertRoundTrips(t *testing.T, b *Board) {
	t.Helper()
	before := b.String()
	for _, side := range []Side{White, Black} {
		for _, piece := range b.Pieces(side) {
			origin := piece.Pos()
			for to, m := range piece.LegalMoves() {
				b.Move(m)
				captured := m.Captured()
				var capturedAt Pos
				if captured != nil {
					capturedAt = captured.Pos()
				}
				b.UndoMove()
				if got := b.String(); got != before {
					t.Fatalf("%s %s→%s did not round-trip:\n%s\nwant\n%s", piece, origin, to, got, before)
				}
				if piece.Pos() != origin || b.Get(origin) != piece {
					t.Fatalf("%s not restored to %s", piece, origin)
				}
				if captured != nil && (captured.Pos() != capturedAt || b.Get(capturedAt) != captured) {
					t.Fatalf("captured %s not restored to %s", captured, capturedAt)
				}
				checkIndex(t, b)
			}
		}
	}
}

func TestPerformUndoRoundTrip(t *testing.T) {
	t.Run("default setup", func(t *testing.T) {
		assertRoundTrips(t, DefaultSetup())
	})

	t.Run("captures, en passant and castling", func(t *testing.T) {
		g := NewGame(DefaultSetup(), White)
		// e7e5 comes last so the d5 pawn can still take en passant.
		play(t, g, "e2e4", "d7d5", "e4d5", "g8f6", "g1f3", "a7a6", "f1c4", "e7e5")
		if diff := cmp.Diff([]Kind{Pawn}, g.Board().Captured(Black)); diff != "" {
			t.Errorf("Captured(black) mismatch (-want +got):\n%s", diff)
		}
		assertRoundTrips(t, g.Board())
		if _, ok := g.Board().Get(MustParsePos("d5")).LegalMoves()[MustParsePos("e6")].(*EnPassantMove); !ok {
			t.Error("expected an en passant move d5→e6")
		}
		if _, ok := g.Board().Get(MustParsePos("e1")).LegalMoves()[MustParsePos("g1")].(*CastlingMove); !ok {
			t.Error("expected a castling move e1→g1")
		}
	})
}

func TestThreatCheckConsistency(t *testing.T) {
	g := NewGame(DefaultSetup(), White)
	positions := []string{"e2e4", "f7f6", "d1h5", "g7g6", "h5g6"}
	for _, m := range positions {
		play(t, g, m)
		b := g.Board()
		for _, side := range []Side{White, Black} {
			var king *Piece
			for _, p := range b.Pieces(side) {
				if p.Kind() == King {
					king = p
				}
			}
			manual := false
			for _, p := range b.Pieces(side.Opponent()) {
				if _, ok := p.RecursionSafeLegalMoves()[king.Pos()]; ok {
					manual = true
				}
			}
			if got := b.KingInCheck(side); got != manual {
				t.Errorf("after %s: KingInCheck(%s) = %v, scan says %v", m, side, got, manual)
			}
		}
	}
	if !g.Board().KingInCheck(Black) {
		t.Error("black should be in check after h5xg6")
	}
}

func TestLayoutFromRows(t *testing.T) {
	t.Run("matches default", func(t *testing.T) {
		b := mustLayout(t,
			"r n b q k b n r",
			"p p p p p p p p",
			"- - - - - - - -",
			"- - - - - - - -",
			"- - - - - - - -",
			"- - - - - - - -",
			"P P P P P P P P",
			"R N B Q K B N R",
		)
		if diff := cmp.Diff(DefaultSetup().String(), b.String()); diff != "" {
			t.Errorf("layout mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff(DefaultSetup().LayoutRows(), b.LayoutRows()); diff != "" {
			t.Errorf("LayoutRows mismatch (-want +got):\n%s", diff)
		}
		checkIndex(t, b)
	})

	errCases := map[string][]string{
		"no rows":      nil,
		"ragged":       {"k--", "--"},
		"unknown":      {"kx-"},
		"too many row": {"k", "-", "-", "-", "-", "-", "-", "-", "-", "K"},
	}
	for name, rows := range errCases {
		t.Run(name, func(t *testing.T) {
			if _, err := LayoutFromRows(rows); err == nil {
				t.Errorf("LayoutFromRows(%q) succeeded, want error", rows)
			}
		})
	}
}
