package chess

import (
	"slices"
	"testing"
)

// squares parses a list of square names.
func squares(names ...string) []Pos {
	out := make([]Pos, 0, len(names))
	for _, n := range names {
		out = append(out, MustParsePos(n))
	}
	return out
}

// destinations returns the keys of a move map in row-major order.
func destinations(moves map[Pos]Move) []Pos {
	out := make([]Pos, 0, len(moves))
	for to := range moves {
		out = append(out, to)
	}
	slices.SortFunc(out, Pos.Compare)
	return out
}

func mustLayout(t *testing.T, rows ...string) *Board {
	t.Helper()
	b, err := LayoutFromRows(rows)
	if err != nil {
		t.Fatalf("LayoutFromRows() error: %v", err)
	}
	return b
}

// play makes each move given as "e2e4", failing the test if it is not
// offered by LegalMovesWithCheck.
func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		from, to := MustParsePos(m[:2]), MustParsePos(m[2:])
		if !slices.Contains(g.LegalMovesWithCheck(from), to) {
			t.Fatalf("move %s not legal for %s; legal from %s: %v", m, g.CurrentSide(), from, g.LegalMovesWithCheck(from))
		}
		g.MakeMove(from, to)
	}
}

// checkIndex verifies that the grid and the per-side index agree.
func checkIndex(t *testing.T, b *Board) {
	t.Helper()
	seen := 0
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			pos := Pos{Row: row, Col: col}
			piece := b.Get(pos)
			if piece == nil {
				continue
			}
			seen++
			if piece.Pos() != pos || piece.Board() != b {
				t.Errorf("piece on %s records %s", pos, piece.Pos())
			}
			n := 0
			for _, p := range b.Pieces(piece.Side()) {
				if p == piece {
					n++
				}
			}
			if n != 1 {
				t.Errorf("piece on %s appears %d times in index", pos, n)
			}
		}
	}
	if total := len(b.Pieces(White)) + len(b.Pieces(Black)); total != seen {
		t.Errorf("index holds %d pieces, grid holds %d", total, seen)
	}
}
