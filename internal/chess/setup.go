package chess

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLayout is returned when a textual layout cannot be turned into a
// board.
var ErrInvalidLayout = errors.New("invalid layout")

var backRank = []Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// DefaultSetup returns the standard 8x8 starting position. White occupies
// rows 0 and 1.
func DefaultSetup() *Board {
	b := NewBoard(8, 8)
	for col, kind := range backRank {
		b.Add(NewPiece(White, kind), Pos{Row: 0, Col: col})
		b.Add(NewPiece(Black, kind), Pos{Row: 7, Col: col})
	}
	b.AddPawnRow(1, White)
	b.AddPawnRow(6, Black)
	return b
}

// LayoutFromRows builds a board from rows of glyphs, top rank first, in the
// notation of Board.String: uppercase for White, lowercase for Black, '-' or
// '.' for an empty square. Spaces are ignored.
func LayoutFromRows(rows []string) (*Board, error) {
	if len(rows) == 0 || len(rows) > 9 {
		return nil, fmt.Errorf("%w: need 1 to 9 rows, got %d", ErrInvalidLayout, len(rows))
	}
	cells := make([]string, len(rows))
	for i, row := range rows {
		cells[i] = strings.ReplaceAll(row, " ", "")
	}
	cols := len(cells[0])
	if cols == 0 || cols > 26 {
		return nil, fmt.Errorf("%w: need 1 to 26 columns, got %d", ErrInvalidLayout, cols)
	}

	b := NewBoard(len(rows), cols)
	for i, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d squares, want %d", ErrInvalidLayout, i+1, len(row), cols)
		}
		boardRow := len(rows) - 1 - i
		for col := 0; col < cols; col++ {
			c := row[col]
			if c == '-' || c == '.' {
				continue
			}
			kind, ok := ParseKind(c)
			if !ok {
				return nil, fmt.Errorf("%w: unknown piece %q", ErrInvalidLayout, c)
			}
			side := White
			if c >= 'a' && c <= 'z' {
				side = Black
			}
			b.Add(NewPiece(side, kind), Pos{Row: boardRow, Col: col})
		}
	}
	return b, nil
}

// LayoutRows renders the grid in the notation accepted by LayoutFromRows.
func (b *Board) LayoutRows() []string {
	rows := make([]string, 0, b.Rows())
	for row := b.Rows() - 1; row >= 0; row-- {
		var sb strings.Builder
		for _, piece := range b.squares[row] {
			if piece == nil {
				sb.WriteByte('-')
				continue
			}
			sb.WriteByte(piece.Glyph())
		}
		rows = append(rows, sb.String())
	}
	return rows
}
