// Package chess implements the rules of chess: board state, move generation
// per piece type, check-safe move filtering and game results.
package chess

import (
	"fmt"
	"slices"
	"strings"
)

// Board owns a grid of pieces, an index of the live pieces of each side and
// the history of performed moves. Every piece in the grid appears exactly once
// in its side's index and vice versa.
type Board struct {
	squares [][]*Piece
	pieces  [2][]*Piece
	history []Move
}

// NewBoard returns an empty board with the given dimensions.
func NewBoard(rows, cols int) *Board {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("chess: invalid board size %dx%d", rows, cols))
	}
	squares := make([][]*Piece, rows)
	for i := range squares {
		squares[i] = make([]*Piece, cols)
	}
	return &Board{squares: squares}
}

func (b *Board) Rows() int { return len(b.squares) }
func (b *Board) Cols() int { return len(b.squares[0]) }

// Dimensions returns (rows, cols).
func (b *Board) Dimensions() (int, int) {
	return b.Rows(), b.Cols()
}

func (b *Board) InsideBounds(pos Pos) bool {
	return pos.Row >= 0 && pos.Row < b.Rows() && pos.Col >= 0 && pos.Col < b.Cols()
}

func (b *Board) IsEmpty(pos Pos) bool {
	return b.Get(pos) == nil
}

// Get returns the piece on pos, or nil when the square is empty or off the
// board.
func (b *Board) Get(pos Pos) *Piece {
	if !b.InsideBounds(pos) {
		return nil
	}
	return b.squares[pos.Row][pos.Col]
}

// IsThreatened reports whether any piece of side by can physically reach pos.
// Only recursion-safe move sets are consulted.
func (b *Board) IsThreatened(pos Pos, by Side) bool {
	for _, piece := range b.pieces[by] {
		if _, ok := piece.RecursionSafeLegalMoves()[pos]; ok {
			return true
		}
	}
	return false
}

// KingInCheck reports whether the king of side is threatened by the opponent.
// A side without a king is never in check.
func (b *Board) KingInCheck(side Side) bool {
	for _, piece := range b.pieces[side] {
		if piece.kind == King && b.IsThreatened(piece.pos, side.Opponent()) {
			return true
		}
	}
	return false
}

// Add places piece on pos, evicting whatever stood there, and returns piece.
func (b *Board) Add(piece *Piece, pos Pos) *Piece {
	if !b.InsideBounds(pos) {
		panic(fmt.Sprintf("chess: add outside board at %s", pos))
	}
	if occupant := b.Get(pos); occupant != nil {
		b.unindex(occupant)
	}
	b.squares[pos.Row][pos.Col] = piece
	piece.board = b
	piece.pos = pos
	if !slices.Contains(b.pieces[piece.side], piece) {
		b.pieces[piece.side] = append(b.pieces[piece.side], piece)
	}
	return piece
}

// AddPawnRow fills row with pawns of side.
func (b *Board) AddPawnRow(row int, side Side) {
	for col := 0; col < b.Cols(); col++ {
		b.Add(NewPiece(side, Pawn), Pos{Row: row, Col: col})
	}
}

// Remove clears pos and returns the piece that stood there, if any.
func (b *Board) Remove(pos Pos) *Piece {
	piece := b.Get(pos)
	if piece == nil {
		return nil
	}
	b.unindex(piece)
	b.squares[pos.Row][pos.Col] = nil
	return piece
}

func (b *Board) unindex(piece *Piece) {
	b.pieces[piece.side] = slices.DeleteFunc(b.pieces[piece.side], func(p *Piece) bool {
		return p == piece
	})
}

// Move performs move and pushes it onto the history.
func (b *Board) Move(move Move) {
	move.perform(b)
	b.history = append(b.history, move)
}

// UndoMove reverts the most recent move. Calling it on an empty history is a
// programming error and panics.
func (b *Board) UndoMove() {
	if len(b.history) == 0 {
		panic("chess: undo with empty history")
	}
	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]
	last.undo(b)
}

// leavesKingSafe performs move, checks whether side's king is attacked, and
// undoes it again.
func (b *Board) leavesKingSafe(move Move, side Side) bool {
	b.Move(move)
	defer b.UndoMove()
	return !b.KingInCheck(side)
}

// Pieces returns a copy of the index of side's live pieces.
func (b *Board) Pieces(side Side) []*Piece {
	return slices.Clone(b.pieces[side])
}

// History returns a copy of the performed moves, oldest first.
func (b *Board) History() []Move {
	return slices.Clone(b.history)
}

// LastMove returns the most recent move, if any.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return nil, false
	}
	return b.history[len(b.history)-1], true
}

// HasMoved reports whether piece has been moved by any move in the history.
func (b *Board) HasMoved(piece *Piece) bool {
	for _, m := range b.history {
		if m.moves(piece) {
			return true
		}
	}
	return false
}

// Captured returns the kinds of side's pieces that have been captured,
// sorted by type identifier.
func (b *Board) Captured(side Side) []Kind {
	var kinds []Kind
	for _, m := range b.history {
		if c := m.Captured(); c != nil && c.side == side {
			kinds = append(kinds, c.kind)
		}
	}
	slices.Sort(kinds)
	return kinds
}

// String renders the board with the top rank first, framed by column letters
// and row labels, followed by the capture summaries.
func (b *Board) String() string {
	var sb strings.Builder
	var cols strings.Builder
	cols.WriteString("  ")
	for col := 0; col < b.Cols(); col++ {
		fmt.Fprintf(&cols, "%-2s", strings.ToUpper(ColString(col)))
	}
	cols.WriteString("  ")

	sb.WriteString(cols.String())
	writeCaptures(&sb, b.Captured(White))
	sb.WriteByte('\n')
	for row := b.Rows() - 1; row >= 0; row-- {
		label := fmt.Sprintf("%-2s", RowString(row))
		sb.WriteString(label)
		for _, piece := range b.squares[row] {
			if piece == nil {
				sb.WriteString("- ")
				continue
			}
			sb.WriteByte(piece.Glyph())
			sb.WriteByte(' ')
		}
		sb.WriteString(label)
		sb.WriteByte('\n')
	}
	sb.WriteString(strings.ToLower(cols.String()))
	writeCaptures(&sb, b.Captured(Black))
	return sb.String()
}

func writeCaptures(sb *strings.Builder, kinds []Kind) {
	sb.WriteString("Captures: ")
	for _, k := range kinds {
		sb.WriteByte(byte(k))
		sb.WriteByte(' ')
	}
}
