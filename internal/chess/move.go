package chess

import "fmt"

// Move is a single ply. A move is built once, performed at most once through
// Board.Move, and undone only by Board.UndoMove.
type Move interface {
	From() Pos
	To() Pos
	// Piece is the piece that moved; nil until performed.
	Piece() *Piece
	// Captured is the piece removed by the move, if any.
	Captured() *Piece

	perform(b *Board)
	undo(b *Board)
	moves(p *Piece) bool
}

type moveState int

const (
	pending moveState = iota
	performed
	reverted
)

// NormalMove relocates one piece and captures whatever stood on the
// destination.
type NormalMove struct {
	from, to Pos
	piece    *Piece
	captured *Piece
	state    moveState
}

func NewMove(from, to Pos) *NormalMove {
	return &NormalMove{from: from, to: to}
}

func (m *NormalMove) From() Pos { return m.from }
func (m *NormalMove) To() Pos { return m.to }
func (m *NormalMove) Piece() *Piece { return m.piece }
func (m *NormalMove) Captured() *Piece { return m.captured }
func (m *NormalMove) moves(p *Piece) bool { return m.piece == p }

func (m *NormalMove) String() string {
	return m.from.String() + m.to.String()
}

func (m *NormalMove) begin() {
	if m.state != pending {
		panic(fmt.Sprintf("chess: move %s performed twice", m))
	}
	m.state = performed
}

func (m *NormalMove) end() {
	if m.state != performed {
		panic(fmt.Sprintf("chess: move %s undone before being performed", m))
	}
	m.state = reverted
}

func (m *NormalMove) perform(b *Board) {
	m.begin()
	piece := b.Remove(m.from)
	if piece == nil {
		panic(fmt.Sprintf("chess: no piece on %s", m.from))
	}
	m.captured = b.Remove(m.to)
	m.piece = b.Add(piece, m.to)
}

func (m *NormalMove) undo(b *Board) {
	m.end()
	b.Remove(m.to)
	b.Add(m.piece, m.from)
	if m.captured != nil {
		b.Add(m.captured, m.to)
	}
}

// EnPassantMove is a pawn capture whose victim stands next to the origin, on
// the destination's column, rather than on the destination itself.
type EnPassantMove struct {
	NormalMove
}

func NewEnPassantMove(from, to Pos) *EnPassantMove {
	return &EnPassantMove{NormalMove: NormalMove{from: from, to: to}}
}

// CapturedAt is the square of the captured pawn.
func (m *EnPassantMove) CapturedAt() Pos {
	return Pos{Row: m.from.Row, Col: m.to.Col}
}

func (m *EnPassantMove) perform(b *Board) {
	m.begin()
	piece := b.Remove(m.from)
	m.captured = b.Remove(m.CapturedAt())
	m.piece = b.Add(piece, m.to)
}

func (m *EnPassantMove) undo(b *Board) {
	m.end()
	b.Remove(m.to)
	b.Add(m.piece, m.from)
	if m.captured != nil {
		b.Add(m.captured, m.CapturedAt())
	}
}

// CastlingMove moves the king two squares and the rook onto the square the
// king crossed, as one unit.
type CastlingMove struct {
	NormalMove
	rookFrom, rookTo Pos
	rook             *Piece
}

func NewCastlingMove(from, to, rookFrom, rookTo Pos) *CastlingMove {
	return &CastlingMove{
		NormalMove: NormalMove{from: from, to: to},
		rookFrom:   rookFrom,
		rookTo:     rookTo,
	}
}

func (m *CastlingMove) RookFrom() Pos { return m.rookFrom }
func (m *CastlingMove) RookTo() Pos { return m.rookTo }
func (m *CastlingMove) Rook() *Piece { return m.rook }

func (m *CastlingMove) moves(p *Piece) bool {
	return m.piece == p || m.rook == p
}

func (m *CastlingMove) perform(b *Board) {
	m.begin()
	king := b.Remove(m.from)
	rook := b.Remove(m.rookFrom)
	m.piece = b.Add(king, m.to)
	m.rook = b.Add(rook, m.rookTo)
}

func (m *CastlingMove) undo(b *Board) {
	m.end()
	b.Remove(m.to)
	b.Remove(m.rookTo)
	b.Add(m.piece, m.from)
	b.Add(m.rook, m.rookFrom)
}
