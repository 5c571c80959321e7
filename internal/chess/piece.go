package chess

// Kind is the single-character type identifier of a piece.
type Kind byte

const (
	Pawn   Kind = 'P'
	Knight Kind = 'N'
	Bishop Kind = 'B'
	Rook   Kind = 'R'
	Queen  Kind = 'Q'
	King   Kind = 'K'
)

// ParseKind maps a type identifier (either case) to a Kind.
func ParseKind(c byte) (Kind, bool) {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	switch k := Kind(c); k {
	case Pawn, Knight, Bishop, Rook, Queen, King:
		return k, true
	}
	return 0, false
}

func (k Kind) String() string {
	return string(rune(k))
}

// Piece is a chess piece. The board it sits on owns it; the piece only keeps
// a reference to read board state while generating moves.
type Piece struct {
	side  Side
	kind  Kind
	board *Board
	pos   Pos
}

// NewPiece returns a piece that is not yet on any board.
func NewPiece(side Side, kind Kind) *Piece {
	return &Piece{side: side, kind: kind}
}

func (p *Piece) Side() Side { return p.side }
func (p *Piece) Kind() Kind { return p.kind }
func (p *Piece) Pos() Pos { return p.pos }
func (p *Piece) Board() *Board { return p.board }

// Glyph is the kind letter, uppercase for White and lowercase for Black.
func (p *Piece) Glyph() byte {
	if p.side == White {
		return byte(p.kind)
	}
	return byte(p.kind) + ('a' - 'A')
}

func (p *Piece) String() string {
	return p.side.String() + " " + p.kind.String() + "@" + p.pos.String()
}

// LegalMoves returns every destination this piece can physically reach, keyed
// by destination. It does not check whether the move exposes the own king.
func (p *Piece) LegalMoves() map[Pos]Move {
	moves := p.RecursionSafeLegalMoves()
	if p.kind == King && p.board != nil {
		p.addCastlingMoves(moves)
	}
	return moves
}

// RecursionSafeLegalMoves is LegalMoves without any move whose generation has
// to consult threat detection. Board.IsThreatened is built on it.
func (p *Piece) RecursionSafeLegalMoves() map[Pos]Move {
	moves := make(map[Pos]Move)
	if p.board == nil {
		return moves
	}
	switch p.kind {
	case Pawn:
		p.addPawnMoves(moves)
	case Knight:
		p.addSteps(knightSteps, moves)
	case Bishop:
		p.addSlides(diagonals, moves)
	case Rook:
		p.addSlides(orthogonals, moves)
	case Queen:
		p.addSlides(diagonals, moves)
		p.addSlides(orthogonals, moves)
	case King:
		p.addSteps(diagonals, moves)
		p.addSteps(orthogonals, moves)
	}
	return moves
}

// moveDirection is the row delta of a pawn step for this piece's side.
func (p *Piece) moveDirection() int {
	if p.side == White {
		return 1
	}
	return -1
}

// CanPromote reports whether one more forward step would take this pawn past
// the last rank of its board.
func (p *Piece) CanPromote() bool {
	if p.kind != Pawn || p.board == nil {
		return false
	}
	rows := p.board.Rows()
	return (p.pos.Row+p.moveDirection()+rows+1)%(rows+1) == rows
}

// PromoteInto replaces this pawn with a new piece of the given kind and the
// same side. Only bishops, knights, rooks and queens are accepted; anything
// else leaves the board untouched and returns nil.
func (p *Piece) PromoteInto(kind Kind) *Piece {
	if p.board == nil {
		return nil
	}
	switch kind {
	case Bishop, Knight, Rook, Queen:
		return p.board.Add(NewPiece(p.side, kind), p.pos)
	}
	return nil
}
