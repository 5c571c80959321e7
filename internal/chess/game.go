package chess

import (
	"fmt"
	"slices"
)

// Result is the outcome of a game.
type Result int

const (
	InProgress Result = iota
	WhiteWon
	BlackWon
	Draw
)

func (r Result) String() string {
	switch r {
	case WhiteWon:
		return "white_won"
	case BlackWon:
		return "black_won"
	case Draw:
		return "draw"
	default:
		return "in_progress"
	}
}

// Terminal reports whether no further moves are accepted.
func (r Result) Terminal() bool {
	return r != InProgress
}

func wonBy(side Side) Result {
	if side == White {
		return WhiteWon
	}
	return BlackWon
}

// Game runs turn order over a board and filters moves down to those that
// keep the mover's king out of check. A Game is not safe for concurrent use.
type Game struct {
	board  *Board
	side   Side
	result Result
}

// NewGame starts a game on board with starting to move.
func NewGame(board *Board, starting Side) *Game {
	g := &Game{board: board, side: starting}
	g.result = g.computeResult()
	return g
}

func (g *Game) Board() *Board { return g.board }
func (g *Game) CurrentSide() Side { return g.side }
func (g *Game) Result() Result { return g.result }

// ValidFroms returns the squares holding a piece of the side to move that has
// at least one check-safe destination, in row-major order.
func (g *Game) ValidFroms() []Pos {
	var froms []Pos
	for _, piece := range g.board.Pieces(g.side) {
		if len(g.checkSafeMoves(piece)) > 0 {
			froms = append(froms, piece.pos)
		}
	}
	slices.SortFunc(froms, Pos.Compare)
	return froms
}

// LegalMovesWithCheck returns the destinations of the piece on from that do
// not leave its own king in check, in row-major order.
func (g *Game) LegalMovesWithCheck(from Pos) []Pos {
	piece := g.board.Get(from)
	if piece == nil {
		return nil
	}
	return g.checkSafeMoves(piece)
}

func (g *Game) checkSafeMoves(piece *Piece) []Pos {
	var safe []Pos
	for to, move := range piece.LegalMoves() {
		if g.board.leavesKingSafe(move, piece.side) {
			safe = append(safe, to)
		}
	}
	slices.SortFunc(safe, Pos.Compare)
	return safe
}

// MakeMove plays from→to for the side to move, hands the turn over and
// recomputes the result. The caller must have checked the move against
// LegalMovesWithCheck; a move with no raw candidate panics.
func (g *Game) MakeMove(from, to Pos) {
	if g.result.Terminal() {
		panic(fmt.Sprintf("chess: move %s%s after game ended (%s)", from, to, g.result))
	}
	piece := g.board.Get(from)
	if piece == nil {
		panic(fmt.Sprintf("chess: no piece on %s", from))
	}
	move, ok := piece.LegalMoves()[to]
	if !ok {
		panic(fmt.Sprintf("chess: %s cannot reach %s", piece, to))
	}
	g.board.Move(move)
	g.side = g.side.Opponent()
	g.result = g.computeResult()
}

// PromotionPending returns the square of the pawn that just moved if it can
// promote.
func (g *Game) PromotionPending() (Pos, bool) {
	last, ok := g.board.LastMove()
	if !ok {
		return Pos{}, false
	}
	piece := last.Piece()
	if g.board.Get(piece.pos) != piece || !piece.CanPromote() {
		return Pos{}, false
	}
	return piece.pos, true
}

// Promote turns the pending pawn into kind and recomputes the result. It
// returns false, changing nothing, when no promotion is pending or kind is
// not a bishop, knight, rook or queen.
func (g *Game) Promote(kind Kind) bool {
	at, ok := g.PromotionPending()
	if !ok {
		return false
	}
	if g.board.Get(at).PromoteInto(kind) == nil {
		return false
	}
	g.result = g.computeResult()
	return true
}

func (g *Game) computeResult() Result {
	for _, piece := range g.board.Pieces(g.side) {
		if len(g.checkSafeMoves(piece)) > 0 {
			return InProgress
		}
	}
	if g.board.KingInCheck(g.side) {
		return wonBy(g.side.Opponent())
	}
	return Draw
}
