package model

import (
	"fmt"

	"github.com/benbeisheim/chess-backend/internal/chess"
)

type PieceType string

const (
	King   PieceType = "king"
	Queen  PieceType = "queen"
	Rook   PieceType = "rook"
	Bishop PieceType = "bishop"
	Knight PieceType = "knight"
	Pawn   PieceType = "pawn"
)

var kindTypes = map[chess.Kind]PieceType{
	chess.King:   King,
	chess.Queen:  Queen,
	chess.Rook:   Rook,
	chess.Bishop: Bishop,
	chess.Knight: Knight,
	chess.Pawn:   Pawn,
}

// kind maps a piece type back to the engine's type identifier. Single
// letters ("Q", "n") are accepted too.
func (p PieceType) kind() (chess.Kind, bool) {
	for k, t := range kindTypes {
		if t == p {
			return k, true
		}
	}
	if len(p) == 1 {
		return chess.ParseKind(p[0])
	}
	return 0, false
}

func promotable(k chess.Kind) bool {
	return k == chess.Queen || k == chess.Rook || k == chess.Bishop || k == chess.Knight
}

// BoardState is the grid as sent to clients, top rank first.
type BoardState struct {
	Board             [][]*Piece `json:"board"`
	Rows              int        `json:"rows"`
	Cols              int        `json:"cols"`
	BlackKingPosition *Position  `json:"blackKingPosition"`
	WhiteKingPosition *Position  `json:"whiteKingPosition"`
}

type Piece struct {
	Type     PieceType   `json:"type"`
	Color    PlayerColor `json:"color"`
	Position Position    `json:"position"`
	HasMoved bool        `json:"hasMoved"`
}

// Position is a client coordinate: X is the file from the left, Y the row
// from the top of the diagram.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func positionOf(p chess.Pos, rows int) Position {
	return Position{X: p.Col, Y: rows - 1 - p.Row}
}

func (p Position) toPos(rows int) chess.Pos {
	return chess.Pos{Row: rows - 1 - p.Y, Col: p.X}
}

// SquareNotation returns the square name, e.g. "e4", on a board with the
// given number of rows.
func (p Position) SquareNotation(rows int) string {
	return p.toPos(rows).String()
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func newPiece(b *chess.Board, p *chess.Piece, at chess.Pos) *Piece {
	return &Piece{
		Type:     kindTypes[p.Kind()],
		Color:    colorOf(p.Side()),
		Position: positionOf(at, b.Rows()),
		HasMoved: b.HasMoved(p),
	}
}

func newBoardState(b *chess.Board) *BoardState {
	rows, cols := b.Dimensions()
	state := &BoardState{Rows: rows, Cols: cols}
	for y := 0; y < rows; y++ {
		line := make([]*Piece, cols)
		for x := 0; x < cols; x++ {
			at := Position{X: x, Y: y}.toPos(rows)
			p := b.Get(at)
			if p == nil {
				continue
			}
			line[x] = newPiece(b, p, at)
			if p.Kind() == chess.King {
				pos := positionOf(at, rows)
				if p.Side() == chess.White {
					state.WhiteKingPosition = &pos
				} else {
					state.BlackKingPosition = &pos
				}
			}
		}
		state.Board = append(state.Board, line)
	}
	return state
}
