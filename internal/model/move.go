package model

import "github.com/benbeisheim/chess-backend/internal/chess"

// WSMove is a move request from a client. Promotion is optional and applied
// right after the move when the pawn reaches the last rank.
type WSMove struct {
	From      Position  `json:"from"`
	To        Position  `json:"to"`
	Promotion PieceType `json:"promotion"`
}

// WSPromotion resolves a pending promotion.
type WSPromotion struct {
	Piece PieceType `json:"piece"`
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type Ply struct {
	Piece          *Piece          `json:"piece"`
	From           Position        `json:"from"`
	To             Position        `json:"to"`
	CapturedPiece  *Piece          `json:"capturedPiece"`
	CastleRookMove *CastleRookMove `json:"castleRookMove"`
	EnPassant      bool            `json:"enPassant"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func newPly(b *chess.Board, m chess.Move) Ply {
	rows := b.Rows()
	ply := Ply{
		Piece: newPiece(b, m.Piece(), m.To()),
		From:  positionOf(m.From(), rows),
		To:    positionOf(m.To(), rows),
	}
	switch mv := m.(type) {
	case *chess.EnPassantMove:
		ply.EnPassant = true
		if c := mv.Captured(); c != nil {
			ply.CapturedPiece = newPiece(b, c, mv.CapturedAt())
		}
	case *chess.CastlingMove:
		ply.CastleRookMove = &CastleRookMove{
			From: positionOf(mv.RookFrom(), rows),
			To:   positionOf(mv.RookTo(), rows),
		}
	default:
		if c := m.Captured(); c != nil {
			ply.CapturedPiece = newPiece(b, c, m.To())
		}
	}
	return ply
}
