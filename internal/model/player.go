package model

import "github.com/benbeisheim/chess-backend/internal/chess"

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color PlayerColor `json:"color"`
}

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func colorOf(side chess.Side) PlayerColor {
	if side == chess.White {
		return PlayerColorWhite
	}
	return PlayerColorBlack
}

// Side converts the color to an engine side.
func (c PlayerColor) Side() (chess.Side, bool) {
	return chess.ParseSide(string(c))
}
