package chess

// Side identifies a player. White moves first in the default setup.
type Side int

const (
	White Side = iota
	Black
)

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

// ParseSide accepts "white" or "black".
func ParseSide(s string) (Side, bool) {
	switch s {
	case "white", "White", "WHITE", "w":
		return White, true
	case "black", "Black", "BLACK", "b":
		return Black, true
	}
	return White, false
}
