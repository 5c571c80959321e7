package chess

import (
	"errors"
	"fmt"
)

// ErrInvalidSquare is returned when square notation cannot be parsed.
var ErrInvalidSquare = errors.New("invalid square")

// Pos is a (row, column) coordinate. Row 0 is White's home rank.
type Pos struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Offset returns p moved by delta.
func (p Pos) Offset(delta Pos) Pos {
	return Pos{Row: p.Row + delta.Row, Col: p.Col + delta.Col}
}

// Sub returns the delta that takes other to p.
func (p Pos) Sub(other Pos) Pos {
	return Pos{Row: p.Row - other.Row, Col: p.Col - other.Col}
}

// Compare orders positions by row, then column.
func (p Pos) Compare(other Pos) int {
	switch {
	case p.Row != other.Row:
		return p.Row - other.Row
	default:
		return p.Col - other.Col
	}
}

// String renders p as a column letter followed by a 1-based row digit, e.g. "e4".
func (p Pos) String() string {
	return ColString(p.Col) + RowString(p.Row)
}

// ColString returns the lowercase letter of a column.
func ColString(col int) string {
	return fmt.Sprintf("%c", 'a'+col)
}

// RowString returns the 1-based label of a row.
func RowString(row int) string {
	return fmt.Sprintf("%d", row+1)
}

// ParsePos parses two-character square notation such as "e4" or "E4".
func ParsePos(s string) (Pos, error) {
	if len(s) != 2 {
		return Pos{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	col, row := s[0], s[1]
	if col >= 'A' && col <= 'Z' {
		col += 'a' - 'A'
	}
	if col < 'a' || col > 'z' || row < '1' || row > '9' {
		return Pos{}, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Pos{Row: int(row - '1'), Col: int(col - 'a')}, nil
}

// MustParsePos is like ParsePos but panics on malformed input.
func MustParsePos(s string) Pos {
	p, err := ParsePos(s)
	if err != nil {
		panic(err)
	}
	return p
}
