package game

import "fmt"

// BoardSize is the number of rows and columns on the board.
const BoardSize = 10

// NumSquares is the total number of squares, always present on a board.
const NumSquares = BoardSize * BoardSize

// Position identifies a square by row and column, both in [0,9].
// It is a value type: compare with ==, use as a map key.
type Position struct {
	Row int
	Col int
}

// Index maps the position to the board's flat square array.
func (p Position) Index() int {
	return p.Row*BoardSize + p.Col
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// IsLake reports whether the position is one of the 8 fixed lake squares:
// (4,2),(4,3),(5,2),(5,3),(4,6),(4,7),(5,6),(5,7).
func (p Position) IsLake() bool {
	if p.Row != 4 && p.Row != 5 {
		return false
	}
	return p.Col == 2 || p.Col == 3 || p.Col == 6 || p.Col == 7
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Directions enumerates the four orthogonal steps in a fixed order so move
// generation is deterministic.
var Directions = [4]Position{
	{Row: -1, Col: 0}, // up
	{Row: 1, Col: 0},  // down
	{Row: 0, Col: -1}, // left
	{Row: 0, Col: 1},  // right
}

// Offset returns the position shifted by the given direction.
func (p Position) Offset(dir Position) Position {
	return Position{Row: p.Row + dir.Row, Col: p.Col + dir.Col}
}
