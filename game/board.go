package game

// Terrain is the static type of a square.
type Terrain int

const (
	Normal Terrain = iota
	Lake
)

// Square holds a position, its terrain, and the piece occupying it, if any.
type Square struct {
	Pos     Position
	Piece   *Piece
	Terrain Terrain
}

// Occupied reports whether a piece sits on the square.
func (s Square) Occupied() bool {
	return s.Piece != nil
}

// Board is a fixed array of all 100 squares, indexed by row*10+col so the
// "every square always present" invariant is structural. Board is a value
// type with copy-on-write mutators: Place, Remove and Relocate return a new
// Board and leave the receiver unchanged. A stored piece's Pos always equals
// the position of the square holding it.
type Board struct {
	squares [NumSquares]Square
}

// NewBoard returns an empty board with lake terrain at the 8 fixed lake
// squares.
func NewBoard() Board {
	var b Board
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			pos := Position{Row: row, Col: col}
			terrain := Normal
			if pos.IsLake() {
				terrain = Lake
			}
			b.squares[pos.Index()] = Square{Pos: pos, Terrain: terrain}
		}
	}
	return b
}

// At returns the square at pos. pos must be in bounds.
func (b Board) At(pos Position) Square {
	return b.squares[pos.Index()]
}

// PieceAt returns the piece at pos, or nil for an empty square.
func (b Board) PieceAt(pos Position) *Piece {
	return b.squares[pos.Index()].Piece
}

// Place returns a new board with the piece stored at pos. The stored copy's
// Pos is set to pos; the occupant previously at pos, if any, is dropped.
func (b Board) Place(piece Piece, pos Position) Board {
	piece.Pos = pos
	b.squares[pos.Index()].Piece = &piece
	return b
}

// Remove returns a new board with the square at pos emptied.
func (b Board) Remove(pos Position) Board {
	b.squares[pos.Index()].Piece = nil
	return b
}

// Pieces returns all pieces owned by side, in board scan order.
func (b Board) Pieces(side Side) []Piece {
	var pieces []Piece
	for i := range b.squares {
		if p := b.squares[i].Piece; p != nil && p.Owner == side {
			pieces = append(pieces, *p)
		}
	}
	return pieces
}

// FindFlag returns the position of side's flag, or nil if it has been
// captured.
func (b Board) FindFlag(side Side) *Position {
	for i := range b.squares {
		if p := b.squares[i].Piece; p != nil && p.Owner == side && p.Rank == Flag {
			pos := p.Pos
			return &pos
		}
	}
	return nil
}
