package game

import "fmt"

// Side identifies one of the two players. The zero value NoSide stands for
// "nobody", e.g. an undecided winner.
type Side int

const (
	NoSide Side = iota
	Red
	Blue
)

func (s Side) String() string {
	switch s {
	case Red:
		return "Red"
	case Blue:
		return "Blue"
	default:
		return "None"
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	switch s {
	case Red:
		return Blue
	case Blue:
		return Red
	default:
		return NoSide
	}
}

// Piece is an immutable piece value. Mutations (revealing, moving) return a
// new Piece; the board stores its own copies, so two states never share a
// mutable piece.
type Piece struct {
	ID       int // unique within a game, assigned at placement
	Rank     Rank
	Owner    Side
	Revealed bool // permanently true once the piece took part in combat
	HasMoved bool
	Pos      Position
}

// Reveal returns a copy of the piece with Revealed set.
func (p Piece) Reveal() Piece {
	p.Revealed = true
	return p
}

// MoveTo returns a copy of the piece relocated to pos with HasMoved set.
func (p Piece) MoveTo(pos Position) Piece {
	p.Pos = pos
	p.HasMoved = true
	return p
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s at %s", p.Owner, p.Rank, p.Pos)
}
