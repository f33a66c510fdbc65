package game

// PlayerType says who (or what) drives a side.
type PlayerType int

const (
	Human PlayerType = iota
	AIEasy
	AIMedium
	AIHard
)

func (t PlayerType) String() string {
	switch t {
	case Human:
		return "Human"
	case AIEasy:
		return "AI-Easy"
	case AIMedium:
		return "AI-Medium"
	case AIHard:
		return "AI-Hard"
	default:
		return "Unknown"
	}
}

// Player is one side's record. Pieces and FlagPos are derived from the board
// and recomputed after every applied move.
type Player struct {
	Side    Side
	Type    PlayerType
	Pieces  []Piece
	FlagPos *Position
}

// refresh recomputes the derived fields from the board.
func (p *Player) refresh(b Board) {
	p.Pieces = b.Pieces(p.Side)
	p.FlagPos = b.FindFlag(p.Side)
}
