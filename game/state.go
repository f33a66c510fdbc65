package game

// Phase is the stage of the game's state machine.
type Phase int

const (
	Setup Phase = iota
	Playing
	GameOver
)

func (p Phase) String() string {
	switch p {
	case Setup:
		return "Setup"
	case Playing:
		return "Playing"
	default:
		return "GameOver"
	}
}

// TurnLimit is the turn number at which an undecided game is declared a
// draw.
const TurnLimit = 3000

// GameState is the single unit of truth: the board, both player records, the
// active player, phase, turn counter, winner and move history. Every
// transition produces a new GameState value; no component ever holds a
// mutable reference into another's snapshot.
type GameState struct {
	Board        Board
	Red          Player
	Blue         Player
	ActivePlayer Side
	Phase        Phase
	Turn         int
	Winner       Side // NoSide until decided; NoSide at GameOver means a draw
	History      []MoveRecord
}

// NewGameState returns a fresh state in the Setup phase with an empty board.
// Red moves first once play begins.
func NewGameState(redType, blueType PlayerType) *GameState {
	return &GameState{
		Board:        NewBoard(),
		Red:          Player{Side: Red, Type: redType},
		Blue:         Player{Side: Blue, Type: blueType},
		ActivePlayer: Red,
		Phase:        Setup,
	}
}

// Copy returns a deep copy. The board's square array copies by value;
// stored pieces are immutable so sharing their pointers is safe.
func (gs *GameState) Copy() *GameState {
	historyCopy := make([]MoveRecord, len(gs.History))
	copy(historyCopy, gs.History)

	redPieces := make([]Piece, len(gs.Red.Pieces))
	copy(redPieces, gs.Red.Pieces)
	bluePieces := make([]Piece, len(gs.Blue.Pieces))
	copy(bluePieces, gs.Blue.Pieces)

	next := *gs
	next.History = historyCopy
	next.Red.Pieces = redPieces
	next.Blue.Pieces = bluePieces
	return &next
}

// PlayerFor returns the player record for side.
func (gs *GameState) PlayerFor(side Side) *Player {
	if side == Red {
		return &gs.Red
	}
	return &gs.Blue
}

// Refresh recomputes both players' derived piece lists and flag positions
// from the board.
func (gs *GameState) Refresh() {
	gs.Red.refresh(gs.Board)
	gs.Blue.refresh(gs.Board)
}

// TotalPieces is the combined remaining piece count across both sides.
func (gs *GameState) TotalPieces() int {
	return len(gs.Red.Pieces) + len(gs.Blue.Pieces)
}

// BeginPlay transitions Setup -> Playing. The caller is responsible for
// checking both armies are complete first; the transition itself is
// external to the rules engine.
func (gs *GameState) BeginPlay() *GameState {
	next := gs.Copy()
	next.Phase = Playing
	next.ActivePlayer = Red
	return next
}

// LastMovesBy returns up to n of the piece's most recent moves, newest
// first.
func (gs *GameState) LastMovesBy(pieceID int, n int) []MoveRecord {
	var records []MoveRecord
	for i := len(gs.History) - 1; i >= 0 && len(records) < n; i-- {
		if gs.History[i].Move.Piece.ID == pieceID {
			records = append(records, gs.History[i])
		}
	}
	return records
}

// SetupRows returns the inclusive home row range where side may place pieces
// during Setup: rows 6-9 for Red, rows 0-3 for Blue.
func SetupRows(side Side) (minRow, maxRow int) {
	if side == Red {
		return 6, 9
	}
	return 0, 3
}
