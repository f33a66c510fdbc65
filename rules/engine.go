package rules

import "stratego/game"

// Engine is the rules capability the controller and the searcher depend on,
// so tests can substitute their own implementation. All methods take an
// immutable state snapshot; the Apply methods return a new state and leave
// the input untouched.
type Engine interface {
	// ValidatePlacement reports whether the piece may be placed at pos
	// during Setup. A nil error means the placement is legal.
	ValidatePlacement(gs *game.GameState, piece game.Piece, pos game.Position) error

	// ApplyPlacement re-validates and places the piece, returning the new
	// state. Fails with a *RuleViolationError on invalid input.
	ApplyPlacement(gs *game.GameState, piece game.Piece, pos game.Position) (*game.GameState, error)

	// IsSetupComplete reports whether both sides have placed full armies.
	IsSetupComplete(gs *game.GameState) bool

	// ValidateMove reports whether the move is legal for the active player.
	// A nil error means the move is legal.
	ValidateMove(gs *game.GameState, move game.Move) error

	// ApplyMove re-validates and applies the move: resolves combat if the
	// destination holds an enemy piece, appends a history record, flips the
	// active player, increments the turn counter, recomputes player records
	// and runs terminal detection. Fails with a *RuleViolationError on
	// invalid input.
	ApplyMove(gs *game.GameState, move game.Move) (*game.GameState, error)

	// GenerateMoves enumerates every legal move for side, in deterministic
	// board scan order.
	GenerateMoves(gs *game.GameState, side game.Side) []game.Move

	// CheckWinCondition evaluates the terminal conditions and returns
	// either the unchanged state or a new GameOver state. Idempotent.
	CheckWinCondition(gs *game.GameState) *game.GameState
}

type standardEngine struct{}

// NewEngine returns the standard rules engine. It is stateless and safe for
// concurrent use.
func NewEngine() Engine {
	return &standardEngine{}
}
