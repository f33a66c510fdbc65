package rules

import "stratego/game"

// CheckWinCondition runs the three terminal checks in precedence order:
// flag capture, then the turn limit, then no-legal-moves for the active
// player. A state that is not Playing is returned unchanged, which makes the
// check idempotent.
func (e *standardEngine) CheckWinCondition(gs *game.GameState) *game.GameState {
	if gs.Phase != game.Playing {
		return gs
	}

	// Flag capture. Red is checked before Blue: if both flags somehow
	// vanished in the same state, Red's loss is reported, which keeps the
	// outcome stable.
	for _, side := range [2]game.Side{game.Red, game.Blue} {
		if gs.PlayerFor(side).FlagPos == nil {
			return gameOver(gs, side.Opponent())
		}
	}

	// Turn limit: a marathon game is a draw.
	if gs.Turn >= game.TurnLimit {
		return gameOver(gs, game.NoSide)
	}

	// Stalemate is a loss for the side that cannot move, not a draw.
	if len(e.GenerateMoves(gs, gs.ActivePlayer)) == 0 {
		return gameOver(gs, gs.ActivePlayer.Opponent())
	}

	return gs
}

func gameOver(gs *game.GameState, winner game.Side) *game.GameState {
	next := gs.Copy()
	next.Phase = game.GameOver
	next.Winner = winner
	return next
}
