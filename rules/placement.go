package rules

import "stratego/game"

func (e *standardEngine) ValidatePlacement(gs *game.GameState, piece game.Piece, pos game.Position) error {
	if gs.Phase != game.Setup {
		return invalid("placement only allowed during setup, phase is %s", gs.Phase)
	}
	if piece.Owner != gs.ActivePlayer {
		return invalid("piece belongs to %s but %s is placing", piece.Owner, gs.ActivePlayer)
	}
	if !pos.InBounds() {
		return invalid("position %s is out of bounds", pos)
	}
	if pos.IsLake() {
		return invalid("cannot place on lake square %s", pos)
	}
	minRow, maxRow := game.SetupRows(piece.Owner)
	if pos.Row < minRow || pos.Row > maxRow {
		return invalid("%s must place within rows %d-%d, got %s", piece.Owner, minRow, maxRow, pos)
	}
	if gs.Board.At(pos).Occupied() {
		return invalid("square %s is already occupied", pos)
	}
	return nil
}

func (e *standardEngine) ApplyPlacement(gs *game.GameState, piece game.Piece, pos game.Position) (*game.GameState, error) {
	if err := e.ValidatePlacement(gs, piece, pos); err != nil {
		return nil, &RuleViolationError{Op: "ApplyPlacement", Err: err}
	}

	next := gs.Copy()
	if piece.ID == 0 {
		piece.ID = next.TotalPieces() + 1
	}
	next.Board = next.Board.Place(piece, pos)
	// Placement does not consume a turn: phase, active player and turn
	// counter are untouched. Alternation is the caller's convention.
	next.Refresh()
	return next, nil
}

func (e *standardEngine) IsSetupComplete(gs *game.GameState) bool {
	return len(gs.Red.Pieces) == game.ArmySize && len(gs.Blue.Pieces) == game.ArmySize
}
