package rules

import (
	"time"

	"stratego/game"
)

func (e *standardEngine) ValidateMove(gs *game.GameState, move game.Move) error {
	return e.validateMoveFor(gs, move, gs.ActivePlayer)
}

// validateMoveFor runs the full legality check with an explicit moving side,
// so GenerateMoves can enumerate for either player.
func (e *standardEngine) validateMoveFor(gs *game.GameState, move game.Move, mover game.Side) error {
	if gs.Phase != game.Playing {
		return invalid("moves only allowed during play, phase is %s", gs.Phase)
	}
	if move.Piece.Owner != mover {
		return invalid("piece belongs to %s but %s is moving", move.Piece.Owner, mover)
	}
	if !move.Piece.Rank.Movable() {
		return invalid("%s cannot move", move.Piece.Rank)
	}
	if move.From == move.To {
		return invalid("move must change position")
	}
	if !move.From.InBounds() {
		return invalid("origin %s is out of bounds", move.From)
	}
	onBoard := gs.Board.PieceAt(move.From)
	if onBoard == nil || onBoard.ID != move.Piece.ID {
		return invalid("no matching piece at %s", move.From)
	}
	if move.From.Row != move.To.Row && move.From.Col != move.To.Col {
		return invalid("move must be horizontal or vertical")
	}
	if !move.To.InBounds() {
		return invalid("destination %s is out of bounds", move.To)
	}
	if move.To.IsLake() {
		return invalid("destination %s is a lake", move.To)
	}
	if target := gs.Board.PieceAt(move.To); target != nil && target.Owner == mover {
		return invalid("destination %s holds a friendly piece", move.To)
	}

	if move.Piece.Rank == game.Scout {
		if err := e.validateScoutSlide(gs, move); err != nil {
			return err
		}
	} else if distance(move.From, move.To) != 1 {
		return invalid("%s moves exactly one square", move.Piece.Rank)
	}

	return e.checkTwoSquareRule(gs, move)
}

// validateScoutSlide walks the straight line from origin to destination. Any
// lake or occupied square strictly before the destination blocks the whole
// slide: a blocking enemy piece cannot be jumped, only attacked by stopping
// exactly on it.
func (e *standardEngine) validateScoutSlide(gs *game.GameState, move game.Move) error {
	dir := game.Position{
		Row: sign(move.To.Row - move.From.Row),
		Col: sign(move.To.Col - move.From.Col),
	}
	for pos := move.From.Offset(dir); pos != move.To; pos = pos.Offset(dir) {
		if pos.IsLake() {
			return invalid("scout slide blocked by lake at %s", pos)
		}
		if gs.Board.At(pos).Occupied() {
			return invalid("scout slide blocked by piece at %s", pos)
		}
	}
	return nil
}

// checkTwoSquareRule rejects the fourth consecutive leg of an A-B
// oscillation by the same piece: after A->B, B->A, A->B the return to A is
// refused. Scoped to the one piece (matched by ID, so implicitly the same
// owner); the opponent shuttling over the same squares is not restricted.
func (e *standardEngine) checkTwoSquareRule(gs *game.GameState, move game.Move) error {
	last := gs.LastMovesBy(move.Piece.ID, 3)
	if len(last) < 3 {
		return nil
	}
	// last is newest first: last[0] must mirror the proposed move and the
	// two before it must trace the same shuttle.
	if reverses(last[0].Move, move) && repeats(last[1].Move, move) && reverses(last[2].Move, move) {
		return invalid("two-square rule: %s may not shuttle between %s and %s again",
			move.Piece.Rank, move.From, move.To)
	}
	return nil
}

func repeats(prev game.Move, proposed game.Move) bool {
	return prev.From == proposed.From && prev.To == proposed.To
}

func reverses(prev game.Move, proposed game.Move) bool {
	return prev.From == proposed.To && prev.To == proposed.From
}

func (e *standardEngine) ApplyMove(gs *game.GameState, move game.Move) (*game.GameState, error) {
	if err := e.ValidateMove(gs, move); err != nil {
		return nil, &RuleViolationError{Op: "ApplyMove", Err: err}
	}

	next := gs.Copy()
	attacker := *next.Board.PieceAt(move.From)

	var combat *game.CombatResult
	if defender := next.Board.PieceAt(move.To); defender != nil {
		move.Type = game.Attack
		result := game.ResolveCombat(attacker, *defender)
		combat = &result

		next.Board = next.Board.Remove(move.From)
		switch result.Outcome {
		case game.AttackerWins:
			next.Board = next.Board.Place(attacker.MoveTo(move.To).Reveal(), move.To)
		case game.DefenderWins:
			next.Board = next.Board.Place(defender.Reveal(), move.To)
		case game.CombatDraw:
			next.Board = next.Board.Remove(move.To)
		}
	} else {
		move.Type = game.Relocation
		next.Board = next.Board.Remove(move.From)
		next.Board = next.Board.Place(attacker.MoveTo(move.To), move.To)
	}

	next.Turn++
	next.History = append(next.History, game.MoveRecord{
		Move:      move,
		Combat:    combat,
		Turn:      next.Turn,
		Timestamp: time.Now(),
	})
	next.ActivePlayer = next.ActivePlayer.Opponent()
	next.Refresh()

	return e.CheckWinCondition(next), nil
}

func (e *standardEngine) GenerateMoves(gs *game.GameState, side game.Side) []game.Move {
	var moves []game.Move
	for row := 0; row < game.BoardSize; row++ {
		for col := 0; col < game.BoardSize; col++ {
			from := game.Position{Row: row, Col: col}
			piece := gs.Board.PieceAt(from)
			if piece == nil || piece.Owner != side || !piece.Rank.Movable() {
				continue
			}
			for _, dir := range game.Directions {
				moves = append(moves, e.movesInDirection(gs, *piece, dir, side)...)
			}
		}
	}
	return moves
}

// movesInDirection returns the piece's legal moves along one direction:
// ordinary ranks offer at most the single-step candidate, scouts slide until
// the first obstruction (which may itself be attacked).
func (e *standardEngine) movesInDirection(gs *game.GameState, piece game.Piece, dir game.Position, side game.Side) []game.Move {
	var moves []game.Move
	appendIfLegal := func(to game.Position) {
		move := game.Move{Piece: piece, From: piece.Pos, To: to, Type: game.Relocation}
		if target := gs.Board.PieceAt(to); target != nil {
			move.Type = game.Attack
		}
		if e.validateMoveFor(gs, move, side) == nil {
			moves = append(moves, move)
		}
	}

	if piece.Rank != game.Scout {
		to := piece.Pos.Offset(dir)
		if to.InBounds() {
			appendIfLegal(to)
		}
		return moves
	}

	for to := piece.Pos.Offset(dir); to.InBounds() && !to.IsLake(); to = to.Offset(dir) {
		appendIfLegal(to)
		if gs.Board.At(to).Occupied() {
			break // slides stop at the first occupant
		}
	}
	return moves
}

func distance(a, b game.Position) int {
	return abs(a.Row-b.Row) + abs(a.Col-b.Col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
