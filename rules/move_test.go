package rules

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stratego/game"
)

// playingState builds a mid-game state with both flags tucked into the back
// corners plus the given extra pieces, Red to move.
func playingState(t *testing.T, pieces ...game.Piece) *game.GameState {
	t.Helper()
	gs := game.NewGameState(game.Human, game.Human)
	gs.Board = gs.Board.
		Place(game.Piece{ID: 101, Rank: game.Flag, Owner: game.Red}, game.Position{Row: 9, Col: 9}).
		Place(game.Piece{ID: 102, Rank: game.Flag, Owner: game.Blue}, game.Position{Row: 0, Col: 9})
	for i, p := range pieces {
		if p.ID == 0 {
			p.ID = i + 1
		}
		gs.Board = gs.Board.Place(p, p.Pos)
	}
	gs.Phase = game.Playing
	gs.ActivePlayer = game.Red
	gs.Refresh()
	return gs
}

func pieceAt(t *testing.T, gs *game.GameState, pos game.Position) game.Piece {
	t.Helper()
	p := gs.Board.PieceAt(pos)
	require.NotNil(t, p, "expected a piece at %s", pos)
	return *p
}

func TestValidateMove(t *testing.T) {
	eng := NewEngine()
	gs := playingState(t,
		game.Piece{Rank: game.Captain, Owner: game.Red, Pos: game.Position{Row: 6, Col: 4}},
		game.Piece{Rank: game.Bomb, Owner: game.Red, Pos: game.Position{Row: 7, Col: 4}},
		game.Piece{Rank: game.Miner, Owner: game.Blue, Pos: game.Position{Row: 6, Col: 5}},
	)
	captain := pieceAt(t, gs, game.Position{Row: 6, Col: 4})
	bomb := pieceAt(t, gs, game.Position{Row: 7, Col: 4})

	tests := []struct {
		name   string
		move   game.Move
		reason string
	}{
		{"step onto empty square", game.Move{Piece: captain, From: captain.Pos, To: game.Position{Row: 6, Col: 3}}, ""},
		{"attack adjacent enemy", game.Move{Piece: captain, From: captain.Pos, To: game.Position{Row: 6, Col: 5}}, ""},
		{"bomb cannot move", game.Move{Piece: bomb, From: bomb.Pos, To: game.Position{Row: 8, Col: 4}}, "cannot move"},
		{"no self move", game.Move{Piece: captain, From: captain.Pos, To: captain.Pos}, "must change position"},
		{"diagonal rejected", game.Move{Piece: captain, From: captain.Pos, To: game.Position{Row: 7, Col: 5}}, "horizontal or vertical"},
		{"friendly destination rejected", game.Move{Piece: captain, From: captain.Pos, To: game.Position{Row: 7, Col: 4}}, "friendly"},
		{"non-scout multi-step rejected", game.Move{Piece: captain, From: captain.Pos, To: game.Position{Row: 6, Col: 2}}, "exactly one square"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := eng.ValidateMove(gs, tc.move)
			if tc.reason == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
		})
	}

	t.Run("origin off the board rejected, not panicked", func(t *testing.T) {
		ghost := captain
		ghost.Pos = game.Position{Row: -1, Col: 0}
		var err error
		require.NotPanics(t, func() {
			err = eng.ValidateMove(gs, game.Move{Piece: ghost, From: ghost.Pos, To: game.Position{Row: 0, Col: 0}})
		})
		require.ErrorContains(t, err, "out of bounds")
	})

	t.Run("lake destination rejected", func(t *testing.T) {
		lakeGS := playingState(t,
			game.Piece{Rank: game.Major, Owner: game.Red, Pos: game.Position{Row: 6, Col: 2}},
		)
		major := pieceAt(t, lakeGS, game.Position{Row: 6, Col: 2})
		err := eng.ValidateMove(lakeGS, game.Move{Piece: major, From: major.Pos, To: game.Position{Row: 5, Col: 2}})
		require.ErrorContains(t, err, "is a lake")
	})

	t.Run("opponent piece rejected while red is active", func(t *testing.T) {
		miner := pieceAt(t, gs, game.Position{Row: 6, Col: 5})
		err := eng.ValidateMove(gs, game.Move{Piece: miner, From: miner.Pos, To: game.Position{Row: 6, Col: 6}})
		require.ErrorContains(t, err, "is moving")
	})

	t.Run("stale piece record rejected", func(t *testing.T) {
		ghost := captain
		ghost.ID = 999
		err := eng.ValidateMove(gs, game.Move{Piece: ghost, From: captain.Pos, To: game.Position{Row: 6, Col: 3}})
		require.ErrorContains(t, err, "no matching piece")
	})
}

func TestValidateMoveScoutSlides(t *testing.T) {
	eng := NewEngine()
	gs := playingState(t,
		game.Piece{Rank: game.Scout, Owner: game.Red, Pos: game.Position{Row: 6, Col: 0}},
		game.Piece{Rank: game.Sergeant, Owner: game.Blue, Pos: game.Position{Row: 2, Col: 0}},
	)
	scout := pieceAt(t, gs, game.Position{Row: 6, Col: 0})

	t.Run("slides across empty squares", func(t *testing.T) {
		err := eng.ValidateMove(gs, game.Move{Piece: scout, From: scout.Pos, To: game.Position{Row: 3, Col: 0}})
		require.NoError(t, err)
	})

	t.Run("stops exactly on the first enemy", func(t *testing.T) {
		err := eng.ValidateMove(gs, game.Move{Piece: scout, From: scout.Pos, To: game.Position{Row: 2, Col: 0}})
		require.NoError(t, err)
	})

	t.Run("cannot jump over the enemy", func(t *testing.T) {
		err := eng.ValidateMove(gs, game.Move{Piece: scout, From: scout.Pos, To: game.Position{Row: 1, Col: 0}})
		require.ErrorContains(t, err, "blocked by piece")
	})

	t.Run("lakes block the slide", func(t *testing.T) {
		lakeGS := playingState(t,
			game.Piece{Rank: game.Scout, Owner: game.Red, Pos: game.Position{Row: 6, Col: 2}},
		)
		lakeScout := pieceAt(t, lakeGS, game.Position{Row: 6, Col: 2})
		err := eng.ValidateMove(lakeGS, game.Move{Piece: lakeScout, From: lakeScout.Pos, To: game.Position{Row: 3, Col: 2}})
		require.ErrorContains(t, err, "blocked by lake")
	})
}

func TestTwoSquareRule(t *testing.T) {
	eng := NewEngine()
	gs := playingState(t,
		game.Piece{Rank: game.Captain, Owner: game.Red, Pos: game.Position{Row: 6, Col: 0}},
		game.Piece{Rank: game.Sergeant, Owner: game.Blue, Pos: game.Position{Row: 2, Col: 8}},
	)
	a := game.Position{Row: 6, Col: 0}
	b := game.Position{Row: 6, Col: 1}

	shuttle := func(gs *game.GameState, redFrom, redTo game.Position) *game.GameState {
		t.Helper()
		red := pieceAt(t, gs, redFrom)
		next, err := eng.ApplyMove(gs, game.Move{Piece: red, From: redFrom, To: redTo})
		require.NoError(t, err)
		// Blue wanders so the turn comes back to Red.
		blue := pieceAt(t, next, *bluePos(next))
		to := blue.Pos.Offset(game.Position{Row: 1, Col: 0})
		if !to.InBounds() || to.IsLake() || next.Board.PieceAt(to) != nil {
			to = blue.Pos.Offset(game.Position{Row: -1, Col: 0})
		}
		next, err = eng.ApplyMove(next, game.Move{Piece: blue, From: blue.Pos, To: to})
		require.NoError(t, err)
		return next
	}

	// A->B, B->A and A->B again are all legal.
	gs = shuttle(gs, a, b)
	gs = shuttle(gs, b, a)
	gs = shuttle(gs, a, b)

	// The fourth leg of the oscillation is refused.
	red := pieceAt(t, gs, b)
	err := eng.ValidateMove(gs, game.Move{Piece: red, From: b, To: a})
	require.ErrorContains(t, err, "two-square rule")

	// Any other destination remains legal.
	require.NoError(t, eng.ValidateMove(gs, game.Move{Piece: red, From: b, To: game.Position{Row: 6, Col: 2}}))

	// Breaking the pattern resets the count.
	gs = shuttle(gs, b, game.Position{Row: 6, Col: 2})
	red = pieceAt(t, gs, game.Position{Row: 6, Col: 2})
	require.NoError(t, eng.ValidateMove(gs, game.Move{Piece: red, From: red.Pos, To: b}))
}

// bluePos finds Blue's single movable piece in the two-square fixtures.
func bluePos(gs *game.GameState) *game.Position {
	for _, p := range gs.Blue.Pieces {
		if p.Rank.Movable() {
			pos := p.Pos
			return &pos
		}
	}
	return nil
}

func TestApplyMove(t *testing.T) {
	eng := NewEngine()

	t.Run("relocation moves the piece and flips the turn", func(t *testing.T) {
		gs := playingState(t,
			game.Piece{Rank: game.Major, Owner: game.Red, Pos: game.Position{Row: 6, Col: 0}},
			game.Piece{Rank: game.Major, Owner: game.Blue, Pos: game.Position{Row: 3, Col: 0}},
		)
		major := pieceAt(t, gs, game.Position{Row: 6, Col: 0})
		to := game.Position{Row: 6, Col: 1}

		next, err := eng.ApplyMove(gs, game.Move{Piece: major, From: major.Pos, To: to})
		require.NoError(t, err)

		require.NotNil(t, gs.Board.PieceAt(major.Pos), "input state must be untouched")
		require.Nil(t, next.Board.PieceAt(major.Pos))
		moved := pieceAt(t, next, to)
		require.Equal(t, major.ID, moved.ID)
		require.True(t, moved.HasMoved)
		require.False(t, moved.Revealed, "relocation does not reveal")

		require.Equal(t, game.Blue, next.ActivePlayer)
		require.Equal(t, 1, next.Turn)
		require.Len(t, next.History, 1)
		require.Equal(t, game.Relocation, next.History[0].Move.Type)
		require.Nil(t, next.History[0].Combat)
	})

	t.Run("winning attack advances and reveals the attacker", func(t *testing.T) {
		gs := playingState(t,
			game.Piece{Rank: game.Major, Owner: game.Red, Pos: game.Position{Row: 6, Col: 0}},
			game.Piece{Rank: game.Sergeant, Owner: game.Blue, Pos: game.Position{Row: 6, Col: 1}},
		)
		major := pieceAt(t, gs, game.Position{Row: 6, Col: 0})
		to := game.Position{Row: 6, Col: 1}

		next, err := eng.ApplyMove(gs, game.Move{Piece: major, From: major.Pos, To: to})
		require.NoError(t, err)

		winner := pieceAt(t, next, to)
		require.Equal(t, major.ID, winner.ID)
		require.True(t, winner.Revealed)
		require.Equal(t, gs.TotalPieces()-1, next.TotalPieces())
		require.Equal(t, game.Attack, next.History[0].Move.Type)
		require.Equal(t, game.AttackerWins, next.History[0].Combat.Outcome)
	})

	t.Run("losing attack removes the attacker and reveals the defender", func(t *testing.T) {
		gs := playingState(t,
			game.Piece{Rank: game.Sergeant, Owner: game.Red, Pos: game.Position{Row: 6, Col: 0}},
			game.Piece{Rank: game.Major, Owner: game.Blue, Pos: game.Position{Row: 6, Col: 1}},
		)
		sergeant := pieceAt(t, gs, game.Position{Row: 6, Col: 0})
		to := game.Position{Row: 6, Col: 1}

		next, err := eng.ApplyMove(gs, game.Move{Piece: sergeant, From: sergeant.Pos, To: to})
		require.NoError(t, err)

		require.Nil(t, next.Board.PieceAt(sergeant.Pos))
		defender := pieceAt(t, next, to)
		require.Equal(t, game.Blue, defender.Owner)
		require.True(t, defender.Revealed)
		require.Equal(t, gs.TotalPieces()-1, next.TotalPieces())
	})

	t.Run("drawn attack removes both pieces", func(t *testing.T) {
		gs := playingState(t,
			game.Piece{Rank: game.Colonel, Owner: game.Red, Pos: game.Position{Row: 6, Col: 0}},
			game.Piece{Rank: game.Colonel, Owner: game.Blue, Pos: game.Position{Row: 6, Col: 1}},
			game.Piece{Rank: game.Scout, Owner: game.Blue, Pos: game.Position{Row: 0, Col: 0}},
		)
		colonel := pieceAt(t, gs, game.Position{Row: 6, Col: 0})
		to := game.Position{Row: 6, Col: 1}

		next, err := eng.ApplyMove(gs, game.Move{Piece: colonel, From: colonel.Pos, To: to})
		require.NoError(t, err)

		require.Nil(t, next.Board.PieceAt(colonel.Pos))
		require.Nil(t, next.Board.PieceAt(to))
		require.Equal(t, gs.TotalPieces()-2, next.TotalPieces())
	})

	t.Run("illegal move is refused without changing state", func(t *testing.T) {
		gs := playingState(t,
			game.Piece{Rank: game.Major, Owner: game.Red, Pos: game.Position{Row: 6, Col: 0}},
		)
		major := pieceAt(t, gs, game.Position{Row: 6, Col: 0})
		next, err := eng.ApplyMove(gs, game.Move{Piece: major, From: major.Pos, To: game.Position{Row: 4, Col: 0}})

		var rv *RuleViolationError
		require.ErrorAs(t, err, &rv)
		require.Nil(t, next)
	})
}

func TestApplyMoveNeverGrowsPieceCount(t *testing.T) {
	eng := NewEngine()
	gs := playingState(t,
		game.Piece{Rank: game.Scout, Owner: game.Red, Pos: game.Position{Row: 6, Col: 0}},
		game.Piece{Rank: game.Miner, Owner: game.Red, Pos: game.Position{Row: 7, Col: 5}},
		game.Piece{Rank: game.Scout, Owner: game.Blue, Pos: game.Position{Row: 3, Col: 0}},
		game.Piece{Rank: game.Miner, Owner: game.Blue, Pos: game.Position{Row: 2, Col: 5}},
	)

	for step := 0; step < 30 && gs.Phase == game.Playing; step++ {
		moves := eng.GenerateMoves(gs, gs.ActivePlayer)
		require.NotEmpty(t, moves)
		before := gs.TotalPieces()

		next, err := eng.ApplyMove(gs, moves[step%len(moves)])
		require.NoError(t, err)
		require.LessOrEqual(t, next.TotalPieces(), before)
		require.GreaterOrEqual(t, next.TotalPieces(), before-2)
		gs = next
	}
}

func TestGenerateMoves(t *testing.T) {
	eng := NewEngine()

	t.Run("counts per rank", func(t *testing.T) {
		gs := playingState(t,
			game.Piece{Rank: game.Miner, Owner: game.Red, Pos: game.Position{Row: 7, Col: 1}},
			game.Piece{Rank: game.Bomb, Owner: game.Red, Pos: game.Position{Row: 8, Col: 8}},
			game.Piece{Rank: game.Scout, Owner: game.Blue, Pos: game.Position{Row: 1, Col: 1}},
		)
		// The miner has four open neighbors; the bomb and flag contribute
		// nothing.
		redMoves := eng.GenerateMoves(gs, game.Red)
		require.Len(t, redMoves, 4)

		// The scout reaches every open square along its rank and file.
		blueMoves := eng.GenerateMoves(gs, game.Blue)
		require.NotEmpty(t, blueMoves)
		asBlue := gs.Copy()
		asBlue.ActivePlayer = game.Blue
		for _, m := range blueMoves {
			require.Equal(t, game.Scout, m.Piece.Rank)
			require.NoError(t, eng.ValidateMove(asBlue, m))
		}
	})

	t.Run("scout slide stops at the first occupant", func(t *testing.T) {
		gs := playingState(t,
			game.Piece{Rank: game.Scout, Owner: game.Red, Pos: game.Position{Row: 8, Col: 0}},
			game.Piece{Rank: game.Miner, Owner: game.Blue, Pos: game.Position{Row: 6, Col: 0}},
		)
		for _, m := range eng.GenerateMoves(gs, game.Red) {
			if m.From.Col == 0 && m.To.Col == 0 {
				require.GreaterOrEqual(t, m.To.Row, 6, "squares beyond the blocker are unreachable")
			}
		}
	})
}
