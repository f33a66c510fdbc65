package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"stratego/game"
)

func TestValidatePlacement(t *testing.T) {
	eng := NewEngine()
	gs := game.NewGameState(game.Human, game.Human)
	redMiner := game.Piece{Rank: game.Miner, Owner: game.Red}

	tests := []struct {
		name   string
		piece  game.Piece
		pos    game.Position
		reason string
	}{
		{"legal home row placement", redMiner, game.Position{Row: 6, Col: 0}, ""},
		{"wrong owner", game.Piece{Rank: game.Miner, Owner: game.Blue}, game.Position{Row: 1, Col: 0}, "is placing"},
		{"out of bounds", redMiner, game.Position{Row: 10, Col: 0}, "out of bounds"},
		{"outside home rows", redMiner, game.Position{Row: 5, Col: 0}, "must place within rows"},
		{"enemy home rows", redMiner, game.Position{Row: 0, Col: 0}, "must place within rows"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := eng.ValidatePlacement(gs, tc.piece, tc.pos)
			if tc.reason == "" {
				require.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Contains(t, verr.Reason, tc.reason)
		})
	}

	t.Run("occupied square", func(t *testing.T) {
		occupied, err := eng.ApplyPlacement(gs, redMiner, game.Position{Row: 6, Col: 0})
		require.NoError(t, err)
		err = eng.ValidatePlacement(occupied, redMiner, game.Position{Row: 6, Col: 0})
		require.ErrorContains(t, err, "already occupied")
	})

	t.Run("rejected outside setup phase", func(t *testing.T) {
		err := eng.ValidatePlacement(gs.BeginPlay(), redMiner, game.Position{Row: 6, Col: 0})
		require.ErrorContains(t, err, "only allowed during setup")
	})
}

func TestApplyPlacement(t *testing.T) {
	eng := NewEngine()

	t.Run("places the piece and assigns an id", func(t *testing.T) {
		gs := game.NewGameState(game.Human, game.Human)
		pos := game.Position{Row: 9, Col: 4}
		next, err := eng.ApplyPlacement(gs, game.Piece{Rank: game.Flag, Owner: game.Red}, pos)
		require.NoError(t, err)

		require.Nil(t, gs.Board.PieceAt(pos), "input state must be untouched")
		placed := next.Board.PieceAt(pos)
		require.NotNil(t, placed)
		require.Equal(t, 1, placed.ID)
		require.Equal(t, pos, *next.Red.FlagPos)
		require.Equal(t, game.Setup, next.Phase, "placement does not advance the phase")
		require.Zero(t, next.Turn)
	})

	t.Run("invalid placement returns a rule violation", func(t *testing.T) {
		gs := game.NewGameState(game.Human, game.Human)
		_, err := eng.ApplyPlacement(gs, game.Piece{Rank: game.Flag, Owner: game.Red}, game.Position{Row: 0, Col: 0})

		var rv *RuleViolationError
		require.ErrorAs(t, err, &rv)
		var verr *ValidationError
		require.True(t, errors.As(rv.Err, &verr), "rule violations wrap the validation failure")
	})
}

func TestIsSetupComplete(t *testing.T) {
	eng := NewEngine()
	gs := game.NewGameState(game.Human, game.Human)
	require.False(t, eng.IsSetupComplete(gs))

	for _, side := range []game.Side{game.Red, game.Blue} {
		gs.ActivePlayer = side
		minRow, _ := game.SetupRows(side)
		for i, rank := range game.StandardArmy() {
			pos := game.Position{Row: minRow + i/game.BoardSize, Col: i % game.BoardSize}
			next, err := eng.ApplyPlacement(gs, game.Piece{Rank: rank, Owner: side}, pos)
			require.NoError(t, err)
			gs = next
			gs.ActivePlayer = side
		}
	}
	require.True(t, eng.IsSetupComplete(gs))
	require.Equal(t, 2*game.ArmySize, gs.TotalPieces())
}
