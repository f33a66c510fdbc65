package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"stratego/game"
	"stratego/rules"
)

// Update is one applied move plus the snapshot it produced.
type Update struct {
	Move  game.Move
	State *game.GameState
}

// UpdateGetter polls for the next update without blocking. ok is false when
// nothing new has arrived yet.
type UpdateGetter func() (Update, bool)

// Local runs a complete game in-process: it sets up both armies, asks each
// side's Player for moves, and applies them through the rules engine until
// the game ends. Consumers (a renderer, a logger) poll updates between
// frames instead of blocking on the loop.
type Local struct {
	rules    rules.Engine
	state    *game.GameState
	players  map[game.Side]Player
	updateCh chan Update
}

func NewLocal(rulesEngine rules.Engine, red, blue Player) *Local {
	return &Local{
		rules: rulesEngine,
		players: map[game.Side]Player{
			game.Red:  red,
			game.Blue: blue,
		},
		updateCh: make(chan Update, 64),
	}
}

// Init builds the initial state with both armies placed randomly in their
// home rows and transitions it to Playing. It returns the starting snapshot
// and a poll-style getter for subsequent updates.
func (e *Local) Init() (*game.GameState, UpdateGetter, error) {
	gs := game.NewGameState(e.players[game.Red].Type(), e.players[game.Blue].Type())

	for _, side := range [2]game.Side{game.Red, game.Blue} {
		var err error
		gs, err = e.placeArmy(gs, side)
		if err != nil {
			return nil, nil, fmt.Errorf("setup for %s: %w", side, err)
		}
	}
	if !e.rules.IsSetupComplete(gs) {
		return nil, nil, fmt.Errorf("setup finished with incomplete armies")
	}

	e.state = gs.BeginPlay()
	getter := func() (Update, bool) {
		select {
		case u := <-e.updateCh:
			return u, true
		default:
			return Update{}, false
		}
	}
	return e.state, getter, nil
}

// placeArmy fills side's four home rows with a shuffled standard army.
func (e *Local) placeArmy(gs *game.GameState, side game.Side) (*game.GameState, error) {
	army := game.StandardArmy()
	frand.Shuffle(len(army), func(i, j int) {
		army[i], army[j] = army[j], army[i]
	})

	// Placement validation requires the owner to be the active player;
	// alternation during setup is the engine's own convention.
	gs = gs.Copy()
	gs.ActivePlayer = side

	minRow, maxRow := game.SetupRows(side)
	i := 0
	for row := minRow; row <= maxRow; row++ {
		for col := 0; col < game.BoardSize; col++ {
			piece := game.Piece{Rank: army[i], Owner: side}
			var err error
			gs, err = e.rules.ApplyPlacement(gs, piece, game.Position{Row: row, Col: col})
			if err != nil {
				return nil, err
			}
			i++
		}
	}
	return gs, nil
}

// Run drives the game to completion and returns the winner (NoSide for a
// draw). A player that cannot resolve its turn aborts the game.
func (e *Local) Run() (game.Side, error) {
	if e.state == nil {
		return game.NoSide, fmt.Errorf("engine not initialized")
	}
	log.Info().Str("starting_player", e.state.ActivePlayer.String()).Msg("game starting")

	moves := 0
	for e.state.Phase == game.Playing {
		if moves >= MaxMoves {
			return game.NoSide, fmt.Errorf("game exceeded %d moves without finishing", MaxMoves)
		}

		side := e.state.ActivePlayer
		move, err := e.players[side].FindMove(e.state)
		if err != nil {
			return game.NoSide, fmt.Errorf("turn %d unresolved for %s: %w", e.state.Turn+1, side, err)
		}

		next, err := e.rules.ApplyMove(e.state, move)
		if err != nil {
			return game.NoSide, fmt.Errorf("player for %s produced an unplayable move: %w", side, err)
		}
		e.state = next
		e.publish(Update{Move: move, State: next})
		moves++
	}

	log.Info().
		Str("winner", e.state.Winner.String()).
		Int("turns", e.state.Turn).
		Msg("game over")
	return e.state.Winner, nil
}

// State returns the current snapshot.
func (e *Local) State() *game.GameState {
	return e.state
}

// publish hands the update to pollers; when nobody is draining, the oldest
// update is dropped rather than stalling the game loop.
func (e *Local) publish(u Update) {
	select {
	case e.updateCh <- u:
	default:
		select {
		case <-e.updateCh:
		default:
		}
		select {
		case e.updateCh <- u:
		default:
		}
	}
}
