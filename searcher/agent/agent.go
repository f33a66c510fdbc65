package agent

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"stratego/game"
	"stratego/rules"
	"stratego/searcher"
)

// DefaultTimeLimit is the per-attempt search budget when the caller does not
// specify one.
const DefaultTimeLimit = 950 * time.Millisecond

// maxAttempts is how many times a search may fail or produce an illegal
// move before the turn is abandoned.
const maxAttempts = 3

// Endgame boost: once the combined piece count drops below the threshold,
// the shrunken branching factor buys two extra plies at every difficulty.
const (
	endgameThreshold = 10
	endgameBoost     = 2
)

// Difficulty selects the base search depth.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	default:
		return "Hard"
	}
}

// BaseDepth is the fixed difficulty-to-depth table.
func (d Difficulty) BaseDepth() int {
	switch d {
	case Easy:
		return 2
	case Medium:
		return 4
	default:
		return 6
	}
}

// DifficultyFor maps an AI player type to its difficulty. Human has no
// difficulty; callers should not ask.
func DifficultyFor(t game.PlayerType) Difficulty {
	switch t {
	case game.AIMedium:
		return Medium
	case game.AIHard:
		return Hard
	default:
		return Easy
	}
}

// SearchDepth computes the effective depth for a position: the difficulty's
// base depth plus the endgame boost when fewer than 10 pieces remain in
// total.
func SearchDepth(difficulty Difficulty, totalPieces int) int {
	depth := difficulty.BaseDepth()
	if totalPieces < endgameThreshold {
		depth += endgameBoost
	}
	return depth
}

// Searcher is the search capability the orchestrator drives. The concrete
// implementation is searcher.Minimax; tests substitute stubs.
type Searcher interface {
	FindBestMove(gs *game.GameState, maxDepth int, deadline time.Time) (game.Move, searcher.Metric, bool)
}

// AIMoveFailedError is the fatal-for-turn failure class: the search was
// given three attempts and produced no legal move. The turn cannot proceed
// automatically; the caller must escalate.
type AIMoveFailedError struct {
	Attempts int
	Err      error
}

func (e *AIMoveFailedError) Error() string {
	return fmt.Sprintf("AI move failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *AIMoveFailedError) Unwrap() error {
	return e.Err
}

// Orchestrator turns "it is the AI's turn" into a concrete, legal move, or
// fails loudly trying.
type Orchestrator struct {
	engine   rules.Engine
	searcher Searcher
	inFlight atomic.Bool
}

func NewOrchestrator(engine rules.Engine, s Searcher) *Orchestrator {
	return &Orchestrator{engine: engine, searcher: s}
}

// RequestMove runs the search with a fresh deadline per attempt and
// validates every candidate against the current state before accepting it.
// Candidates that are missing or illegal trigger a retry so a shuffled
// search can explore differently; after three failures the turn fails with
// an *AIMoveFailedError.
func (o *Orchestrator) RequestMove(gs *game.GameState, difficulty Difficulty, timeLimit time.Duration) (game.Move, error) {
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}
	depth := SearchDepth(difficulty, gs.TotalPieces())

	var move game.Move
	err := retry.Do(
		func() error {
			deadline := time.Now().Add(timeLimit)
			candidate, metric, found := o.searcher.FindBestMove(gs, depth, deadline)
			if !found {
				return fmt.Errorf("search found no move")
			}
			if err := o.engine.ValidateMove(gs, candidate); err != nil {
				return fmt.Errorf("search returned illegal move %s: %w", candidate, err)
			}
			log.Debug().
				Str("player", gs.ActivePlayer.String()).
				Stringer("difficulty", difficulty).
				Int("depth", depth).
				Int("completed_depth", metric.CompletedDepth).
				Int64("nodes", metric.Nodes).
				Dur("duration", metric.Duration).
				Msg("search complete")
			move = candidate
			return nil
		},
		retry.Attempts(maxAttempts),
		retry.Delay(time.Millisecond),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		failure := &AIMoveFailedError{Attempts: maxAttempts, Err: err}
		log.Error().
			Err(failure).
			Str("player", gs.ActivePlayer.String()).
			Stringer("difficulty", difficulty).
			Msg("AI move failed, turn unresolved")
		return game.Move{}, failure
	}
	return move, nil
}
