package searcher

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"stratego/game"
	"stratego/rules"
)

// WinScore is the terminal score for a won game, far outside the [-1,1]
// heuristic range. Faster wins score slightly higher so the search prefers
// the shortest kill.
const WinScore = 1000.0

// deadlineCheckMask throttles clock reads to one per 64 visited nodes.
const deadlineCheckMask = 63

type Option func(m *Minimax)

// WithEvaluationFn replaces the default leaf heuristic.
func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *Minimax) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

// WithMetrics turns on search metric collection.
func WithMetrics() Option {
	return func(m *Minimax) {
		m.metrics = NewCollector()
	}
}

// WithShuffle randomizes root move order before every search, so repeated
// searches of the same position can land on different equal-valued moves.
func WithShuffle() Option {
	return func(m *Minimax) {
		m.shuffle = true
	}
}

// WithSeed fixes the tie-breaking RNG for reproducible searches in tests.
func WithSeed(seed uint64) Option {
	return func(m *Minimax) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

// Minimax is an iterative-deepening minimax search with alpha-beta pruning
// over the immutable game state. It depends on the rules engine only through
// the Engine interface, so tests can substitute their own.
type Minimax struct {
	engine   rules.Engine
	evaluate game.Evaluate
	metrics  Collector
	rng      *rand.Rand
	shuffle  bool
	nodes    uint64 // deadline check throttle
	overtime bool
}

func NewMinimax(engine rules.Engine, options ...Option) *Minimax {
	m := &Minimax{
		engine:   engine,
		evaluate: game.EvaluateMaterialPosition,
		metrics:  NewDummyCollector(),
		rng:      rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// FindBestMove searches from the active player's perspective up to maxDepth
// plies, deepening one ply at a time until the depth or the deadline is
// exhausted. It always returns the best move of the deepest fully completed
// iteration; if not even depth 1 completes, it still returns some legal
// move. The second return is false only when the position has no legal
// moves at all.
func (m *Minimax) FindBestMove(gs *game.GameState, maxDepth int, deadline time.Time) (game.Move, Metric, bool) {
	perspective := gs.ActivePlayer
	moves := m.engine.GenerateMoves(gs, perspective)
	if len(moves) == 0 {
		return game.Move{}, Metric{}, false
	}
	if m.shuffle {
		frand.Shuffle(len(moves), func(i, j int) {
			moves[i], moves[j] = moves[j], moves[i]
		})
	}

	m.metrics.Start(maxDepth)
	m.nodes = 0
	m.overtime = false

	// Best-so-far starts at the first legal move: a deadline hit during
	// depth 1 must still yield a playable answer.
	best := moves[0]
	for depth := 1; depth <= maxDepth; depth++ {
		move, score, completed := m.searchRoot(gs, moves, depth, deadline, perspective)
		if !completed {
			m.metrics.SetDeadlineHit()
			break
		}
		best = move
		m.metrics.SetCompletedDepth(depth)
		moveToFront(moves, move)
		if score >= WinScore-float64(depth) {
			break // a forced win needs no deeper look
		}
	}

	return best, m.metrics.Complete(), true
}

// searchRoot runs one full-width iteration at the given depth. Equal-valued
// root moves are tie-broken randomly.
func (m *Minimax) searchRoot(gs *game.GameState, moves []game.Move, depth int, deadline time.Time, perspective game.Side) (game.Move, float64, bool) {
	alpha := math.Inf(-1)
	beta := math.Inf(1)
	best := moves[0]
	bestScore := math.Inf(-1)
	ties := 1

	for _, move := range moves {
		child, err := m.engine.ApplyMove(gs, move)
		if err != nil {
			continue // pre-validated moves should not fail; skip defensively
		}
		score, ok := m.search(child, depth-1, alpha, beta, 1, deadline, perspective)
		if !ok {
			return game.Move{}, 0, false
		}
		switch {
		case score > bestScore:
			best, bestScore = move, score
			ties = 1
		case score == bestScore:
			ties++
			if m.rng.Intn(ties) == 0 {
				best = move
			}
		}
		alpha = math.Max(alpha, bestScore)
	}
	return best, bestScore, true
}

func (m *Minimax) search(gs *game.GameState, depth int, alpha, beta float64, ply int, deadline time.Time, perspective game.Side) (float64, bool) {
	if m.deadlineExceeded(deadline) {
		return 0, false
	}
	m.metrics.AddNode()

	if gs.Phase == game.GameOver {
		return terminalScore(gs, perspective, ply), true
	}
	if depth == 0 {
		return m.evaluate(gs, perspective), true
	}

	moves := m.engine.GenerateMoves(gs, gs.ActivePlayer)
	if len(moves) == 0 {
		// ApplyMove runs terminal detection, so a stalemate normally
		// arrives here already marked GameOver. Guard anyway.
		return m.evaluate(gs, perspective), true
	}

	if gs.ActivePlayer == perspective {
		value := math.Inf(-1)
		for _, move := range moves {
			child, err := m.engine.ApplyMove(gs, move)
			if err != nil {
				continue
			}
			score, ok := m.search(child, depth-1, alpha, beta, ply+1, deadline, perspective)
			if !ok {
				return 0, false
			}
			value = math.Max(value, score)
			alpha = math.Max(alpha, value)
			if alpha >= beta {
				m.metrics.AddCutoff()
				break
			}
		}
		return value, true
	}

	value := math.Inf(1)
	for _, move := range moves {
		child, err := m.engine.ApplyMove(gs, move)
		if err != nil {
			continue
		}
		score, ok := m.search(child, depth-1, alpha, beta, ply+1, deadline, perspective)
		if !ok {
			return 0, false
		}
		value = math.Min(value, score)
		beta = math.Min(beta, value)
		if alpha >= beta {
			m.metrics.AddCutoff()
			break
		}
	}
	return value, true
}

// deadlineExceeded reads the clock once every few nodes. time.Time carries a
// monotonic reading, so wall-clock adjustments cannot stretch or cut the
// budget.
func (m *Minimax) deadlineExceeded(deadline time.Time) bool {
	if m.overtime {
		return true
	}
	m.nodes++
	if m.nodes&deadlineCheckMask != 0 {
		return false
	}
	if time.Now().After(deadline) {
		m.overtime = true
	}
	return m.overtime
}

func terminalScore(gs *game.GameState, perspective game.Side, ply int) float64 {
	switch gs.Winner {
	case perspective:
		return WinScore - float64(ply)
	case game.NoSide:
		return 0 // draw
	default:
		return -WinScore + float64(ply)
	}
}

// moveToFront reorders the root move list so the previous iteration's best
// move is searched first, which tightens pruning on the next iteration.
func moveToFront(moves []game.Move, best game.Move) {
	for i, move := range moves {
		if move.Piece.ID == best.Piece.ID && move.From == best.From && move.To == best.To {
			copy(moves[1:i+1], moves[:i])
			moves[0] = best
			return
		}
	}
}
