package engine

import (
	"time"

	"stratego/game"
	"stratego/searcher/agent"
)

// MaxMoves is a hard stop for a runaway game loop, independent of the rules
// engine's own turn limit.
const MaxMoves = 10000

// Player produces the next move for one side when its turn comes up.
type Player interface {
	Type() game.PlayerType
	FindMove(gs *game.GameState) (game.Move, error)
}

// AIPlayer drives one side through the AI orchestrator.
type AIPlayer struct {
	orchestrator *agent.Orchestrator
	playerType   game.PlayerType
	timeLimit    time.Duration
}

func NewAIPlayer(orchestrator *agent.Orchestrator, playerType game.PlayerType, timeLimit time.Duration) *AIPlayer {
	return &AIPlayer{
		orchestrator: orchestrator,
		playerType:   playerType,
		timeLimit:    timeLimit,
	}
}

func (p *AIPlayer) Type() game.PlayerType {
	return p.playerType
}

func (p *AIPlayer) FindMove(gs *game.GameState) (game.Move, error) {
	return p.orchestrator.RequestMove(gs, agent.DifficultyFor(p.playerType), p.timeLimit)
}
