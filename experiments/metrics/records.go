package metrics

import (
	"time"

	"stratego/searcher"
)

// AgentConfig describes one configured agent in an experiment.
type AgentConfig struct {
	ID         int
	Difficulty string
	TimeLimit  time.Duration
}

// GameRecord is the outcome of a single self-play game.
type GameRecord struct {
	ID        int
	Agent1    int // AgentConfig.ID, plays Red
	Agent2    int // AgentConfig.ID, plays Blue
	Winner    string
	Turns     int
	StartTime time.Time
	Duration  time.Duration
}

// MoveRecord is one move's search metrics within a game.
type MoveRecord struct {
	Game   int // GameRecord.ID
	Step   int
	Player string
	searcher.Metric
}
