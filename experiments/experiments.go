package experiments

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"stratego/engine"
	"stratego/experiments/metrics"
	"stratego/game"
	"stratego/searcher"
	"stratego/searcher/agent"
)

// TimeBudget is the per-move search budget used in matchups. Kept small so
// a full experiment finishes in minutes.
const TimeBudget = 50 * time.Millisecond

// MaxParallelGames caps concurrently running games.
const MaxParallelGames = 4

var difficultyConfigs = []metrics.AgentConfig{
	{ID: 1, Difficulty: "Easy", TimeLimit: TimeBudget},
	{ID: 2, Difficulty: "Medium", TimeLimit: TimeBudget},
	{ID: 3, Difficulty: "Hard", TimeLimit: TimeBudget},
}

// RunDifficultyMatchups plays numGames per difficulty pairing (every config
// against every other, including mirror matches), writes the raw records as
// CSV and logs a summary.
func RunDifficultyMatchups(numGames int) error {
	matchUps := [][2]metrics.AgentConfig{}
	for _, a := range difficultyConfigs {
		for _, b := range difficultyConfigs {
			matchUps = append(matchUps, [2]metrics.AgentConfig{a, b})
		}
	}
	return runExperiment("difficulty_matchups", difficultyConfigs, matchUps, numGames)
}

func runExperiment(name string, configs []metrics.AgentConfig, matchUps [][2]metrics.AgentConfig, numGames int) error {
	var mu sync.Mutex
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	grp := errgroup.Group{}
	grp.SetLimit(MaxParallelGames)

	gameID := 0
	for _, matchUp := range matchUps {
		for i := 0; i < numGames; i++ {
			gameID++
			id := gameID
			pair := matchUp
			grp.Go(func() error {
				record, moves, err := runGame(id, pair[0], pair[1])
				if err != nil {
					return fmt.Errorf("game %d (%s vs %s): %w", id, pair[0].Difficulty, pair[1].Difficulty, err)
				}
				mu.Lock()
				gameRecords = append(gameRecords, record)
				moveRecords = append(moveRecords, moves...)
				mu.Unlock()
				log.Info().
					Int("game", id).
					Str("matchup", pair[0].Difficulty+" vs "+pair[1].Difficulty).
					Str("winner", record.Winner).
					Int("turns", record.Turns).
					Msg("game finished")
				return nil
			})
		}
	}
	if err := grp.Wait(); err != nil {
		return err
	}

	writer, err := metrics.NewWriter(name)
	if err != nil {
		return err
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}
	log.Info().Str("dir", writer.BaseDir()).Msg("records written")

	logSummary(gameRecords, moveRecords)
	return nil
}

// runGame plays one game between two configured agents and returns its
// records.
func runGame(id int, red, blue metrics.AgentConfig) (metrics.GameRecord, []metrics.MoveRecord, error) {
	redPlayer := newMeasuredPlayer(red)
	bluePlayer := newMeasuredPlayer(blue)

	local := engine.NewLocal(newRules(), redPlayer, bluePlayer)
	if _, _, err := local.Init(); err != nil {
		return metrics.GameRecord{}, nil, err
	}

	start := time.Now()
	winner, err := local.Run()
	if err != nil {
		return metrics.GameRecord{}, nil, err
	}

	record := metrics.GameRecord{
		ID:        id,
		Agent1:    red.ID,
		Agent2:    blue.ID,
		Winner:    winner.String(),
		Turns:     local.State().Turn,
		StartTime: start,
		Duration:  time.Since(start),
	}

	var moves []metrics.MoveRecord
	for _, player := range []*measuredPlayer{redPlayer, bluePlayer} {
		for step, metric := range player.collected {
			moves = append(moves, metrics.MoveRecord{
				Game:   id,
				Step:   step + 1,
				Player: player.side(),
				Metric: metric,
			})
		}
	}
	return record, moves, nil
}

// measuredPlayer drives one side with a minimax searcher directly, keeping
// each move's search metric for the records.
type measuredPlayer struct {
	minimax    *searcher.Minimax
	difficulty agent.Difficulty
	timeLimit  time.Duration
	playerType game.PlayerType
	collected  []searcher.Metric
}

func newMeasuredPlayer(config metrics.AgentConfig) *measuredPlayer {
	difficulty, playerType := parseDifficulty(config.Difficulty)
	return &measuredPlayer{
		minimax:    searcher.NewMinimax(newRules(), searcher.WithMetrics(), searcher.WithShuffle()),
		difficulty: difficulty,
		timeLimit:  config.TimeLimit,
		playerType: playerType,
	}
}

func (p *measuredPlayer) Type() game.PlayerType {
	return p.playerType
}

func (p *measuredPlayer) FindMove(gs *game.GameState) (game.Move, error) {
	depth := agent.SearchDepth(p.difficulty, gs.TotalPieces())
	deadline := time.Now().Add(p.timeLimit)
	move, metric, found := p.minimax.FindBestMove(gs, depth, deadline)
	if !found {
		return game.Move{}, fmt.Errorf("no legal moves for %s", gs.ActivePlayer)
	}
	p.collected = append(p.collected, metric)
	return move, nil
}

func (p *measuredPlayer) side() string {
	return p.difficulty.String()
}

func parseDifficulty(name string) (agent.Difficulty, game.PlayerType) {
	switch name {
	case "Medium":
		return agent.Medium, game.AIMedium
	case "Hard":
		return agent.Hard, game.AIHard
	default:
		return agent.Easy, game.AIEasy
	}
}
