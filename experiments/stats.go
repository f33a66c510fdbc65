package experiments

import (
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"

	"stratego/experiments/metrics"
	"stratego/rules"
)

func newRules() rules.Engine {
	return rules.NewEngine()
}

// logSummary condenses the raw records into a few headline numbers.
func logSummary(games []metrics.GameRecord, moves []metrics.MoveRecord) {
	if len(games) == 0 {
		return
	}

	turns := lo.Map(games, func(record metrics.GameRecord, _ int) float64 {
		return float64(record.Turns)
	})
	draws := lo.CountBy(games, func(record metrics.GameRecord) bool {
		return record.Winner == "None"
	})
	meanTurns, stdTurns := stat.MeanStdDev(turns, nil)

	log.Info().
		Int("games", len(games)).
		Int("draws", draws).
		Float64("mean_turns", meanTurns).
		Float64("std_turns", stdTurns).
		Msg("game summary")

	if len(moves) == 0 {
		return
	}
	nodes := lo.Map(moves, func(record metrics.MoveRecord, _ int) float64 {
		return float64(record.Nodes)
	})
	deadlineHits := lo.CountBy(moves, func(record metrics.MoveRecord) bool {
		return record.DeadlineHit
	})
	meanNodes, stdNodes := stat.MeanStdDev(nodes, nil)

	log.Info().
		Int("moves", len(moves)).
		Int("deadline_hits", deadlineHits).
		Float64("mean_nodes", meanNodes).
		Float64("std_nodes", stdNodes).
		Msg("search summary")
}
