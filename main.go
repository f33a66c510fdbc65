package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"stratego/communication"
	"stratego/config"
	"stratego/engine"
	"stratego/experiments"
	"stratego/game"
	"stratego/rules"
	"stratego/searcher"
	"stratego/searcher/agent"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	switch cfg.Mode {
	case "serve":
		runServer(cfg)
	case "experiment":
		if err := experiments.RunDifficultyMatchups(cfg.Games); err != nil {
			log.Fatal().Err(err).Msg("experiment failed")
		}
	default:
		runSelfPlay(cfg)
	}
}

func runSelfPlay(cfg *config.Config) {
	redType, err := config.PlayerTypeFor(cfg.RedPlayer)
	if err != nil {
		log.Fatal().Err(err).Msg("bad red_player")
	}
	blueType, err := config.PlayerTypeFor(cfg.BluePlayer)
	if err != nil {
		log.Fatal().Err(err).Msg("bad blue_player")
	}
	if redType == game.Human || blueType == game.Human {
		log.Fatal().Msg("selfplay mode needs two AI players; use serve mode for human play")
	}

	rulesEngine := rules.NewEngine()
	local := engine.NewLocal(rulesEngine,
		newAIPlayer(rulesEngine, redType, cfg),
		newAIPlayer(rulesEngine, blueType, cfg))

	if _, _, err := local.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to set up game")
	}
	winner, err := local.Run()
	if err != nil {
		log.Fatal().Err(err).Msg("game aborted")
	}
	log.Info().Str("winner", winner.String()).Msg("self-play finished")
}

func runServer(cfg *config.Config) {
	redType, err := config.PlayerTypeFor(cfg.RedPlayer)
	if err != nil {
		log.Fatal().Err(err).Msg("bad red_player")
	}
	blueType, err := config.PlayerTypeFor(cfg.BluePlayer)
	if err != nil {
		log.Fatal().Err(err).Msg("bad blue_player")
	}

	rulesEngine := rules.NewEngine()
	orchestrator := agent.NewOrchestrator(rulesEngine,
		searcher.NewMinimax(rulesEngine, searcher.WithShuffle(), searcher.WithMetrics()))
	server := communication.NewServer(rulesEngine, orchestrator,
		game.NewGameState(redType, blueType))

	log.Info().Str("addr", cfg.ListenAddr).Msg("listening")
	if err := http.ListenAndServe(cfg.ListenAddr, server.Router()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newAIPlayer(rulesEngine rules.Engine, playerType game.PlayerType, cfg *config.Config) engine.Player {
	orchestrator := agent.NewOrchestrator(rulesEngine,
		searcher.NewMinimax(rulesEngine, searcher.WithShuffle()))
	return engine.NewAIPlayer(orchestrator, playerType, cfg.TimeLimit())
}
