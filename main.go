package main

import (
	"flag"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"catan/config"
	"catan/experiments"
	"catan/game"
	"catan/player"
	"catan/searcher"
)

func main() {
	configPath := flag.String("config", "experiment.yaml", "experiment config file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("could not load config")
	}
	mapType, err := cfg.MapType()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid map")
	}

	batch := &experiments.Batch{
		Config: game.Config{
			NumPlayers: len(cfg.Players),
			VpsToWin:   cfg.VpsToWin,
			MapType:    mapType,
			Seed:       cfg.Seed,
		},
		Games:           cfg.Games,
		Workers:         cfg.Workers,
		Agents:          agentFactory(cfg),
		CollectFeatures: cfg.FeaturesOutput != "",
	}

	log.Info().
		Int("games", cfg.Games).
		Int("workers", cfg.Workers).
		Str("map", cfg.Map).
		Msg("starting batch")
	stats := batch.Run()

	out, err := os.Create(cfg.Output)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Output).Msg("could not create output file")
	}
	defer out.Close()
	if err := experiments.WriteCSV(out, batch.Config, stats); err != nil {
		log.Fatal().Err(err).Msg("could not write results")
	}

	if cfg.FeaturesOutput != "" {
		samples, err := os.Create(cfg.FeaturesOutput)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.FeaturesOutput).Msg("could not create features file")
		}
		defer samples.Close()
		if err := experiments.WriteFeaturesCSV(samples, stats.Samples); err != nil {
			log.Fatal().Err(err).Msg("could not write features")
		}
	}

	for i := range cfg.Players {
		color := game.Color(i)
		log.Info().
			Stringer("color", color).
			Str("strategy", cfg.Players[i].Strategy).
			Int("wins", stats.Wins[color]).
			Float64("win_rate", stats.WinRate(color)).
			Msg("result")
	}
	log.Info().Int("draws", stats.Draws).Float64("avg_turns", stats.AvgTurns()).Msg("batch finished")
}

// agentFactory builds the configured agents, deriving per-game seeds
// so parallel games stay reproducible.
func agentFactory(cfg *config.Config) experiments.AgentFactory {
	return func(gameIndex int) []game.Agent {
		agents := make([]game.Agent, len(cfg.Players))
		for i, pc := range cfg.Players {
			color := game.Color(i)
			seed := cfg.Seed + uint64(gameIndex)*uint64(len(cfg.Players)) + uint64(i)
			switch pc.Strategy {
			case "value":
				agents[i] = player.NewValuePlayer(color, pc.Epsilon, seed)
			case "mcts":
				options := []searcher.Option{
					searcher.WithSimulations(pc.Simulations),
					searcher.WithSeed(seed),
				}
				if pc.Pruning != nil {
					options = append(options, searcher.WithPruning(*pc.Pruning))
				}
				agents[i] = searcher.NewMCTSPlayer(color, options...)
			default:
				agents[i] = player.NewRandomPlayer(color, seed)
			}
		}
		return agents
	}
}
