package experiments

import (
	"sync"

	"github.com/rs/zerolog/log"

	"catan/features"
	"catan/game"
)

// AgentFactory builds a fresh set of agents for one game. Each game
// gets its own agents so seeded streams never race across workers.
type AgentFactory func(gameIndex int) []game.Agent

// Batch describes a run of identical games.
type Batch struct {
	Config  game.Config
	Games   int
	Workers int
	Agents  AgentFactory

	// CollectFeatures records the winner's terminal-state observation
	// for each decided game.
	CollectFeatures bool
}

// Run plays every game of the batch across Workers goroutines and
// returns the merged stats. Game seeds are derived from the batch
// seed and the game index so runs are reproducible regardless of
// worker interleaving.
func (b *Batch) Run() *GameStats {
	workers := b.Workers
	if workers < 1 {
		workers = 1
	}

	indexes := make(chan int)
	results := make(chan *GameStats, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stats := NewGameStats()
			for index := range indexes {
				b.playOne(index, stats)
			}
			results <- stats
		}()
	}

	for i := 0; i < b.Games; i++ {
		indexes <- i
	}
	close(indexes)
	wg.Wait()
	close(results)

	merged := NewGameStats()
	for stats := range results {
		merged.Merge(stats)
	}
	return merged
}

func (b *Batch) playOne(index int, stats *GameStats) {
	config := b.Config
	config.Seed = b.Config.Seed + uint64(index)

	session, err := game.NewGame(config, b.Agents(index))
	if err != nil {
		log.Error().Err(err).Int("game", index).Msg("could not start game")
		return
	}

	ticks := 0
	for session.State.Turn < game.TurnsLimit {
		done, err := session.PlayTick()
		if err != nil {
			log.Error().Err(err).Int("game", index).Msg("game aborted")
			return
		}
		ticks++
		if done {
			break
		}
	}

	winner, won := session.State.Winner()
	stats.Record(winner, won, session.State.Turn, ticks)
	if b.CollectFeatures && won {
		stats.RecordSample(features.Extract(session.State, winner))
	}
	log.Info().
		Int("game", index).
		Bool("decided", won).
		Stringer("winner", winner).
		Int("turns", session.State.Turn).
		Msg("game finished")
}
