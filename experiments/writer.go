package experiments

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"catan/features"
	"catan/game"
)

// WriteCSV emits one row per seat of the batch result, with a trailing
// summary row for draws.
func WriteCSV(w io.Writer, config game.Config, stats *GameStats) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	header := []string{"color", "wins", "games", "win_rate", "avg_turns"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i := 0; i < config.NumPlayers; i++ {
		color := game.Color(i)
		row := []string{
			color.String(),
			fmt.Sprintf("%d", stats.Wins[color]),
			fmt.Sprintf("%d", stats.Games),
			fmt.Sprintf("%.4f", stats.WinRate(color)),
			fmt.Sprintf("%.1f", stats.AvgTurns()),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing row for %s: %w", color, err)
		}
	}

	draws := []string{
		"draw",
		fmt.Sprintf("%d", stats.Draws),
		fmt.Sprintf("%d", stats.Games),
		fmt.Sprintf("%.4f", float64(stats.Draws)/max1(stats.Games)),
		fmt.Sprintf("%.1f", stats.AvgTurns()),
	}
	if err := writer.Write(draws); err != nil {
		return fmt.Errorf("writing draw row: %w", err)
	}

	writer.Flush()
	return writer.Error()
}

// WriteFeaturesCSV emits one row per collected observation. All rows
// share the first sample's column order.
func WriteFeaturesCSV(w io.Writer, samples []*features.Vector) error {
	if len(samples) == 0 {
		return nil
	}
	writer := csv.NewWriter(w)
	defer writer.Flush()

	names := samples[0].Names()
	if err := writer.Write(names); err != nil {
		return fmt.Errorf("writing feature header: %w", err)
	}
	for _, sample := range samples {
		row := make([]string, len(names))
		for i, name := range names {
			row[i] = strconv.FormatFloat(sample.Get(name), 'g', -1, 64)
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing feature row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func max1(n int) float64 {
	if n == 0 {
		return 1
	}
	return float64(n)
}
