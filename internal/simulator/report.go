package simulator

import (
	"fmt"
	"io"
	"time"

	"github.com/lox/pokersim/internal/statistics"
)

// PrintSummary writes a plain-text report of a batch
func PrintSummary(w io.Writer, s *Summary) {
	stats := s.Stats
	mean := stats.Mean()
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== %s vs %s (%d opponents) ===\n", s.Config.Hero, s.Config.Villain, s.Config.Opponents)
	fmt.Fprintf(w, "Hands played: %d in %s\n", stats.Hands, s.Duration.Round(time.Millisecond))

	fmt.Fprintf(w, "\n=== RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.4f bb/hand\n", mean)
	fmt.Fprintf(w, "Median: %.4f bb/hand\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.4f bb\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.4f bb\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.4f, %.4f] bb/hand\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.3f, P25=%.3f, P75=%.3f, P95=%.3f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))
	fmt.Fprintf(w, "Hands won: %d (%.1f%%)\n", stats.Wins, stats.WinRate()*100)

	fmt.Fprintf(w, "\n=== PROFIT SOURCES ===\n")
	if stats.Wins > 0 {
		fmt.Fprintf(w, "Winning hands: %d showdown (%.1f%%), %d uncontested (%.1f%%)\n",
			stats.ShowdownWins, float64(stats.ShowdownWins)/float64(stats.Wins)*100,
			stats.NonShowdownWins, float64(stats.NonShowdownWins)/float64(stats.Wins)*100)
	}
	hands := float64(stats.Hands)
	fmt.Fprintf(w, "Showdown: %.3f bb/hand, uncontested: %.3f bb/hand\n",
		stats.ShowdownBB/hands, stats.NonShowdownBB/hands)

	fmt.Fprintf(w, "\n=== POTS ===\n")
	fmt.Fprintf(w, "Max pot: %d chips (%.1f bb)\n", stats.MaxPot, stats.MaxPotB)
	fmt.Fprintf(w, "Big pots (>=%dbb): %d (%.1f%%)\n", statistics.BigPotBB, stats.BigPots, float64(stats.BigPots)/hands*100)

	fmt.Fprintf(w, "\n=== SEATS (0 = button) ===\n")
	for seat, ss := range stats.Seats {
		if ss.Hands == 0 {
			continue
		}
		fmt.Fprintf(w, "Seat %d: %d hands, %.3f bb/hand\n", seat, ss.Hands, stats.SeatMean(seat))
	}
}
