// Package statistics accumulates per-hand results of a batch match and
// reports the hero's win rate in big blinds per hand.
package statistics

import (
	"fmt"
	"math"
	"sort"
)

// HandResult is the outcome of one hand from the hero's point of view
type HandResult struct {
	NetBB    float64 // Big blinds won or lost by the hero
	Seed     int64   // Seed the hand was dealt from
	Seat     int     // Hero seat relative to the button (0 = button)
	Showdown bool    // The hand reached showdown
	Pot      int     // Final pot in chips
	PotBB    float64 // Final pot in big blinds
}

// SeatStats tracks results for one seat relative to the button
type SeatStats struct {
	Hands int
	SumBB float64
}

// Statistics tracks a running batch of hand results
type Statistics struct {
	Hands  int
	SumBB  float64
	SumBB2 float64 // Sum of squares for the variance
	Values []float64

	Wins            int
	ShowdownWins    int
	NonShowdownWins int
	ShowdownBB      float64 // Showdown hands, wins and losses
	NonShowdownBB   float64 // Hands decided by a fold, wins and losses

	Seats []SeatStats

	MaxPot  int
	MaxPotB float64
	BigPots int // Pots of at least BigPotBB
}

// BigPotBB is the pot size counted as a big pot
const BigPotBB = 50

// Add incorporates a hand result
func (s *Statistics) Add(r HandResult) {
	s.Hands++
	s.SumBB += r.NetBB
	s.SumBB2 += r.NetBB * r.NetBB
	s.Values = append(s.Values, r.NetBB)

	if r.NetBB > 0 {
		s.Wins++
		if r.Showdown {
			s.ShowdownWins++
		} else {
			s.NonShowdownWins++
		}
	}
	if r.Showdown {
		s.ShowdownBB += r.NetBB
	} else {
		s.NonShowdownBB += r.NetBB
	}

	if r.Seat >= 0 {
		for len(s.Seats) <= r.Seat {
			s.Seats = append(s.Seats, SeatStats{})
		}
		s.Seats[r.Seat].Hands++
		s.Seats[r.Seat].SumBB += r.NetBB
	}

	if r.Pot > s.MaxPot {
		s.MaxPot = r.Pot
		s.MaxPotB = r.PotBB
	}
	if r.PotBB >= BigPotBB {
		s.BigPots++
	}
}

// Mean returns big blinds per hand
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumBB / float64(s.Hands)
}

// Variance returns the sample variance
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumBB2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(0, s.Variance()))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Hands))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns the share of hands the hero won chips in
func (s *Statistics) WinRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Hands)
}

// Median returns the median result
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the interpolated value at p (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), s.Values...)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[lower+1]*weight
}

// SeatMean returns the mean result for a seat relative to the button
func (s *Statistics) SeatMean(seat int) float64 {
	if seat < 0 || seat >= len(s.Seats) || s.Seats[seat].Hands == 0 {
		return 0
	}
	return s.Seats[seat].SumBB / float64(s.Seats[seat].Hands)
}

// Validate checks the accounting is consistent
func (s *Statistics) Validate() error {
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values length (%d) does not match hands count (%d)", len(s.Values), s.Hands)
	}
	if math.Abs(s.SumBB-s.ShowdownBB-s.NonShowdownBB) > 1e-6 {
		return fmt.Errorf("ledger mismatch: total=%.6f showdown=%.6f non-showdown=%.6f",
			s.SumBB, s.ShowdownBB, s.NonShowdownBB)
	}
	if s.ShowdownWins+s.NonShowdownWins != s.Wins || s.Wins > s.Hands {
		return fmt.Errorf("win counts inconsistent: %d showdown + %d non-showdown of %d wins in %d hands",
			s.ShowdownWins, s.NonShowdownWins, s.Wins, s.Hands)
	}
	seatHands := 0
	for _, ss := range s.Seats {
		seatHands += ss.Hands
	}
	if seatHands != s.Hands {
		return fmt.Errorf("seat hands total (%d) does not match hands count (%d)", seatHands, s.Hands)
	}
	return nil
}
