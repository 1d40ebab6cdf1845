package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Playout is the outcome of one random hand played from the root.
type Playout struct {
	Seed           int64   // RNG seed for this hand (for replay)
	StartingPlayer int     // Player who acted first
	Depth          int     // Actions taken before the hand ended
	RelativePot    float64 // Final pot as a multiple of the antes
	Showdown       bool    // Ended without a fold
}

// StarterStats tracks pots for hands opened by one player.
type StarterStats struct {
	Hands  int
	SumPot float64
}

// Statistics accumulates final pot sizes over many playouts.
type Statistics struct {
	Hands   int
	SumPot  float64
	SumPot2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all values for median/percentile calculation

	Showdowns   int
	Folds       int
	ShowdownPot float64
	FoldPot     float64

	ByStarter [2]StarterStats

	MaxPot      float64
	MaxDepth    int
	DepthCounts map[int]int
}

// Mean returns the mean final relative pot.
func (s *Statistics) Mean() float64 {
	if s.Hands == 0 {
		return 0
	}
	return s.SumPot / float64(s.Hands)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Hands < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumPot2 - float64(s.Hands)*mean*mean) / float64(s.Hands-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(math.Max(s.Variance(), 0))
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

// Add incorporates a new playout into the statistics.
func (s *Statistics) Add(p Playout) {
	s.Hands++
	s.SumPot += p.RelativePot
	s.SumPot2 += p.RelativePot * p.RelativePot
	s.Values = append(s.Values, p.RelativePot)

	if p.Showdown {
		s.Showdowns++
		s.ShowdownPot += p.RelativePot
	} else {
		s.Folds++
		s.FoldPot += p.RelativePot
	}

	if p.StartingPlayer == 0 || p.StartingPlayer == 1 {
		s.ByStarter[p.StartingPlayer].Hands++
		s.ByStarter[p.StartingPlayer].SumPot += p.RelativePot
	}

	if p.RelativePot > s.MaxPot {
		s.MaxPot = p.RelativePot
	}
	if p.Depth > s.MaxDepth {
		s.MaxDepth = p.Depth
	}
	if s.DepthCounts == nil {
		s.DepthCounts = make(map[int]int)
	}
	s.DepthCounts[p.Depth]++
}

// Merge folds other into s. Workers each fill their own Statistics and merge
// at the end.
func (s *Statistics) Merge(other *Statistics) {
	s.Hands += other.Hands
	s.SumPot += other.SumPot
	s.SumPot2 += other.SumPot2
	s.Values = append(s.Values, other.Values...)
	s.Showdowns += other.Showdowns
	s.Folds += other.Folds
	s.ShowdownPot += other.ShowdownPot
	s.FoldPot += other.FoldPot
	for i := range s.ByStarter {
		s.ByStarter[i].Hands += other.ByStarter[i].Hands
		s.ByStarter[i].SumPot += other.ByStarter[i].SumPot
	}
	s.MaxPot = math.Max(s.MaxPot, other.MaxPot)
	s.MaxDepth = max(s.MaxDepth, other.MaxDepth)
	if len(other.DepthCounts) > 0 && s.DepthCounts == nil {
		s.DepthCounts = make(map[int]int, len(other.DepthCounts))
	}
	for d, n := range other.DepthCounts {
		s.DepthCounts[d] += n
	}
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile. p is clamped to
// [0, 1].
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	p = min(max(p, 0), 1)
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// StarterMean returns the mean pot of hands opened by player.
func (s *Statistics) StarterMean(player int) float64 {
	if player < 0 || player > 1 {
		return 0
	}
	st := s.ByStarter[player]
	if st.Hands == 0 {
		return 0
	}
	return st.SumPot / float64(st.Hands)
}

// ShowdownRate is the fraction of hands that reached a showdown.
func (s *Statistics) ShowdownRate() float64 {
	if s.Hands == 0 {
		return 0
	}
	return float64(s.Showdowns) / float64(s.Hands)
}

// IsLedgerBalanced checks that showdown and fold pots add up to the total.
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.SumPot-s.ShowdownPot-s.FoldPot) <= 1e-6
}

// Validate checks the counters agree with each other.
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: total=%.6f, showdown=%.6f, fold=%.6f",
			s.SumPot, s.ShowdownPot, s.FoldPot)
	}
	if s.Hands <= 0 {
		return fmt.Errorf("invalid hands count: %d", s.Hands)
	}
	if len(s.Values) != s.Hands {
		return fmt.Errorf("values array length (%d) does not match hands count (%d)",
			len(s.Values), s.Hands)
	}
	if s.Showdowns+s.Folds != s.Hands {
		return fmt.Errorf("showdowns (%d) + folds (%d) does not match hands (%d)",
			s.Showdowns, s.Folds, s.Hands)
	}
	if n := s.ByStarter[0].Hands + s.ByStarter[1].Hands; n != s.Hands {
		return fmt.Errorf("starter hands total (%d) does not match total hands (%d)", n, s.Hands)
	}
	depths := 0
	for _, n := range s.DepthCounts {
		depths += n
	}
	if depths != s.Hands {
		return fmt.Errorf("depth counts total (%d) does not match total hands (%d)", depths, s.Hands)
	}
	return nil
}
