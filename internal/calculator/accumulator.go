package calculator

import (
	"fmt"
	"recallvantage/internal/domain"
)

// Accumulator keeps everything needed to derive run statistics. all
// state is sums and counts so partial accumulators can be merged, plus
// the retained P&L list for the order statistics and the stddev
type Accumulator struct {
	count     int
	wins      int
	sum       float64
	winSum    float64
	lossSum   float64
	impactSum float64

	categoryCounts []int
	samples        []float64
	maxSamples     int
}

// NewAccumulator preallocates room for expectedTrials samples. maxSamples
// is the retained-sample ceiling
func NewAccumulator(numCategories int, expectedTrials int, maxSamples int) *Accumulator {
	capacity := expectedTrials
	if capacity > maxSamples {
		capacity = maxSamples
	}
	if capacity < 0 {
		capacity = 0
	}
	return &Accumulator{
		categoryCounts: make([]int, numCategories),
		samples:        make([]float64, 0, capacity),
		maxSamples:     maxSamples,
	}
}

func (a *Accumulator) Add(o domain.TrialOutcome) error {
	if len(a.samples) >= a.maxSamples {
		return domain.ResourceLimitError{
			Field:     "retainedSamples",
			Requested: len(a.samples) + 1,
			Ceiling:   a.maxSamples,
		}
	}
	if o.CategoryIndex < 0 || o.CategoryIndex >= len(a.categoryCounts) {
		return fmt.Errorf("category index %d out of range for %d categories", o.CategoryIndex, len(a.categoryCounts))
	}

	a.count++
	a.sum += o.PnL
	a.impactSum += o.Impact
	if o.PnL > 0 {
		a.wins++
		a.winSum += o.PnL
	} else {
		a.lossSum += o.PnL
	}
	a.categoryCounts[o.CategoryIndex]++
	a.samples = append(a.samples, o.PnL)

	return nil
}

// Merge folds other into a. merging the same shards in the same order
// always gives the same floats
func (a *Accumulator) Merge(other *Accumulator) error {
	if len(other.categoryCounts) != len(a.categoryCounts) {
		return fmt.Errorf("cannot merge accumulators with %d and %d categories", len(a.categoryCounts), len(other.categoryCounts))
	}
	if len(a.samples)+len(other.samples) > a.maxSamples {
		return domain.ResourceLimitError{
			Field:     "retainedSamples",
			Requested: len(a.samples) + len(other.samples),
			Ceiling:   a.maxSamples,
		}
	}

	a.count += other.count
	a.wins += other.wins
	a.sum += other.sum
	a.winSum += other.winSum
	a.lossSum += other.lossSum
	a.impactSum += other.impactSum
	for i, c := range other.categoryCounts {
		a.categoryCounts[i] += c
	}
	a.samples = append(a.samples, other.samples...)

	return nil
}

func (a Accumulator) Count() int {
	return a.count
}

func (a Accumulator) Wins() int {
	return a.wins
}

func (a Accumulator) CategoryCounts() []int {
	return append([]int{}, a.categoryCounts...)
}

// Samples is a copy, callers are free to sort it
func (a Accumulator) Samples() []float64 {
	return append([]float64{}, a.samples...)
}
