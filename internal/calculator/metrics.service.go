package calculator

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
)

type RiskMetrics struct {
	Trials  int
	WinRate float64
	Mean    float64
	Stddev  float64

	ValueAtRisk            float64
	ConditionalValueAtRisk float64

	SharpeRatio      float64
	DegenerateStddev bool

	AverageWin           float64
	AverageLoss          float64
	RiskRewardRatio      float64
	DegenerateRiskReward bool

	KellyFraction       float64
	RecommendedFraction float64

	MeanImpact     float64
	CategoryCounts []int
}

// CalculateRiskMetrics derives everything shown for a run from the
// accumulated trials. an empty accumulator (cancelled before the first
// batch) gives zeroed metrics with the degenerate flags set
func CalculateRiskMetrics(acc *Accumulator, confidence float64, kellyMultiplier float64) (*RiskMetrics, error) {
	out := &RiskMetrics{
		Trials:         acc.count,
		CategoryCounts: acc.CategoryCounts(),
	}
	if acc.count == 0 {
		out.DegenerateStddev = true
		out.DegenerateRiskReward = true
		return out, nil
	}

	n := float64(acc.count)
	out.WinRate = float64(acc.wins) / n
	out.Mean = acc.sum / n
	out.MeanImpact = acc.impactSum / n

	sorted := acc.Samples()
	sort.Float64s(sorted)
	stddev, err := populationStddev(sorted)
	if err != nil {
		return nil, fmt.Errorf("failed to compute stddev: %w", err)
	}
	out.Stddev = stddev
	valueAtRisk, cvar, err := tailRisk(sorted, confidence)
	if err != nil {
		return nil, fmt.Errorf("failed to compute tail risk: %w", err)
	}
	out.ValueAtRisk = valueAtRisk
	out.ConditionalValueAtRisk = cvar

	out.SharpeRatio, out.DegenerateStddev = sharpeRatio(out.Mean, out.Stddev)

	if acc.wins > 0 {
		out.AverageWin = acc.winSum / float64(acc.wins)
	}
	if losses := acc.count - acc.wins; losses > 0 {
		// reported as a positive magnitude
		out.AverageLoss = -acc.lossSum / float64(losses)
	}
	if out.AverageLoss > 0 {
		out.RiskRewardRatio = out.AverageWin / out.AverageLoss
	} else {
		out.DegenerateRiskReward = true
	}

	out.KellyFraction = KellyFraction(out.WinRate, out.AverageWin, out.AverageLoss)
	out.RecommendedFraction = out.KellyFraction * kellyMultiplier

	return out, nil
}

// populationStddev over the ascending retained sample, two pass so a
// small spread around a large mean survives. only a sample of identical
// values is exactly 0
func populationStddev(sorted []float64) (float64, error) {
	if len(sorted) < 2 || sorted[0] == sorted[len(sorted)-1] {
		return 0, nil
	}
	return stats.StandardDeviationPopulation(sorted)
}

// QuantileIndex is the index of the empirical (1-confidence) quantile in
// an ascending sample of size n: the smallest value with at least a
// (1-confidence) share of trials at or below it
func QuantileIndex(n int, confidence float64) int {
	if n <= 0 {
		return 0
	}
	// the epsilon keeps 0.05*10000 from rounding up to 501
	k := int(math.Ceil((1-confidence)*float64(n)-1e-9)) - 1
	if k < 0 {
		k = 0
	}
	if k > n-1 {
		k = n - 1
	}
	return k
}

// tailRisk returns VaR and CVaR as P&L values, negative meaning a loss.
// CVaR averages every trial at or below the VaR threshold so ties at the
// threshold are included
func tailRisk(sorted []float64, confidence float64) (float64, float64, error) {
	if len(sorted) == 0 {
		return 0, 0, nil
	}
	valueAtRisk := sorted[QuantileIndex(len(sorted), confidence)]

	tailLen := sort.Search(len(sorted), func(i int) bool {
		return sorted[i] > valueAtRisk
	})
	cvar, err := stats.Mean(sorted[:tailLen])
	if err != nil {
		return 0, 0, err
	}
	// float summation can land a hair above the threshold
	if cvar > valueAtRisk {
		cvar = valueAtRisk
	}

	return valueAtRisk, cvar, nil
}

// sharpeRatio is mean/stddev; the bool flags the zero stddev case
// instead of dividing by zero
func sharpeRatio(mean, stddev float64) (float64, bool) {
	if stddev == 0 {
		return 0, true
	}
	return mean / stddev, false
}

// KellyFraction is the full-Kelly bet fraction clipped to [0, 1]. no
// winning trials means there is nothing to size
func KellyFraction(winRate, averageWin, averageLoss float64) float64 {
	if averageWin <= 0 {
		return 0
	}
	k := (winRate*averageWin - (1-winRate)*averageLoss) / averageWin
	if math.IsNaN(k) || k < 0 {
		return 0
	}
	if k > 1 {
		return 1
	}
	return k
}
