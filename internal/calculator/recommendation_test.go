package calculator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecommend(t *testing.T) {
	t.Run("strong buy", func(t *testing.T) {
		m := RiskMetrics{
			Trials:              10_000,
			WinRate:             0.953,
			Mean:                3_345_129,
			Stddev:              2_477_873,
			SharpeRatio:         1.35,
			AverageWin:          3_600_000,
			AverageLoss:         226_700,
			RiskRewardRatio:     15.88,
			KellyFraction:       0.948,
			RecommendedFraction: 0.237,
		}
		rec := Recommend(m, 0.25)
		require.Equal(t, Rating_StrongBuy, rec.Rating)
		require.Equal(t, "Very High", rec.Confidence)
		require.Equal(t, 0.237, rec.SuggestedFraction)
		require.Equal(t, []string{
			"Win rate: 95.3% (exceptional)",
			"Risk/Reward: 15.9:1 (highly asymmetric)",
			"Expected value: $3.3M (strong positive)",
			"Sharpe ratio: 1.35 (excellent risk-adjusted returns)",
			"Suggested position: 23.7% of capital (quarter-Kelly)",
		}, rec.Rationale)
	})

	t.Run("buy without sharpe", func(t *testing.T) {
		m := RiskMetrics{
			Trials:              1_000,
			WinRate:             0.6,
			Mean:                10,
			Stddev:              40,
			SharpeRatio:         0.25,
			RecommendedFraction: 0.05,
		}
		require.Equal(t, Rating_Buy, Recommend(m, 0.25).Rating)
	})

	t.Run("hold on a low win rate", func(t *testing.T) {
		m := RiskMetrics{
			Trials:              1_000,
			WinRate:             0.3,
			Mean:                10,
			Stddev:              40,
			SharpeRatio:         0.25,
			RecommendedFraction: 0.01,
		}
		require.Equal(t, Rating_Hold, Recommend(m, 0.25).Rating)
	})

	t.Run("avoid negative expectation", func(t *testing.T) {
		m := RiskMetrics{
			Trials:      1_000,
			WinRate:     0.9,
			Mean:        -5,
			Stddev:      40,
			SharpeRatio: -0.125,
		}
		rec := Recommend(m, 0.5)
		require.Equal(t, Rating_Avoid, rec.Rating)
		require.Equal(t, "Suggested position: 0.0% of capital (half-Kelly)", rec.Rationale[4])
	})

	t.Run("empty run", func(t *testing.T) {
		rec := Recommend(RiskMetrics{}, 0.25)
		require.Equal(t, Rating_Avoid, rec.Rating)
		require.Equal(t, "Low", rec.Confidence)
		require.Equal(t, []string{"no trials completed"}, rec.Rationale)
	})
}

func Test_formatMoneyShort(t *testing.T) {
	require.Equal(t, "$3.3M", formatMoneyShort(3_345_129))
	require.Equal(t, "-$12.5K", formatMoneyShort(-12_499))
	require.Equal(t, "$99.10", formatMoneyShort(99.1))
	require.Equal(t, "$2.0B", formatMoneyShort(2_000_000_000))
}
