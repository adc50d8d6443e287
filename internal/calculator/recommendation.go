package calculator

import (
	"fmt"
	"math"
	"recallvantage/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	Rating_StrongBuy = "STRONG BUY"
	Rating_Buy       = "BUY"
	Rating_Hold      = "HOLD"
	Rating_Avoid     = "AVOID"
)

// Recommend turns run metrics into the rating shown next to the results.
// kellyMultiplier is only used to label the suggested size
func Recommend(m RiskMetrics, kellyMultiplier float64) domain.Recommendation {
	out := domain.Recommendation{
		Rating:            rating(m),
		Confidence:        confidenceLabel(m),
		SuggestedFraction: m.RecommendedFraction,
	}
	if m.Trials == 0 {
		out.Rationale = []string{"no trials completed"}
		return out
	}

	out.Rationale = []string{
		fmt.Sprintf("Win rate: %.1f%% (%s)", m.WinRate*100, describeWinRate(m.WinRate)),
		describeRiskReward(m),
		fmt.Sprintf("Expected value: %s (%s)", formatMoneyShort(m.Mean), describeExpectedValue(m)),
		describeSharpe(m),
		fmt.Sprintf("Suggested position: %.1f%% of capital (%s)", m.RecommendedFraction*100, kellyLabel(kellyMultiplier)),
	}
	return out
}

func rating(m RiskMetrics) string {
	if m.Trials == 0 || m.Mean <= 0 || m.RecommendedFraction == 0 {
		return Rating_Avoid
	}
	if m.WinRate >= 0.8 && !m.DegenerateStddev && m.SharpeRatio >= 1 {
		return Rating_StrongBuy
	}
	if m.WinRate >= 0.55 {
		return Rating_Buy
	}
	return Rating_Hold
}

// confidence in the estimate itself, not in the trade. a tight win rate
// standard error plus a decent sharpe reads as very high
func confidenceLabel(m RiskMetrics) string {
	if m.Trials == 0 {
		return "Low"
	}
	se := math.Sqrt(m.WinRate * (1 - m.WinRate) / float64(m.Trials))
	sharpe := math.Abs(m.SharpeRatio)
	switch {
	case se <= 0.01 && sharpe >= 1:
		return "Very High"
	case se <= 0.02 && sharpe >= 0.5:
		return "High"
	case se <= 0.05:
		return "Moderate"
	default:
		return "Low"
	}
}

func describeWinRate(w float64) string {
	switch {
	case w >= 0.9:
		return "exceptional"
	case w >= 0.7:
		return "strong"
	case w >= 0.55:
		return "favorable"
	case w >= 0.45:
		return "coin flip"
	default:
		return "weak"
	}
}

func describeRiskReward(m RiskMetrics) string {
	if m.DegenerateRiskReward {
		return "Risk/Reward: n/a (no losing trials)"
	}
	label := "unfavorable"
	switch {
	case m.RiskRewardRatio >= 5:
		label = "highly asymmetric"
	case m.RiskRewardRatio >= 2:
		label = "asymmetric"
	case m.RiskRewardRatio >= 1:
		label = "balanced"
	}
	return fmt.Sprintf("Risk/Reward: %.1f:1 (%s)", m.RiskRewardRatio, label)
}

func describeExpectedValue(m RiskMetrics) string {
	if m.Mean <= 0 {
		return "negative"
	}
	if m.DegenerateStddev || m.Mean >= m.Stddev {
		return "strong positive"
	}
	return "positive"
}

func describeSharpe(m RiskMetrics) string {
	if m.DegenerateStddev {
		return "Sharpe ratio: n/a (no variance across trials)"
	}
	label := "negative"
	switch {
	case m.SharpeRatio >= 1:
		label = "excellent risk-adjusted returns"
	case m.SharpeRatio >= 0.5:
		label = "good risk-adjusted returns"
	case m.SharpeRatio >= 0:
		label = "modest risk-adjusted returns"
	}
	return fmt.Sprintf("Sharpe ratio: %.2f (%s)", m.SharpeRatio, label)
}

func kellyLabel(multiplier float64) string {
	switch multiplier {
	case 1:
		return "full Kelly"
	case 0.5:
		return "half-Kelly"
	case 0.25:
		return "quarter-Kelly"
	}
	return fmt.Sprintf("%.2fx Kelly", multiplier)
}

// formatMoneyShort renders 3345129 as $3.3M
func formatMoneyShort(v float64) string {
	d := decimal.NewFromFloat(v)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	switch {
	case d.GreaterThanOrEqual(decimal.NewFromInt(1_000_000_000)):
		return fmt.Sprintf("%s$%sB", sign, d.Div(decimal.NewFromInt(1_000_000_000)).StringFixed(1))
	case d.GreaterThanOrEqual(decimal.NewFromInt(1_000_000)):
		return fmt.Sprintf("%s$%sM", sign, d.Div(decimal.NewFromInt(1_000_000)).StringFixed(1))
	case d.GreaterThanOrEqual(decimal.NewFromInt(1_000)):
		return fmt.Sprintf("%s$%sK", sign, d.Div(decimal.NewFromInt(1_000)).StringFixed(1))
	}
	return fmt.Sprintf("%s$%s", sign, d.StringFixed(2))
}
