package main

import (
	"bytes"
	"recallvantage/internal/app"
	"recallvantage/internal/domain"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_money(t *testing.T) {
	require.Equal(t, "$0.00", money(0))
	require.Equal(t, "$999.50", money(999.5))
	require.Equal(t, "$1,000.00", money(1000))
	require.Equal(t, "-$3,312,456.12", money(-3312456.12))
}

func Test_printReport(t *testing.T) {
	out := app.SimulateOutput{
		Position: domain.PositionSpec{
			Symbol:     "TSLA",
			Direction:  domain.Direction_Short,
			Shares:     100_000,
			EntryPrice: decimal.NewFromFloat(224.5),
		},
		ModelName: "recall-binary",
		Result: domain.SimulationResult{
			RunID:           uuid.New(),
			Complete:        false,
			TrialsCompleted: 2_000,
			TrialsRequested: 10_000,
			Confidence:      0.95,
			WinRate:         0.95,
			ExpectedPnL:     3_000_000,
			CategoryFrequencies: []domain.CategoryFrequency{
				{Name: "Recall", Count: 1_800, Frequency: 0.9},
				{Name: "No Event", Count: 200, Frequency: 0.1},
			},
			DegenerateRiskReward: true,
			Recommendation: domain.Recommendation{
				Rating:     "STRONG BUY",
				Confidence: "High",
				Rationale:  []string{"Win rate: 95.0% (exceptional)"},
			},
		},
	}

	buf := &bytes.Buffer{}
	printReport(buf, out)
	report := buf.String()
	require.Contains(t, report, "SHORT TSLA 100000 @ 224.50 (notional $22,450,000.00)")
	require.Contains(t, report, "2000 of 10000 (cancelled, partial result)")
	require.Contains(t, report, "$3,000,000.00")
	require.Contains(t, report, "n/a")
	require.Contains(t, report, "STRONG BUY (confidence High)")
	require.Contains(t, report, "  - Win rate: 95.0% (exceptional)")

	buf.Reset()
	out.Result.TrialsCompleted = 0
	printReport(buf, out)
	require.Contains(t, buf.String(), "no trials completed")
}
