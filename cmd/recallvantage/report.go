package main

import (
	"fmt"
	"io"
	"recallvantage/internal/app"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"
)

func money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := decimal.NewFromFloat(v).StringFixed(2)
	whole, cents, _ := strings.Cut(s, ".")
	for i := len(whole) - 3; i > 0; i -= 3 {
		whole = whole[:i] + "," + whole[i:]
	}
	return sign + "$" + whole + "." + cents
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func printReport(w io.Writer, out app.SimulateOutput) {
	r := out.Result
	status := "complete"
	if !r.Complete {
		status = "cancelled, partial result"
	}

	fmt.Fprintf(w, "run %s\n", r.RunID.String())
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "position\t%s (notional %s)\n", out.Position.String(), money(out.Position.Notional().InexactFloat64()))
	fmt.Fprintf(tw, "model\t%s\n", out.ModelName)
	fmt.Fprintf(tw, "trials\t%d of %d (%s), seed %d\n", r.TrialsCompleted, r.TrialsRequested, status, r.Seed)
	if out.Cached {
		fmt.Fprintf(tw, "\tserved from cache\n")
	}
	if out.SimulationRunID != nil {
		fmt.Fprintf(tw, "saved as\t%s\n", out.SimulationRunID.String())
	}
	fmt.Fprintf(tw, "\t\n")

	if r.TrialsCompleted == 0 {
		tw.Flush()
		fmt.Fprintln(w, "no trials completed")
		return
	}

	sharpe := fmt.Sprintf("%.2f", r.SharpeRatio)
	if r.DegenerateStddev {
		sharpe = "n/a (no variance)"
	}
	riskReward := fmt.Sprintf("%.1f:1", r.RiskRewardRatio)
	if r.DegenerateRiskReward {
		riskReward = "n/a"
	}

	fmt.Fprintf(tw, "win rate\t%s\n", percent(r.WinRate))
	fmt.Fprintf(tw, "expected p&l\t%s\n", money(r.ExpectedPnL))
	fmt.Fprintf(tw, "stddev p&l\t%s\n", money(r.StddevPnL))
	fmt.Fprintf(tw, "VaR (%s)\t%s\n", percent(r.Confidence), money(r.ValueAtRisk))
	fmt.Fprintf(tw, "CVaR (%s)\t%s\n", percent(r.Confidence), money(r.ConditionalValueAtRisk))
	fmt.Fprintf(tw, "sharpe\t%s\n", sharpe)
	fmt.Fprintf(tw, "avg win / avg loss\t%s / %s\n", money(r.AverageWin), money(r.AverageLoss))
	fmt.Fprintf(tw, "risk/reward\t%s\n", riskReward)
	fmt.Fprintf(tw, "kelly\t%.3f, recommended %.3f (%.2fx)\n", r.KellyFraction, r.RecommendedFraction, r.KellyMultiplier)
	fmt.Fprintf(tw, "expected exit price\t%s (%+.1f%%)\n", money(r.ExpectedExitPrice), r.ExpectedPriceMove*100)
	fmt.Fprintf(tw, "\t\n")
	fmt.Fprintf(tw, "scenario\tfrequency\tcount\n")
	for _, f := range r.CategoryFrequencies {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", f.Name, percent(f.Frequency), f.Count)
	}
	tw.Flush()

	fmt.Fprintf(w, "\n%s (confidence %s)\n", r.Recommendation.Rating, r.Recommendation.Confidence)
	for _, line := range r.Recommendation.Rationale {
		fmt.Fprintf(w, "  - %s\n", line)
	}
}
