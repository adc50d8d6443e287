package main

import (
	"encoding/json"
	"fmt"
	"recallvantage/internal/scenariofile"
	"recallvantage/internal/service"
	"time"

	"github.com/spf13/cobra"
)

func newCalibrateCommand(c *cli) *cobra.Command {
	var (
		symbol       string
		modelFlag    string
		lookbackDays int
		horizonDays  int
		asJson       bool
	)
	command := &cobra.Command{
		Use:   "calibrate",
		Short: "Set a model's baseline volatility from the symbol's price history",
		RunE: func(command *cobra.Command, args []string) error {
			model, err := c.modelFromFlag(modelFlag)
			if err != nil {
				return err
			}

			lookback := time.Duration(lookbackDays) * 24 * time.Hour
			result, err := c.deps.CalibrationService.Calibrate(command.Context(), *model, symbol, lookback, horizonDays)
			if err != nil {
				return err
			}

			out := command.OutOrStdout()
			if asJson {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "    ")
				return encoder.Encode(result)
			}

			fmt.Fprintf(out, "# %s: %d closes from %s to %s\n", result.Symbol, result.Observations, result.Start.Format(time.DateOnly), result.End.Format(time.DateOnly))
			fmt.Fprintf(out, "# daily volatility %.4f, %d day volatility %.4f\n", result.DailyVolatility, result.HorizonDays, result.HorizonVolatility)
			return scenariofile.Encode(out, result.Model, scenariofile.Format_YAML)
		},
	}
	command.Flags().StringVar(&symbol, "symbol", "", "ticker to pull price history for")
	command.Flags().StringVar(&modelFlag, "model", "", "model name or .yaml/.csv file, defaults to the default preset")
	command.Flags().IntVar(&lookbackDays, "lookback", int(service.DefaultCalibrationLookback/(24*time.Hour)), "days of price history")
	command.Flags().IntVar(&horizonDays, "horizon", service.DefaultCalibrationHorizon, "holding horizon in trading days")
	command.Flags().BoolVar(&asJson, "json", false, "print the full calibration result as json")
	command.MarkFlagRequired("symbol")
	return command
}
