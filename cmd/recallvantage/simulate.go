package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"recallvantage/internal/app"
	"recallvantage/internal/domain"
	"syscall"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type simulateFlags struct {
	symbol          string
	direction       string
	shares          int64
	entry           string
	modelFlag       string
	iterations      int
	confidence      float64
	seed            int64
	kellyMultiplier float64
	workers         int
	save            bool
	stream          bool
	asJson          bool
}

func (f simulateFlags) toInput(command *cobra.Command, model *domain.ScenarioModel) (*app.SimulateInput, error) {
	direction, err := domain.NewDirection(f.direction)
	if err != nil {
		return nil, err
	}
	entry := decimal.Zero
	if f.entry != "" {
		entry, err = decimal.NewFromString(f.entry)
		if err != nil {
			return nil, domain.NewInvalidParameterError("position.entryPrice", "'%s' is not a number", f.entry)
		}
	}

	config := domain.SimulationConfig{
		Iterations:      f.iterations,
		Confidence:      f.confidence,
		KellyMultiplier: f.kellyMultiplier,
	}
	if command.Flags().Changed("seed") {
		seed := f.seed
		config.Seed = &seed
	}

	return &app.SimulateInput{
		Position: domain.PositionSpec{
			Symbol:     f.symbol,
			Direction:  *direction,
			Shares:     f.shares,
			EntryPrice: entry,
		},
		Model:   model,
		Config:  config,
		Workers: f.workers,
		Save:    f.save,
	}, nil
}

func newSimulateCommand(c *cli) *cobra.Command {
	f := simulateFlags{}
	command := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a position against a recall scenario model",
		Long: "Simulate a position against a recall scenario model.\n" +
			"Ctrl-C stops the run and prints the result over the trials completed so far.",
		RunE: func(command *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(command.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			model, err := c.modelFromFlag(f.modelFlag)
			if err != nil {
				return err
			}
			in, err := f.toInput(command, model)
			if err != nil {
				return err
			}

			var out *app.SimulateOutput
			if f.stream {
				out, err = streamWithProgress(ctx, c.deps.SimulationApp, *in, command.ErrOrStderr())
			} else {
				out, err = c.deps.SimulationApp.Simulate(ctx, *in)
			}
			if err != nil {
				return err
			}

			w := command.OutOrStdout()
			if f.asJson {
				encoder := json.NewEncoder(w)
				encoder.SetIndent("", "    ")
				return encoder.Encode(out)
			}
			printReport(w, *out)
			return nil
		},
	}

	sim := domain.SimulationConfig{}.WithDefaults()
	flags := command.Flags()
	flags.StringVar(&f.symbol, "symbol", "", "ticker, used for quotes when --entry is not set")
	flags.StringVar(&f.direction, "direction", string(domain.Direction_Short), "long or short")
	flags.Int64Var(&f.shares, "shares", 100_000, "number of shares")
	flags.StringVar(&f.entry, "entry", "", "entry price, ie 224.50")
	flags.StringVar(&f.modelFlag, "model", "", "model name or .yaml/.csv file, defaults to "+domain.DefaultScenarioModelName)
	flags.IntVar(&f.iterations, "iterations", 10_000, "number of trials")
	flags.Float64Var(&f.confidence, "confidence", 0.95, "VaR confidence level")
	flags.Int64Var(&f.seed, "seed", 0, "seed for a reproducible run")
	flags.Float64Var(&f.kellyMultiplier, "kelly", sim.KellyMultiplier, "fraction of full Kelly to recommend")
	flags.IntVar(&f.workers, "workers", 1, "parallel workers")
	flags.BoolVar(&f.save, "save", false, "store the run in the ledger db")
	flags.BoolVar(&f.stream, "stream", false, "print progress while simulating")
	flags.BoolVar(&f.asJson, "json", false, "print the result as json")
	return command
}

func streamWithProgress(ctx context.Context, simulationApp app.SimulationApp, in app.SimulateInput, progress io.Writer) (*app.SimulateOutput, error) {
	if in.Workers > 1 || in.Save {
		return nil, fmt.Errorf("--stream runs on a single worker and cannot --save")
	}
	started, err := simulationApp.Stream(ctx, in)
	if err != nil {
		return nil, err
	}
	stream := started.Stream
	defer stream.Cancel()

	var last domain.ProgressUpdate
	for stream.Next() {
		last = stream.Update()
		fmt.Fprintf(progress, "%d/%d trials, win rate %.1f%%, expected p&l %s\n",
			last.TrialsCompleted,
			stream.TrialsRequested(),
			last.Snapshot.WinRate*100,
			money(last.Snapshot.ExpectedPnL),
		)
	}
	if err := stream.Err(); err != nil {
		return nil, err
	}
	if last.Snapshot == nil {
		return nil, fmt.Errorf("stream ended without a result")
	}

	return &app.SimulateOutput{
		Position:  started.Position,
		ModelName: started.ModelName,
		Result:    *last.Snapshot,
	}, nil
}
