package main

import (
	"os"
	"recallvantage/cmd"
	"recallvantage/internal/config"

	"github.com/spf13/cobra"
)

type cli struct {
	configPath string
	deps       *cmd.Dependencies
}

func (c *cli) initialize(*cobra.Command, []string) error {
	cfg, err := config.Load(c.configPath, false)
	if err != nil {
		return err
	}
	deps, err := cmd.InitializeDependencies(cfg)
	if err != nil {
		return err
	}
	c.deps = deps
	return nil
}

func (c *cli) close(*cobra.Command, []string) {
	if c.deps != nil {
		cmd.CloseDependencies(c.deps)
	}
}

func newRootCommand() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:               "recallvantage",
		Short:             "Monte Carlo position risk for recall events",
		SilenceUsage:      true,
		PersistentPreRunE: c.initialize,
		PersistentPostRun: c.close,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a yaml config file (default $RV_CONFIG or ./config.yaml)")

	root.AddCommand(
		newSimulateCommand(c),
		newModelsCommand(c),
		newCalibrateCommand(c),
		newServeCommand(c),
	)
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
