package main

import (
	"fmt"
	"recallvantage/internal/domain"
	"recallvantage/internal/scenariofile"

	"github.com/spf13/cobra"
)

// modelFromFlag treats values with a yaml or csv extension as a file,
// anything else as the name of a preset or saved model
func (c *cli) modelFromFlag(value string) (*domain.ScenarioModel, error) {
	if _, err := scenariofile.FormatFromPath(value); err == nil {
		return scenariofile.Load(value)
	}
	return c.deps.ScenarioModelService.Get(value)
}

func newModelsCommand(c *cli) *cobra.Command {
	var (
		modelFlag string
		format    string
	)
	command := &cobra.Command{
		Use:   "models",
		Short: "List scenario models, or print one as yaml/csv",
		RunE: func(command *cobra.Command, args []string) error {
			out := command.OutOrStdout()
			if modelFlag == "" && format == "" {
				models, err := c.deps.ScenarioModelService.List()
				if err != nil {
					return err
				}
				for _, m := range models {
					fmt.Fprintf(out, "%-20s %d categories, expected impact %+.2f%%\n", m.Name, len(m.Categories), m.ExpectedImpact()*100)
				}
				return nil
			}

			m, err := c.modelFromFlag(modelFlag)
			if err != nil {
				return err
			}
			if format == "" {
				format = scenariofile.Format_YAML
			}
			return scenariofile.Encode(out, *m, format)
		},
	}
	command.Flags().StringVar(&modelFlag, "model", "", "model name or .yaml/.csv file to print")
	command.Flags().StringVar(&format, "format", "", "output format for --model, yaml or csv")
	return command
}
