package repository

import (
	"database/sql"
	"fmt"
)

type UsageStats struct {
	RunsStored      int `json:"runsStored"`
	DistinctSymbols int `json:"distinctSymbols"`
	ScenarioModels  int `json:"scenarioModels"`
	PartialRuns     int `json:"partialRuns"`
}

func GetUsageStats(tx *sql.DB) (*UsageStats, error) {
	query := `select
	(select count(*) from simulation_run) as "runs_stored",
	(select count(distinct symbol) from simulation_run) as "distinct_symbols",
	(select count(*) from scenario_model) as "scenario_models",
	(select count(*) from simulation_run where not complete) as "partial_runs";`

	row := tx.QueryRow(query)

	out := UsageStats{}

	err := row.Scan(&out.RunsStored, &out.DistinctSymbols, &out.ScenarioModels, &out.PartialRuns)
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	return &out, nil
}
