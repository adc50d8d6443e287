package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"recallvantage/internal/db/models/postgres/public/model"
	"recallvantage/internal/db/models/postgres/public/table"
	"time"

	"github.com/go-jet/jet/v2/postgres"
	"github.com/go-jet/jet/v2/qrm"
	"github.com/google/uuid"
)

type SimulationRunRepository interface {
	Add(db qrm.Queryable, m model.SimulationRun) (*model.SimulationRun, error)
	Get(simulationRunID uuid.UUID) (*model.SimulationRun, error)
	GetLatestByRunID(runID uuid.UUID) (*model.SimulationRun, error)
	List(symbol *string, limit int) ([]model.SimulationRun, error)
}

type simulationRunRepositoryHandler struct {
	Db *sql.DB
}

func NewSimulationRunRepository(db *sql.DB) SimulationRunRepository {
	return simulationRunRepositoryHandler{Db: db}
}

func (h simulationRunRepositoryHandler) Add(db qrm.Queryable, m model.SimulationRun) (*model.SimulationRun, error) {
	m.CreatedAt = time.Now().UTC()

	query := table.SimulationRun.
		INSERT(table.SimulationRun.MutableColumns).
		MODEL(m).
		RETURNING(table.SimulationRun.AllColumns)

	out := &model.SimulationRun{}
	err := query.Query(db, out)
	if err != nil {
		return nil, fmt.Errorf("failed to insert simulation run: %w", err)
	}

	return out, nil
}

// Get returns nil if the run does not exist
func (h simulationRunRepositoryHandler) Get(simulationRunID uuid.UUID) (*model.SimulationRun, error) {
	query := table.SimulationRun.
		SELECT(table.SimulationRun.AllColumns).
		WHERE(table.SimulationRun.SimulationRunID.EQ(postgres.UUID(simulationRunID)))

	out := &model.SimulationRun{}
	err := query.Query(h.Db, out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get simulation run %s: %w", simulationRunID.String(), err)
	}

	return out, nil
}

// seeded runs share a run id, so the same run can be saved more than once
func (h simulationRunRepositoryHandler) GetLatestByRunID(runID uuid.UUID) (*model.SimulationRun, error) {
	query := table.SimulationRun.
		SELECT(table.SimulationRun.AllColumns).
		WHERE(table.SimulationRun.RunID.EQ(postgres.UUID(runID))).
		ORDER_BY(table.SimulationRun.CreatedAt.DESC()).
		LIMIT(1)

	out := &model.SimulationRun{}
	err := query.Query(h.Db, out)
	if errors.Is(err, qrm.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get simulation run by run id %s: %w", runID.String(), err)
	}

	return out, nil
}

func (h simulationRunRepositoryHandler) List(symbol *string, limit int) ([]model.SimulationRun, error) {
	query := table.SimulationRun.
		SELECT(table.SimulationRun.AllColumns).
		ORDER_BY(table.SimulationRun.CreatedAt.DESC()).
		LIMIT(int64(limit))
	if symbol != nil {
		query = query.WHERE(table.SimulationRun.Symbol.EQ(postgres.String(*symbol)))
	}

	out := []model.SimulationRun{}
	err := query.Query(h.Db, &out)
	if errors.Is(err, qrm.ErrNoRows) {
		return out, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to list simulation runs: %w", err)
	}

	return out, nil
}
