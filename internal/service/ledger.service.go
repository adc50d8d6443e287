package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"recallvantage/internal/db/models/postgres/public/model"
	"recallvantage/internal/domain"
	"recallvantage/internal/logger"
	"recallvantage/internal/repository"
	"time"

	"github.com/google/uuid"
)

// LedgerRecord is what gets persisted for a run. the result is stored
// whole as json next to headline columns for querying
type LedgerRecord struct {
	Position  domain.PositionSpec
	ModelName string
	InputHash *string
	Result    domain.SimulationResult
}

type LedgerEntry struct {
	SimulationRunID uuid.UUID               `json:"simulationRunID"`
	CreatedAt       time.Time               `json:"createdAt"`
	Position        domain.PositionSpec     `json:"position"`
	ModelName       string                  `json:"scenarioModelName"`
	Result          domain.SimulationResult `json:"result"`
}

type LedgerService interface {
	Save(ctx context.Context, record LedgerRecord) (*LedgerEntry, error)
	Get(ctx context.Context, simulationRunID uuid.UUID) (*LedgerEntry, error)
	GetByRunID(ctx context.Context, runID uuid.UUID) (*LedgerEntry, error)
	List(ctx context.Context, symbol *string, limit int) ([]LedgerEntry, error)
}

type ledgerServiceHandler struct {
	Db                      *sql.DB
	SimulationRunRepository repository.SimulationRunRepository
}

func NewLedgerService(db *sql.DB, simulationRunRepository repository.SimulationRunRepository) LedgerService {
	return ledgerServiceHandler{
		Db:                      db,
		SimulationRunRepository: simulationRunRepository,
	}
}

func (h ledgerServiceHandler) Save(ctx context.Context, record LedgerRecord) (*LedgerEntry, error) {
	resultJson, err := json.Marshal(record.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal simulation result: %w", err)
	}

	var symbol *string
	if record.Position.Symbol != "" {
		symbol = &record.Position.Symbol
	}

	r := record.Result
	// trial counts are int4 columns
	if r.TrialsRequested > math.MaxInt32 {
		return nil, domain.ResourceLimitError{
			Field:     "result.trialsRequested",
			Requested: r.TrialsRequested,
			Ceiling:   math.MaxInt32,
		}
	}
	in := model.SimulationRun{
		RunID:                  r.RunID,
		Symbol:                 symbol,
		Direction:              string(record.Position.Direction),
		Shares:                 record.Position.Shares,
		EntryPrice:             record.Position.EntryPrice,
		ScenarioModelName:      record.ModelName,
		Iterations:             int32(r.TrialsRequested),
		TrialsCompleted:        int32(r.TrialsCompleted),
		Confidence:             r.Confidence,
		Seed:                   r.Seed,
		Complete:               r.Complete,
		WinRate:                r.WinRate,
		ExpectedPnl:            r.ExpectedPnL,
		ValueAtRisk:            r.ValueAtRisk,
		ConditionalValueAtRisk: r.ConditionalValueAtRisk,
		RecommendedFraction:    r.RecommendedFraction,
		Rating:                 r.Recommendation.Rating,
		InputHash:              record.InputHash,
		ResultJSON:             string(resultJson),
	}

	saved, err := h.SimulationRunRepository.Add(h.Db, in)
	if err != nil {
		return nil, fmt.Errorf("failed to save simulation run: %w", err)
	}
	logger.FromContext(ctx).Infow(
		"saved simulation run",
		"simulationRunID", saved.SimulationRunID.String(),
		"runID", r.RunID.String(),
	)

	return entryFromModel(*saved)
}

func (h ledgerServiceHandler) Get(ctx context.Context, simulationRunID uuid.UUID) (*LedgerEntry, error) {
	m, err := h.SimulationRunRepository.Get(simulationRunID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("simulation run %s: %w", simulationRunID.String(), domain.ErrNotFound)
	}
	return entryFromModel(*m)
}

func (h ledgerServiceHandler) GetByRunID(ctx context.Context, runID uuid.UUID) (*LedgerEntry, error) {
	m, err := h.SimulationRunRepository.GetLatestByRunID(runID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("run %s: %w", runID.String(), domain.ErrNotFound)
	}
	return entryFromModel(*m)
}

func (h ledgerServiceHandler) List(ctx context.Context, symbol *string, limit int) ([]LedgerEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	models, err := h.SimulationRunRepository.List(symbol, limit)
	if err != nil {
		return nil, err
	}

	out := []LedgerEntry{}
	for _, m := range models {
		entry, err := entryFromModel(m)
		if err != nil {
			return nil, err
		}
		out = append(out, *entry)
	}
	return out, nil
}

func entryFromModel(m model.SimulationRun) (*LedgerEntry, error) {
	result := domain.SimulationResult{}
	if err := json.Unmarshal([]byte(m.ResultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored result for %s: %w", m.SimulationRunID.String(), err)
	}

	symbol := ""
	if m.Symbol != nil {
		symbol = *m.Symbol
	}

	return &LedgerEntry{
		SimulationRunID: m.SimulationRunID,
		CreatedAt:       m.CreatedAt,
		Position: domain.PositionSpec{
			Symbol:     symbol,
			Direction:  domain.Direction(m.Direction),
			Shares:     m.Shares,
			EntryPrice: m.EntryPrice,
		},
		ModelName: m.ScenarioModelName,
		Result:    result,
	}, nil
}
