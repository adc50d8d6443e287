package app

import (
	"context"
	"fmt"
	"recallvantage/internal/domain"
	"recallvantage/internal/logger"
	"recallvantage/internal/observability"
	"recallvantage/internal/repository"
	"recallvantage/internal/service"
	"strings"

	"github.com/google/uuid"
)

type SimulateInput struct {
	// EntryPrice may be left zero when Symbol is set, the latest quote
	// is used then
	Position  domain.PositionSpec
	ModelName string
	// inline model, takes precedence over ModelName
	Model   *domain.ScenarioModel
	Config  domain.SimulationConfig
	Workers int
	Save    bool
}

type SimulateOutput struct {
	Position        domain.PositionSpec     `json:"position"`
	ModelName       string                  `json:"scenarioModelName"`
	Result          domain.SimulationResult `json:"result"`
	Cached          bool                    `json:"cached"`
	InputHash       *string                 `json:"inputHash,omitempty"`
	SimulationRunID *uuid.UUID              `json:"simulationRunID,omitempty"`
}

type StreamOutput struct {
	Position  domain.PositionSpec
	ModelName string
	Stream    *service.SimulationStream
}

// SimulationApp resolves the inputs of a simulation request (entry
// price, scenario model), runs it, and takes care of the result cache
// and the ledger
type SimulationApp interface {
	Simulate(ctx context.Context, in SimulateInput) (*SimulateOutput, error)
	Stream(ctx context.Context, in SimulateInput) (*StreamOutput, error)
}

type simulationAppHandler struct {
	SimulationService    service.SimulationService
	ScenarioModelService service.ScenarioModelService
	QuoteService         service.QuoteService
	// optional, runs are not persisted without it
	LedgerService service.LedgerService
	// optional, seeded results are recomputed every time without it
	ResultCacheRepository repository.ResultCacheRepository
	Metrics               *observability.Metrics
}

func NewSimulationApp(
	simulationService service.SimulationService,
	scenarioModelService service.ScenarioModelService,
	quoteService service.QuoteService,
	ledgerService service.LedgerService,
	resultCacheRepository repository.ResultCacheRepository,
	metrics *observability.Metrics,
) SimulationApp {
	return simulationAppHandler{
		SimulationService:     simulationService,
		ScenarioModelService:  scenarioModelService,
		QuoteService:          quoteService,
		LedgerService:         ledgerService,
		ResultCacheRepository: resultCacheRepository,
		Metrics:               metrics,
	}
}

func (h simulationAppHandler) resolvePosition(ctx context.Context, position domain.PositionSpec) (*domain.PositionSpec, error) {
	position.Symbol = strings.ToUpper(strings.TrimSpace(position.Symbol))
	if position.EntryPrice.IsZero() && position.Symbol != "" {
		quote, err := h.QuoteService.GetEntryPrice(ctx, position.Symbol)
		if err != nil {
			return nil, err
		}
		position.EntryPrice = quote.Price
		logger.FromContext(ctx).Infof("using %s quote %s as entry price", position.Symbol, quote.Price.String())
	}
	if err := position.Validate(); err != nil {
		return nil, err
	}
	return &position, nil
}

func (h simulationAppHandler) resolveModel(in SimulateInput) (*domain.ScenarioModel, error) {
	if in.Model != nil {
		return domain.NewScenarioModel(in.Model.Name, in.Model.Categories)
	}
	return h.ScenarioModelService.Get(in.ModelName)
}

// inputHash matches what the simulation service hashes into a seeded
// run id, so a cached result is the one a fresh run would produce
func inputHash(position domain.PositionSpec, model domain.ScenarioModel, config domain.SimulationConfig, workers int) (*string, error) {
	if config.Seed == nil {
		return nil, nil
	}
	config = config.WithDefaults()
	if workers > config.Iterations {
		workers = config.Iterations
	}
	hash, err := domain.SimulationInput{
		Position:        position,
		Model:           model,
		Iterations:      config.Iterations,
		Confidence:      config.Confidence,
		KellyMultiplier: config.KellyMultiplier,
		Seed:            *config.Seed,
		Workers:         workers,
	}.Hash()
	if err != nil {
		return nil, err
	}
	return &hash, nil
}

func (h simulationAppHandler) cachedResult(ctx context.Context, hash string) *domain.SimulationResult {
	if h.ResultCacheRepository == nil {
		return nil
	}
	result, err := h.ResultCacheRepository.Get(ctx, hash)
	if err != nil {
		h.Metrics.RecordCacheError()
		logger.FromContext(ctx).Warnf("result cache lookup failed, simulating: %s", err.Error())
		return nil
	}
	if result == nil {
		h.Metrics.RecordCacheMiss()
		return nil
	}
	h.Metrics.RecordCacheHit()
	return result
}

func (h simulationAppHandler) cacheResult(ctx context.Context, hash string, result domain.SimulationResult) {
	if h.ResultCacheRepository == nil {
		return
	}
	if err := h.ResultCacheRepository.Set(ctx, hash, result); err != nil {
		h.Metrics.RecordCacheError()
		logger.FromContext(ctx).Warnf("failed to cache result %s: %s", result.RunID.String(), err.Error())
	}
}

func (h simulationAppHandler) Simulate(ctx context.Context, in SimulateInput) (*SimulateOutput, error) {
	if in.Save && h.LedgerService == nil {
		return nil, domain.NewInvalidParameterError("save", "no database is configured")
	}
	workers := in.Workers
	if workers == 0 {
		workers = 1
	}

	position, err := h.resolvePosition(ctx, in.Position)
	if err != nil {
		return nil, err
	}
	model, err := h.resolveModel(in)
	if err != nil {
		return nil, err
	}

	// a cached result may predate the current limits
	if err := h.SimulationService.Check(*position, *model, in.Config, workers); err != nil {
		return nil, err
	}

	hash, err := inputHash(*position, *model, in.Config, workers)
	if err != nil {
		return nil, err
	}

	out := &SimulateOutput{
		Position:  *position,
		ModelName: model.Name,
		InputHash: hash,
	}

	var result *domain.SimulationResult
	if hash != nil {
		result = h.cachedResult(ctx, *hash)
		out.Cached = result != nil
	}
	if result == nil {
		if workers == 1 {
			result, err = h.SimulationService.Run(ctx, *position, *model, in.Config)
		} else {
			result, err = h.SimulationService.RunParallel(ctx, *position, *model, in.Config, workers)
		}
		if err != nil {
			return nil, err
		}
		// partial results depend on when the run was cancelled
		if hash != nil && result.Complete {
			h.cacheResult(ctx, *hash, *result)
		}
	}
	out.Result = *result

	if in.Save {
		entry, err := h.LedgerService.Save(ctx, service.LedgerRecord{
			Position:  *position,
			ModelName: model.Name,
			InputHash: hash,
			Result:    *result,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to save run %s: %w", result.RunID.String(), err)
		}
		out.SimulationRunID = &entry.SimulationRunID
	}

	return out, nil
}

func (h simulationAppHandler) Stream(ctx context.Context, in SimulateInput) (*StreamOutput, error) {
	position, err := h.resolvePosition(ctx, in.Position)
	if err != nil {
		return nil, err
	}
	model, err := h.resolveModel(in)
	if err != nil {
		return nil, err
	}

	stream, err := h.SimulationService.Stream(ctx, *position, *model, in.Config)
	if err != nil {
		return nil, err
	}

	return &StreamOutput{
		Position:  *position,
		ModelName: model.Name,
		Stream:    stream,
	}, nil
}
