package api

import (
	"context"
	"fmt"
	"recallvantage/internal/app"
	"recallvantage/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type simulateRequest struct {
	Symbol    string `json:"symbol"`
	Direction string `json:"direction"`
	Shares    int64  `json:"shares"`
	// optional when symbol is set
	EntryPrice decimal.Decimal `json:"entryPrice"`

	ScenarioModelName string                `json:"scenarioModelName"`
	ScenarioModel     *domain.ScenarioModel `json:"scenarioModel"`

	Iterations      *int     `json:"iterations"`
	Confidence      *float64 `json:"confidence"`
	Seed            *int64   `json:"seed"`
	KellyMultiplier *float64 `json:"kellyMultiplier"`
	BatchSize       int      `json:"batchSize"`
	ProgressEvery   int      `json:"progressEvery"`
	Workers         int      `json:"workers"`
	Save            bool     `json:"save"`
}

func (m ApiHandler) toSimulateInput(req simulateRequest) (*app.SimulateInput, error) {
	direction, err := domain.NewDirection(req.Direction)
	if err != nil {
		return nil, err
	}

	config := domain.SimulationConfig{
		Iterations:      m.Defaults.Iterations,
		Confidence:      m.Defaults.Confidence,
		Seed:            req.Seed,
		KellyMultiplier: m.Defaults.KellyMultiplier,
		BatchSize:       m.Defaults.BatchSize,
		ProgressEvery:   req.ProgressEvery,
	}
	if req.Iterations != nil {
		config.Iterations = *req.Iterations
	}
	if req.Confidence != nil {
		config.Confidence = *req.Confidence
	}
	if req.KellyMultiplier != nil {
		config.KellyMultiplier = *req.KellyMultiplier
	}
	if req.BatchSize != 0 {
		config.BatchSize = req.BatchSize
	}

	if req.Workers < 0 {
		return nil, domain.NewInvalidParameterError("workers", "must not be negative, got %d", req.Workers)
	}
	if m.Defaults.MaxWorkers > 0 && req.Workers > m.Defaults.MaxWorkers {
		return nil, domain.ResourceLimitError{
			Field:     "workers",
			Requested: req.Workers,
			Ceiling:   m.Defaults.MaxWorkers,
		}
	}

	return &app.SimulateInput{
		Position: domain.PositionSpec{
			Symbol:     req.Symbol,
			Direction:  *direction,
			Shares:     req.Shares,
			EntryPrice: req.EntryPrice,
		},
		ModelName: req.ScenarioModelName,
		Model:     req.ScenarioModel,
		Config:    config,
		Workers:   req.Workers,
		Save:      req.Save,
	}, nil
}

// simulate blocks until the run finishes. a request that outlives the
// configured timeout gets the partial result back with complete=false
func (m ApiHandler) simulate(c *gin.Context) {
	var requestBody simulateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	in, err := m.toSimulateInput(requestBody)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	ctx := c.Request.Context()
	if m.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.RequestTimeout)
		defer cancel()
	}

	out, err := m.SimulationApp.Simulate(ctx, *in)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, out)
}
