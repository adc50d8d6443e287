package service

import (
	"context"
	"fmt"
	"math"
	"recallvantage/internal/domain"
	"recallvantage/internal/logger"
	"recallvantage/internal/repository"
	"time"

	"github.com/montanaflynn/stats"
)

const (
	DefaultCalibrationLookback = 365 * 24 * time.Hour
	DefaultCalibrationHorizon  = 20
	minCalibrationPrices       = 3
)

type CalibrationResult struct {
	Symbol            string               `json:"symbol"`
	Observations      int                  `json:"observations"`
	DailyVolatility   float64              `json:"dailyVolatility"`
	HorizonDays       int                  `json:"horizonDays"`
	HorizonVolatility float64              `json:"horizonVolatility"`
	Start             time.Time            `json:"start"`
	End               time.Time            `json:"end"`
	Model             domain.ScenarioModel `json:"model"`
}

// CalibrationService replaces the placeholder stddev of a model's
// baseline categories with the asset's realized volatility over the
// holding horizon. recall categories are left alone
type CalibrationService interface {
	Calibrate(ctx context.Context, model domain.ScenarioModel, symbol string, lookback time.Duration, horizonDays int) (*CalibrationResult, error)
}

type calibrationServiceHandler struct {
	PriceHistoryRepository repository.PriceHistoryRepository
	now                    func() time.Time
}

func NewCalibrationService(priceHistoryRepository repository.PriceHistoryRepository) CalibrationService {
	return calibrationServiceHandler{
		PriceHistoryRepository: priceHistoryRepository,
		now:                    time.Now,
	}
}

func (h calibrationServiceHandler) Calibrate(ctx context.Context, model domain.ScenarioModel, symbol string, lookback time.Duration, horizonDays int) (*CalibrationResult, error) {
	if symbol == "" {
		return nil, domain.NewInvalidParameterError("symbol", "must not be empty")
	}
	if lookback <= 0 {
		return nil, domain.NewInvalidParameterError("lookback", "must be positive, got %s", lookback.String())
	}
	if horizonDays <= 0 {
		return nil, domain.NewInvalidParameterError("horizonDays", "must be positive, got %d", horizonDays)
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}

	end := h.now().UTC()
	start := end.Add(-lookback)
	prices, err := h.PriceHistoryRepository.GetDailyPrices(ctx, symbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load price history: %w", err)
	}
	if len(prices) < minCalibrationPrices {
		return nil, fmt.Errorf("failed to calibrate %s: need at least %d prices, got %d", symbol, minCalibrationPrices, len(prices))
	}

	daily, err := DailyLogReturnVolatility(prices)
	if err != nil {
		return nil, fmt.Errorf("failed to calibrate %s: %w", symbol, err)
	}
	horizon := daily * math.Sqrt(float64(horizonDays))

	logger.FromContext(ctx).Infof("calibrated %s from %d prices: daily vol %f, %d day vol %f", symbol, len(prices), daily, horizonDays, horizon)

	return &CalibrationResult{
		Symbol:            prices[0].Symbol,
		Observations:      len(prices),
		DailyVolatility:   daily,
		HorizonDays:       horizonDays,
		HorizonVolatility: horizon,
		Start:             start,
		End:               end,
		Model:             model.WithBaselineStddev(horizon),
	}, nil
}

// DailyLogReturnVolatility is the sample stddev of ln(p[i]/p[i-1])
func DailyLogReturnVolatility(prices []domain.AssetPrice) (float64, error) {
	returns := []float64{}
	for i := 1; i < len(prices); i++ {
		prev := prices[i-1].Price.InexactFloat64()
		cur := prices[i].Price.InexactFloat64()
		if prev <= 0 || cur <= 0 {
			return 0, fmt.Errorf("non-positive price on %s", prices[i].Date.Format(time.DateOnly))
		}
		returns = append(returns, math.Log(cur/prev))
	}

	out, err := stats.StandardDeviationSample(returns)
	if err != nil {
		return 0, fmt.Errorf("failed to compute return stddev: %w", err)
	}
	return out, nil
}
