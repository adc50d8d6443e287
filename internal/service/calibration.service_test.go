package service

import (
	"context"
	"errors"
	"math"
	"recallvantage/internal/domain"
	mock_repository "recallvantage/internal/repository/mocks"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func pricesFrom(symbol string, start time.Time, values ...float64) []domain.AssetPrice {
	out := []domain.AssetPrice{}
	for i, v := range values {
		out = append(out, domain.AssetPrice{
			Symbol: symbol,
			Price:  decimal.NewFromFloat(v),
			Date:   start.AddDate(0, 0, i),
		})
	}
	return out
}

func TestCalibrationService_Calibrate(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ctx := context.Background()

	t.Run("rewrites baseline stddev", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		priceHistoryRepository := mock_repository.NewMockPriceHistoryRepository(ctrl)
		handler := calibrationServiceHandler{
			PriceHistoryRepository: priceHistoryRepository,
			now:                    func() time.Time { return now },
		}

		prices := pricesFrom("TSLA", now.AddDate(0, 0, -5), 100, 102, 99, 101, 103)
		priceHistoryRepository.EXPECT().
			GetDailyPrices(ctx, "TSLA", now.Add(-30*24*time.Hour), now).
			Return(prices, nil)

		result, err := handler.Calibrate(ctx, domain.DefaultRecallScenarioModel(), "TSLA", 30*24*time.Hour, 4)
		require.NoError(t, err)

		returns := []float64{math.Log(102.0 / 100), math.Log(99.0 / 102), math.Log(101.0 / 99), math.Log(103.0 / 101)}
		mean := 0.0
		for _, r := range returns {
			mean += r
		}
		mean /= 4
		variance := 0.0
		for _, r := range returns {
			variance += (r - mean) * (r - mean)
		}
		expectedDaily := math.Sqrt(variance / 3)

		require.Equal(t, 5, result.Observations)
		require.InDelta(t, expectedDaily, result.DailyVolatility, 1e-12)
		require.InDelta(t, expectedDaily*2, result.HorizonVolatility, 1e-12)

		original := domain.DefaultRecallScenarioModel()
		for i, c := range result.Model.Categories {
			if c.Baseline {
				require.InDelta(t, expectedDaily*2, c.Impact.Stddev, 1e-12)
			} else {
				require.Equal(t, original.Categories[i].Impact, c.Impact)
			}
		}
		require.NoError(t, result.Model.Validate())
	})

	t.Run("too few prices", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		priceHistoryRepository := mock_repository.NewMockPriceHistoryRepository(ctrl)
		handler := calibrationServiceHandler{
			PriceHistoryRepository: priceHistoryRepository,
			now:                    func() time.Time { return now },
		}
		priceHistoryRepository.EXPECT().
			GetDailyPrices(gomock.Any(), "F", gomock.Any(), gomock.Any()).
			Return(pricesFrom("F", now, 10, 11), nil)

		_, err := handler.Calibrate(ctx, domain.DefaultRecallScenarioModel(), "F", DefaultCalibrationLookback, DefaultCalibrationHorizon)
		require.ErrorContains(t, err, "need at least 3 prices")
	})

	t.Run("provider error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		priceHistoryRepository := mock_repository.NewMockPriceHistoryRepository(ctrl)
		handler := calibrationServiceHandler{
			PriceHistoryRepository: priceHistoryRepository,
			now:                    func() time.Time { return now },
		}
		providerErr := errors.New("yahoo is down")
		priceHistoryRepository.EXPECT().
			GetDailyPrices(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, providerErr)

		_, err := handler.Calibrate(ctx, domain.DefaultRecallScenarioModel(), "F", DefaultCalibrationLookback, DefaultCalibrationHorizon)
		require.ErrorIs(t, err, providerErr)
	})

	t.Run("invalid input never hits the provider", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		handler := calibrationServiceHandler{
			PriceHistoryRepository: mock_repository.NewMockPriceHistoryRepository(ctrl),
			now:                    func() time.Time { return now },
		}

		var invalidErr domain.InvalidParameterError
		_, err := handler.Calibrate(ctx, domain.DefaultRecallScenarioModel(), "F", DefaultCalibrationLookback, 0)
		require.True(t, errors.As(err, &invalidErr))
		require.Equal(t, "horizonDays", invalidErr.Field)

		_, err = handler.Calibrate(ctx, domain.DefaultRecallScenarioModel(), "", DefaultCalibrationLookback, 5)
		require.True(t, errors.As(err, &invalidErr))
		require.Equal(t, "symbol", invalidErr.Field)
	})
}
