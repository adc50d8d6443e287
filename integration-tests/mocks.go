package integration_tests

import (
	"context"
	"fmt"
	"math"
	"recallvantage/internal/domain"
	"recallvantage/internal/repository"
	"time"

	"github.com/shopspring/decimal"
)

func NewMockAlpacaRepositoryForTests() repository.AlpacaRepository {
	return mockAlpacaForTestsHandler{}
}

type mockAlpacaForTestsHandler struct{}

var testQuotes = map[string]float64{
	"TSLA": 224.50,
	"F":    12.07,
	"GM":   45.31,
}

func (m mockAlpacaForTestsHandler) GetLatestPrices(ctx context.Context, symbols []string) (map[string]domain.AssetPrice, error) {
	out := map[string]domain.AssetPrice{}
	for _, s := range symbols {
		price, ok := testQuotes[s]
		if !ok {
			continue
		}
		out[s] = domain.AssetPrice{
			Symbol: s,
			Price:  decimal.NewFromFloat(price),
			Date:   time.Now().UTC(),
		}
	}
	return out, nil
}

// NewMockPriceHistoryRepositoryForTests alternates daily closes up and
// down by dailyMove so the realized volatility is known up front
func NewMockPriceHistoryRepositoryForTests(dailyMove float64) repository.PriceHistoryRepository {
	return mockPriceHistoryForTestsHandler{dailyMove: dailyMove}
}

type mockPriceHistoryForTestsHandler struct {
	dailyMove float64
}

func (m mockPriceHistoryForTestsHandler) GetDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	base, ok := testQuotes[symbol]
	if !ok {
		return nil, fmt.Errorf("no history for %s", symbol)
	}
	out := []domain.AssetPrice{}
	price := base
	for i, d := 0, start; d.Before(end); i, d = i+1, d.AddDate(0, 0, 1) {
		out = append(out, domain.AssetPrice{
			Symbol: symbol,
			Price:  decimal.NewFromFloat(price),
			Date:   d,
		})
		if i%2 == 0 {
			price *= math.Exp(m.dailyMove)
		} else {
			price *= math.Exp(-m.dailyMove)
		}
	}
	return out, nil
}
