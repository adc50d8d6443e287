package repository

import (
	"context"
	"fmt"
	"recallvantage/internal/domain"
	"recallvantage/internal/logger"
	"strings"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// PriceHistoryRepository loads daily adjusted closes for volatility
// calibration
type PriceHistoryRepository interface {
	GetDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error)
}

type financeGoPriceHistoryHandler struct{}

func NewPriceHistoryRepository() PriceHistoryRepository {
	return financeGoPriceHistoryHandler{}
}

// GetDailyPrices returns prices in date order, skipping bars without a
// close
func (h financeGoPriceHistoryHandler) GetDailyPrices(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	out := []domain.AssetPrice{}
	skipped := 0
	for iter.Next() {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, ctx.Err())
		}
		bar := iter.Bar()
		if !bar.AdjClose.IsPositive() {
			skipped++
			continue
		}
		out = append(out, domain.AssetPrice{
			Symbol: symbol,
			Price:  bar.AdjClose,
			Date:   time.Unix(int64(bar.Timestamp), 0).UTC(),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}
	if skipped > 0 {
		logger.FromContext(ctx).Warnf("skipped %d bars without a close for %s", skipped, symbol)
	}

	return out, nil
}
