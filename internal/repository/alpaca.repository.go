package repository

import (
	"context"
	"fmt"
	"recallvantage/internal/domain"
	"recallvantage/internal/logger"
	"strings"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"
)

// AlpacaRepository only reads market data. gets entry prices when a
// position is submitted with a symbol and no price
type AlpacaRepository interface {
	GetLatestPrices(ctx context.Context, symbols []string) (map[string]domain.AssetPrice, error)
}

func NewAlpacaRepository(apiKey, apiSecret string, endpoint string) AlpacaRepository {
	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		BaseURL:   endpoint,
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return &alpacaRepositoryHandler{
		MdClient: mdClient,
	}
}

type alpacaRepositoryHandler struct {
	MdClient *marketdata.Client
}

func (h alpacaRepositoryHandler) GetLatestPrices(ctx context.Context, symbols []string) (map[string]domain.AssetPrice, error) {
	log := logger.FromContext(ctx)

	if len(symbols) == 0 {
		return map[string]domain.AssetPrice{}, nil
	}
	normalized := make([]string, len(symbols))
	for i, s := range symbols {
		normalized[i] = strings.ToUpper(strings.TrimSpace(s))
	}

	results, err := h.MdClient.GetLatestQuotes(normalized, marketdata.GetLatestQuoteRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to get latest quotes: %w", err)
	}

	out := map[string]domain.AssetPrice{}
	for symbol, result := range results {
		// bid is what a short sells into. fall back to ask when the book is
		// one sided
		price := result.BidPrice
		if price == 0 {
			log.Warnf("no bid for %s, using ask price %f", symbol, result.AskPrice)
			price = result.AskPrice
		}
		if price == 0 {
			return nil, fmt.Errorf("failed to get price for %s: got 0 price", symbol)
		}
		out[symbol] = domain.AssetPrice{
			Symbol: symbol,
			Price:  decimal.NewFromFloat(price),
			Date:   result.Timestamp.UTC(),
		}
	}
	for _, s := range normalized {
		if _, ok := out[s]; !ok {
			return nil, fmt.Errorf("failed to get price for %s: no quote returned", s)
		}
	}

	return out, nil
}
