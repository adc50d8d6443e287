package service

import (
	"context"
	"fmt"
	"recallvantage/internal/domain"
	"recallvantage/internal/logger"
	"recallvantage/internal/repository"
	"strings"
	"time"
)

const staleQuoteAge = 24 * time.Hour

type QuoteService interface {
	// GetEntryPrice is the latest quote for symbol, used when a position
	// comes in without an entry price
	GetEntryPrice(ctx context.Context, symbol string) (*domain.AssetPrice, error)
}

type quoteServiceHandler struct {
	AlpacaRepository repository.AlpacaRepository
	now              func() time.Time
}

func NewQuoteService(alpacaRepository repository.AlpacaRepository) QuoteService {
	return quoteServiceHandler{
		AlpacaRepository: alpacaRepository,
		now:              time.Now,
	}
}

func (h quoteServiceHandler) GetEntryPrice(ctx context.Context, symbol string) (*domain.AssetPrice, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, domain.NewInvalidParameterError("position.symbol", "required when entryPrice is not set")
	}
	if h.AlpacaRepository == nil {
		return nil, domain.NewInvalidParameterError("position.entryPrice", "required, no quote provider is configured")
	}

	prices, err := h.AlpacaRepository.GetLatestPrices(ctx, []string{symbol})
	if err != nil {
		return nil, fmt.Errorf("failed to get entry price for %s: %w", symbol, err)
	}
	price, ok := prices[symbol]
	if !ok {
		return nil, fmt.Errorf("failed to get entry price for %s: no quote returned", symbol)
	}
	if age := h.now().Sub(price.Date); age > staleQuoteAge {
		logger.FromContext(ctx).Warnf("quote for %s is %s old", symbol, age.Round(time.Minute).String())
	}

	return &price, nil
}
