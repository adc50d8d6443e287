package service

import (
	"context"
	"errors"
	"recallvantage/internal/domain"
	mock_repository "recallvantage/internal/repository/mocks"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestQuoteService_GetEntryPrice(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 3, 15, 0, 0, 0, time.UTC)

	t.Run("normalizes symbol", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
		handler := quoteServiceHandler{
			AlpacaRepository: alpacaRepository,
			now:              func() time.Time { return now },
		}
		quote := domain.AssetPrice{Symbol: "TSLA", Price: decimal.NewFromFloat(224.5), Date: now.Add(-time.Minute)}
		alpacaRepository.EXPECT().
			GetLatestPrices(ctx, []string{"TSLA"}).
			Return(map[string]domain.AssetPrice{"TSLA": quote}, nil)

		price, err := handler.GetEntryPrice(ctx, " tsla ")
		require.NoError(t, err)
		require.True(t, quote.Price.Equal(price.Price))
	})

	t.Run("missing quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		alpacaRepository := mock_repository.NewMockAlpacaRepository(ctrl)
		handler := quoteServiceHandler{
			AlpacaRepository: alpacaRepository,
			now:              func() time.Time { return now },
		}
		alpacaRepository.EXPECT().
			GetLatestPrices(gomock.Any(), gomock.Any()).
			Return(map[string]domain.AssetPrice{}, nil)

		_, err := handler.GetEntryPrice(ctx, "F")
		require.ErrorContains(t, err, "no quote returned")
	})

	t.Run("no provider", func(t *testing.T) {
		handler := NewQuoteService(nil)
		_, err := handler.GetEntryPrice(ctx, "F")
		var invalidErr domain.InvalidParameterError
		require.True(t, errors.As(err, &invalidErr))
		require.Equal(t, "position.entryPrice", invalidErr.Field)

		_, err = handler.GetEntryPrice(ctx, "")
		require.True(t, errors.As(err, &invalidErr))
		require.Equal(t, "position.symbol", invalidErr.Field)
	})
}
