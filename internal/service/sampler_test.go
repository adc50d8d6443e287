package service

import (
	"math/rand"
	"recallvantage/internal/domain"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_scenarioSampler_categoryFor(t *testing.T) {
	t.Run("picks the first category reaching u", func(t *testing.T) {
		s := newScenarioSampler(shortPosition(), domain.ScenarioModel{
			Name: "three",
			Categories: []domain.ScenarioCategory{
				{Name: "a", Weight: 0.2},
				{Name: "b", Weight: 0.3},
				{Name: "c", Weight: 0.5},
			},
		})
		require.Equal(t, 0, s.categoryFor(0.1))
		require.Equal(t, 0, s.categoryFor(0.2))
		require.Equal(t, 1, s.categoryFor(0.2000001))
		require.Equal(t, 2, s.categoryFor(0.9))
		require.Equal(t, 2, s.categoryFor(1))
	})

	t.Run("weights short of one still cover u=1", func(t *testing.T) {
		s := newScenarioSampler(shortPosition(), domain.ScenarioModel{
			Name: "almost",
			Categories: []domain.ScenarioCategory{
				{Name: "a", Weight: 0.4999995},
				{Name: "b", Weight: 0.5},
				{Name: "tail", Weight: 0},
			},
		})
		require.Equal(t, 1, s.categoryFor(1))
		require.Equal(t, []float64{0.4999995, 1, 1}, s.cumulative)
	})
}

func Test_scenarioSampler_draw(t *testing.T) {
	model := domain.ScenarioModel{
		Name: "fixed",
		Categories: []domain.ScenarioCategory{
			{Name: "Drop", Weight: 1, Impact: domain.ImpactDistribution{Mean: -0.1}},
		},
	}

	t.Run("short profits from a drop", func(t *testing.T) {
		position := domain.PositionSpec{
			Direction:  domain.Direction_Short,
			Shares:     10,
			EntryPrice: decimal.NewFromInt(100),
		}
		s := newScenarioSampler(position, model)
		o := s.draw(rand.New(rand.NewSource(1)))
		require.Equal(t, 0, o.CategoryIndex)
		require.InDelta(t, 90, o.ExitPrice, 1e-9)
		require.InDelta(t, 100, o.PnL, 1e-9)
	})

	t.Run("long loses on a drop", func(t *testing.T) {
		position := domain.PositionSpec{
			Direction:  domain.Direction_Long,
			Shares:     10,
			EntryPrice: decimal.NewFromInt(100),
		}
		s := newScenarioSampler(position, model)
		o := s.draw(rand.New(rand.NewSource(1)))
		require.InDelta(t, -100, o.PnL, 1e-9)
	})

	t.Run("impact is clipped", func(t *testing.T) {
		position := shortPosition()
		crash := domain.ScenarioModel{
			Name: "crash",
			Categories: []domain.ScenarioCategory{
				{Name: "Crash", Weight: 1, Impact: domain.ImpactDistribution{Mean: -3}},
			},
		}
		o := newScenarioSampler(position, crash).draw(rand.New(rand.NewSource(1)))
		require.Equal(t, domain.MinImpact, o.Impact)
		require.Greater(t, o.ExitPrice, 0.0)

		moon := domain.ScenarioModel{
			Name: "moon",
			Categories: []domain.ScenarioCategory{
				{Name: "Moon", Weight: 1, Impact: domain.ImpactDistribution{Mean: 10}},
			},
		}
		o = newScenarioSampler(position, moon).draw(rand.New(rand.NewSource(1)))
		require.Equal(t, domain.MaxImpact, o.Impact)
	})

	t.Run("each trial consumes the same draws", func(t *testing.T) {
		s := newScenarioSampler(shortPosition(), binaryModel())
		a := rand.New(rand.NewSource(5))
		b := rand.New(rand.NewSource(5))
		for i := 0; i < 100; i++ {
			require.Equal(t, s.draw(a), s.draw(b))
		}
	})
}
