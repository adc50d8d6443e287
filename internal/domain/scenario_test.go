package domain

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func requireInvalidField(t *testing.T, err error, field string) {
	var invalidErr InvalidParameterError
	require.True(t, errors.As(err, &invalidErr), "expected InvalidParameterError, got %v", err)
	require.Equal(t, field, invalidErr.Field)
}

func TestNewScenarioModel(t *testing.T) {
	categories := []ScenarioCategory{
		{Name: "Recall", Weight: 0.9, Impact: ImpactDistribution{Mean: -0.15, Stddev: 0.05}},
		{Name: "No Event", Weight: 0.1, Impact: ImpactDistribution{Mean: 0, Stddev: 0.02}, Baseline: true},
	}

	t.Run("valid", func(t *testing.T) {
		m, err := NewScenarioModel(" binary ", categories)
		require.NoError(t, err)
		require.Equal(t, "binary", m.Name)
		require.Equal(t, []string{"Recall", "No Event"}, m.CategoryNames())
		require.InDelta(t, -0.135, m.ExpectedImpact(), 1e-12)

		// the model owns its own slice
		categories[0].Name = "changed"
		require.Equal(t, "Recall", m.Categories[0].Name)
		categories[0].Name = "Recall"
	})

	t.Run("weights summing to 0.5", func(t *testing.T) {
		_, err := NewScenarioModel("half", []ScenarioCategory{
			{Name: "a", Weight: 0.25},
			{Name: "b", Weight: 0.25},
		})
		requireInvalidField(t, err, "model.weights")
	})

	t.Run("within tolerance", func(t *testing.T) {
		_, err := NewScenarioModel("close", []ScenarioCategory{
			{Name: "a", Weight: 0.5000004},
			{Name: "b", Weight: 0.5},
		})
		require.NoError(t, err)
	})

	t.Run("all zero weights", func(t *testing.T) {
		_, err := NewScenarioModel("zero", []ScenarioCategory{{Name: "a"}})
		requireInvalidField(t, err, "model.weights")
	})

	t.Run("no categories", func(t *testing.T) {
		_, err := NewScenarioModel("empty", nil)
		requireInvalidField(t, err, "model.categories")
	})

	t.Run("negative weight names the index", func(t *testing.T) {
		_, err := NewScenarioModel("neg", []ScenarioCategory{
			{Name: "a", Weight: 0.5},
			{Name: "b", Weight: 0.5},
			{Name: "c", Weight: -0.1},
		})
		requireInvalidField(t, err, "model.categories[2].weight")
	})

	t.Run("duplicate names", func(t *testing.T) {
		_, err := NewScenarioModel("dupe", []ScenarioCategory{
			{Name: "Recall", Weight: 0.5},
			{Name: "recall", Weight: 0.5},
		})
		requireInvalidField(t, err, "model.categories[1].name")
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewScenarioModel("blank", []ScenarioCategory{{Name: " ", Weight: 1}})
		requireInvalidField(t, err, "model.categories[0].name")
	})

	t.Run("bad impact", func(t *testing.T) {
		_, err := NewScenarioModel("x", []ScenarioCategory{{Name: "a", Weight: 1, Impact: ImpactDistribution{Stddev: -1}}})
		requireInvalidField(t, err, "model.categories[0].impact.stddev")

		_, err = NewScenarioModel("x", []ScenarioCategory{{Name: "a", Weight: 1, Impact: ImpactDistribution{Mean: math.NaN()}}})
		requireInvalidField(t, err, "model.categories[0].impact.mean")
	})
}

func TestPresetScenarioModels(t *testing.T) {
	for _, m := range PresetScenarioModels() {
		require.NoError(t, m.Validate(), m.Name)
	}
}

func TestScenarioModel_WithBaselineStddev(t *testing.T) {
	m := DefaultRecallScenarioModel()
	calibrated := m.WithBaselineStddev(0.07)

	for i, c := range calibrated.Categories {
		if c.Baseline {
			require.Equal(t, 0.07, c.Impact.Stddev)
		} else {
			require.Equal(t, m.Categories[i].Impact, c.Impact)
		}
	}
	// original untouched
	require.Equal(t, "", cmp.Diff(DefaultRecallScenarioModel(), m))
}

func TestPositionSpec(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p, err := NewPositionSpec(" tsla ", Direction_Short, 100_000, decimal.RequireFromString("224.50"))
		require.NoError(t, err)
		require.Equal(t, "TSLA", p.Symbol)
		require.Equal(t, "SHORT TSLA 100000 @ 224.50", p.String())
		require.True(t, decimal.RequireFromString("22450000").Equal(p.Notional()))
	})

	t.Run("pnl by direction", func(t *testing.T) {
		short := PositionSpec{Direction: Direction_Short, Shares: 10}
		require.Equal(t, 50.0, short.PnL(100, 95))
		long := PositionSpec{Direction: Direction_Long, Shares: 10}
		require.Equal(t, -50.0, long.PnL(100, 95))
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := NewPositionSpec("x", Direction_Long, 0, decimal.NewFromInt(1))
		requireInvalidField(t, err, "position.shares")
		_, err = NewPositionSpec("x", Direction_Long, 1, decimal.NewFromInt(-1))
		requireInvalidField(t, err, "position.entryPrice")
		_, err = NewPositionSpec("x", Direction("SIDEWAYS"), 1, decimal.NewFromInt(1))
		requireInvalidField(t, err, "position.direction")
	})

	t.Run("direction parsing", func(t *testing.T) {
		d, err := NewDirection("short")
		require.NoError(t, err)
		require.Equal(t, Direction_Short, *d)
		_, err = NewDirection("up")
		requireInvalidField(t, err, "position.direction")
	})
}

func TestSimulationConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := SimulationConfig{Iterations: 10_000, Confidence: 0.95}.WithDefaults()
		require.Equal(t, DefaultKellyMultiplier, c.KellyMultiplier)
		require.Equal(t, DefaultBatchSize, c.BatchSize)
		require.Equal(t, 1_000, c.ProgressEvery)

		c = SimulationConfig{Iterations: 50_000, Confidence: 0.95, BatchSize: 1_000}.WithDefaults()
		require.Equal(t, 3_000, c.ProgressEvery)
	})

	t.Run("defaults never override", func(t *testing.T) {
		c := SimulationConfig{Iterations: 10, Confidence: 0.9, KellyMultiplier: 1, BatchSize: 2, ProgressEvery: 4}.WithDefaults()
		require.Equal(t, SimulationConfig{Iterations: 10, Confidence: 0.9, KellyMultiplier: 1, BatchSize: 2, ProgressEvery: 4}, c)
	})

	t.Run("invalid", func(t *testing.T) {
		requireInvalidField(t, SimulationConfig{Iterations: 0, Confidence: 0.95}.WithDefaults().Validate(), "config.iterations")
		requireInvalidField(t, SimulationConfig{Iterations: 1, Confidence: 1}.WithDefaults().Validate(), "config.confidence")
		requireInvalidField(t, SimulationConfig{Iterations: 1, Confidence: 0.5, KellyMultiplier: 1.5}.WithDefaults().Validate(), "config.kellyMultiplier")
		requireInvalidField(t, SimulationConfig{Iterations: 1, Confidence: 0.5, BatchSize: -1}.WithDefaults().Validate(), "config.batchSize")
	})
}

func TestSimulationInput_Hash(t *testing.T) {
	in := SimulationInput{
		Position:   PositionSpec{Direction: Direction_Short, Shares: 1, EntryPrice: decimal.RequireFromString("224.50")},
		Model:      TwoOutcomeRecallScenarioModel(),
		Iterations: 100,
		Confidence: 0.95,
		Seed:       42,
		Workers:    1,
	}
	first, err := in.Hash()
	require.NoError(t, err)
	require.Len(t, first, 64)

	// same price written differently
	in.Position.EntryPrice = decimal.RequireFromString("224.5")
	second, err := in.Hash()
	require.NoError(t, err)
	require.Equal(t, first, second)

	in.Seed = 43
	third, err := in.Hash()
	require.NoError(t, err)
	require.NotEqual(t, first, third)
}
