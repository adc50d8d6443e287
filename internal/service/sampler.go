package service

import (
	"math/rand"
	"recallvantage/internal/domain"
	"sort"
)

// scenarioSampler draws trial outcomes for one position against one
// model. it holds no rng, so a sampler can be shared by shards that each
// own their stream
type scenarioSampler struct {
	position   domain.PositionSpec
	entry      float64
	categories []domain.ScenarioCategory
	cumulative []float64
}

func newScenarioSampler(position domain.PositionSpec, model domain.ScenarioModel) scenarioSampler {
	cumulative := make([]float64, len(model.Categories))
	running := 0.0
	for i, c := range model.Categories {
		running += c.Weight
		cumulative[i] = running
	}
	// weights only sum to 1 within tolerance. pin from the last weighted
	// category on, so u=1 always lands and trailing zero-weight categories
	// are never drawn
	last := len(cumulative) - 1
	for last > 0 && model.Categories[last].Weight == 0 {
		last--
	}
	for i := last; i < len(cumulative); i++ {
		cumulative[i] = 1
	}

	return scenarioSampler{
		position:   position,
		entry:      position.EntryPrice.InexactFloat64(),
		categories: model.Categories,
		cumulative: cumulative,
	}
}

// categoryFor returns the first category whose cumulative weight reaches
// u. u is in (0, 1], so a leading zero-weight category is never picked
func (s scenarioSampler) categoryFor(u float64) int {
	return sort.SearchFloat64s(s.cumulative, u)
}

// draw consumes exactly one uniform then one normal from rng
func (s scenarioSampler) draw(rng *rand.Rand) domain.TrialOutcome {
	u := 1 - rng.Float64()
	z := rng.NormFloat64()

	idx := s.categoryFor(u)
	impactDist := s.categories[idx].Impact
	impact := clipImpact(impactDist.Mean + impactDist.Stddev*z)

	exitPrice := s.entry * (1 + impact)
	return domain.TrialOutcome{
		CategoryIndex: idx,
		Impact:        impact,
		ExitPrice:     exitPrice,
		PnL:           s.position.PnL(s.entry, exitPrice),
	}
}

func clipImpact(x float64) float64 {
	if x < domain.MinImpact {
		return domain.MinImpact
	}
	if x > domain.MaxImpact {
		return domain.MaxImpact
	}
	return x
}
