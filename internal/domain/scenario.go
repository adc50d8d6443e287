package domain

import (
	"fmt"
	"math"
	"strings"
)

const ScenarioWeightTolerance = 1e-6

// ImpactDistribution is the fractional price move for a category,
// ie -0.15 means the stock drops 15%
type ImpactDistribution struct {
	Mean   float64 `json:"mean"`
	Stddev float64 `json:"stddev"`
}

type ScenarioCategory struct {
	Name   string             `json:"name"`
	Weight float64            `json:"weight"`
	Impact ImpactDistribution `json:"impact"`
	// baseline categories describe ordinary trading (no real recall
	// news), calibration only touches these
	Baseline bool `json:"baseline,omitempty"`
}

type ScenarioModel struct {
	Name       string             `json:"name"`
	Categories []ScenarioCategory `json:"categories"`
}

func NewScenarioModel(name string, categories []ScenarioCategory) (*ScenarioModel, error) {
	m := ScenarioModel{
		Name:       strings.TrimSpace(name),
		Categories: append([]ScenarioCategory{}, categories...),
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m ScenarioModel) Validate() error {
	if len(m.Categories) == 0 {
		return NewInvalidParameterError("model.categories", "at least one category is required")
	}

	seen := map[string]struct{}{}
	sum := 0.0
	nonZero := 0
	for i, c := range m.Categories {
		prefix := fmt.Sprintf("model.categories[%d]", i)
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return NewInvalidParameterError(prefix+".name", "must not be empty")
		}
		if _, ok := seen[strings.ToLower(name)]; ok {
			return NewInvalidParameterError(prefix+".name", "duplicate category '%s'", name)
		}
		seen[strings.ToLower(name)] = struct{}{}

		if math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) || c.Weight < 0 {
			return NewInvalidParameterError(prefix+".weight", "must be a non-negative number, got %v", c.Weight)
		}
		if math.IsNaN(c.Impact.Mean) || math.IsInf(c.Impact.Mean, 0) {
			return NewInvalidParameterError(prefix+".impact.mean", "must be finite, got %v", c.Impact.Mean)
		}
		if math.IsNaN(c.Impact.Stddev) || math.IsInf(c.Impact.Stddev, 0) || c.Impact.Stddev < 0 {
			return NewInvalidParameterError(prefix+".impact.stddev", "must be a non-negative number, got %v", c.Impact.Stddev)
		}
		if c.Weight > 0 {
			nonZero++
		}
		sum += c.Weight
	}

	if nonZero == 0 {
		return NewInvalidParameterError("model.weights", "at least one category must have nonzero weight")
	}
	if math.Abs(sum-1) > ScenarioWeightTolerance {
		return NewInvalidParameterError("model.weights", "weights should sum to 1, got %f", sum)
	}

	return nil
}

// CategoryNames in model order
func (m ScenarioModel) CategoryNames() []string {
	names := make([]string, len(m.Categories))
	for i, c := range m.Categories {
		names[i] = c.Name
	}
	return names
}

// ExpectedImpact ignores clipping, so it is only exact when the impact
// distributions sit well inside the clip bounds
func (m ScenarioModel) ExpectedImpact() float64 {
	out := 0.0
	for _, c := range m.Categories {
		out += c.Weight * c.Impact.Mean
	}
	return out
}

// WithBaselineStddev returns a copy with every baseline category's
// stddev replaced
func (m ScenarioModel) WithBaselineStddev(stddev float64) ScenarioModel {
	out := ScenarioModel{
		Name:       m.Name,
		Categories: make([]ScenarioCategory, len(m.Categories)),
	}
	copy(out.Categories, m.Categories)
	for i := range out.Categories {
		if out.Categories[i].Baseline {
			out.Categories[i].Impact.Stddev = stddev
		}
	}
	return out
}

const DefaultScenarioModelName = "recall-default"

// DefaultRecallScenarioModel uses the scenario frequencies shown on the
// dashboard as weights. impact params are placeholders until calibrated
// against real recall event studies
func DefaultRecallScenarioModel() ScenarioModel {
	return ScenarioModel{
		Name: DefaultScenarioModelName,
		Categories: []ScenarioCategory{
			{Name: "Media Firestorm", Weight: 0.482, Impact: ImpactDistribution{Mean: -0.18, Stddev: 0.06}},
			{Name: "NHTSA Investigation", Weight: 0.341, Impact: ImpactDistribution{Mean: -0.12, Stddev: 0.05}},
			{Name: "Legal Action", Weight: 0.128, Impact: ImpactDistribution{Mean: -0.09, Stddev: 0.05}},
			{Name: "Voluntary Recall", Weight: 0.037, Impact: ImpactDistribution{Mean: -0.04, Stddev: 0.03}},
			{Name: "Silent Fix", Weight: 0.010, Impact: ImpactDistribution{Mean: -0.01, Stddev: 0.02}, Baseline: true},
			{Name: "No Event", Weight: 0.002, Impact: ImpactDistribution{Mean: 0.02, Stddev: 0.02}, Baseline: true},
		},
	}
}

// TwoOutcomeRecallScenarioModel is the simplest useful model - either the
// recall lands or nothing happens
func TwoOutcomeRecallScenarioModel() ScenarioModel {
	return ScenarioModel{
		Name: "recall-binary",
		Categories: []ScenarioCategory{
			{Name: "Recall", Weight: 0.9, Impact: ImpactDistribution{Mean: -0.15, Stddev: 0.05}},
			{Name: "No Event", Weight: 0.1, Impact: ImpactDistribution{Mean: 0, Stddev: 0.02}, Baseline: true},
		},
	}
}

func PresetScenarioModels() []ScenarioModel {
	return []ScenarioModel{
		DefaultRecallScenarioModel(),
		TwoOutcomeRecallScenarioModel(),
	}
}
