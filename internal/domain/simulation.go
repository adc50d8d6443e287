package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"

	"github.com/google/uuid"
)

const (
	DefaultKellyMultiplier = 0.25
	DefaultBatchSize       = 1_000

	// impact draws are clipped to keep exit prices physical
	MinImpact = -0.95
	MaxImpact = 5.0
)

type SimulationConfig struct {
	Iterations int     `json:"iterations"`
	Confidence float64 `json:"confidence"`
	// nil means seed from entropy
	Seed            *int64  `json:"seed,omitempty"`
	KellyMultiplier float64 `json:"kellyMultiplier"`
	// how often cancellation is checked, in trials
	BatchSize int `json:"batchSize,omitempty"`
	// streaming variant only; trials between progress updates
	ProgressEvery int `json:"progressEvery,omitempty"`
}

// WithDefaults fills zero values. it never overrides what the caller set
func (c SimulationConfig) WithDefaults() SimulationConfig {
	if c.KellyMultiplier == 0 {
		c.KellyMultiplier = DefaultKellyMultiplier
	}
	if c.BatchSize == 0 {
		c.BatchSize = DefaultBatchSize
	}
	if c.ProgressEvery == 0 && c.Iterations > 0 {
		every := (c.Iterations + 19) / 20
		c.ProgressEvery = ((every + c.BatchSize - 1) / c.BatchSize) * c.BatchSize
	}
	return c
}

func (c SimulationConfig) Validate() error {
	if c.Iterations <= 0 {
		return NewInvalidParameterError("config.iterations", "must be at least 1, got %d", c.Iterations)
	}
	if math.IsNaN(c.Confidence) || c.Confidence <= 0 || c.Confidence >= 1 {
		return NewInvalidParameterError("config.confidence", "must be in (0, 1), got %v", c.Confidence)
	}
	if math.IsNaN(c.KellyMultiplier) || c.KellyMultiplier <= 0 || c.KellyMultiplier > 1 {
		return NewInvalidParameterError("config.kellyMultiplier", "must be in (0, 1], got %v", c.KellyMultiplier)
	}
	if c.BatchSize < 0 {
		return NewInvalidParameterError("config.batchSize", "must not be negative, got %d", c.BatchSize)
	}
	if c.ProgressEvery < 0 {
		return NewInvalidParameterError("config.progressEvery", "must not be negative, got %d", c.ProgressEvery)
	}
	return nil
}

// TrialOutcome is a single simulated draw. these never leave a run
type TrialOutcome struct {
	CategoryIndex int
	Impact        float64
	ExitPrice     float64
	PnL           float64
}

type CategoryFrequency struct {
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

type Recommendation struct {
	Rating            string   `json:"rating"`
	Confidence        string   `json:"confidence"`
	Rationale         []string `json:"rationale"`
	SuggestedFraction float64  `json:"suggestedFraction"`
}

// SimulationResult is built once at the end of a run (or for a progress
// snapshot) and must not be modified afterwards
type SimulationResult struct {
	RunID           uuid.UUID `json:"runID"`
	Complete        bool      `json:"complete"`
	TrialsCompleted int       `json:"trialsCompleted"`
	TrialsRequested int       `json:"trialsRequested"`
	Confidence      float64   `json:"confidence"`
	Seed            int64     `json:"seed"`
	KellyMultiplier float64   `json:"kellyMultiplier"`

	WinRate                float64 `json:"winRate"`
	ExpectedPnL            float64 `json:"expectedPnL"`
	StddevPnL              float64 `json:"stddevPnL"`
	ValueAtRisk            float64 `json:"valueAtRisk"`
	ConditionalValueAtRisk float64 `json:"conditionalValueAtRisk"`
	SharpeRatio            float64 `json:"sharpeRatio"`
	DegenerateStddev       bool    `json:"degenerateStddev"`

	AverageWin           float64 `json:"averageWin"`
	AverageLoss          float64 `json:"averageLoss"`
	RiskRewardRatio      float64 `json:"riskRewardRatio"`
	DegenerateRiskReward bool    `json:"degenerateRiskReward"`
	KellyFraction        float64 `json:"kellyFraction"`
	RecommendedFraction  float64 `json:"recommendedFraction"`

	ExpectedExitPrice float64 `json:"expectedExitPrice"`
	ExpectedPriceMove float64 `json:"expectedPriceMove"`

	CategoryFrequencies []CategoryFrequency `json:"categoryFrequencies"`
	Recommendation      Recommendation      `json:"recommendation"`
}

func (r SimulationResult) Frequency(category string) (CategoryFrequency, bool) {
	for _, f := range r.CategoryFrequencies {
		if f.Name == category {
			return f, true
		}
	}
	return CategoryFrequency{}, false
}

type ProgressUpdate struct {
	TrialsCompleted int               `json:"trialsCompleted"`
	Snapshot        *SimulationResult `json:"snapshot"`
	Final           bool              `json:"final"`
}

// SimulationInput is everything that determines a seeded result. batch
// size and progress interval only change how a run is observed, so they
// are left out of the hash
type SimulationInput struct {
	Position        PositionSpec  `json:"position"`
	Model           ScenarioModel `json:"model"`
	Iterations      int           `json:"iterations"`
	Confidence      float64       `json:"confidence"`
	KellyMultiplier float64       `json:"kellyMultiplier"`
	Seed            int64         `json:"seed"`
	Workers         int           `json:"workers"`
}

// Hash is the hex sha256 of the input's json encoding
func (in SimulationInput) Hash() (string, error) {
	bytes, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to marshal simulation input: %w", err)
	}
	hasher := sha256.New()
	hasher.Write(bytes)
	return hex.EncodeToString(hasher.Sum(nil)), nil
}
