package service

import (
	"context"
	"fmt"
	"math/rand"
	"recallvantage/internal/calculator"
	"recallvantage/internal/domain"
	"recallvantage/internal/logger"
	"recallvantage/internal/observability"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultMaxIterations      = 1_000_000
	DefaultMaxRetainedSamples = 1_000_000

	mode_Run      = "run"
	mode_Stream   = "stream"
	mode_Parallel = "parallel"
)

type Limits struct {
	MaxIterations      int
	MaxRetainedSamples int
}

func DefaultLimits() Limits {
	return Limits{
		MaxIterations:      DefaultMaxIterations,
		MaxRetainedSamples: DefaultMaxRetainedSamples,
	}
}

// SimulationService runs monte carlo trials of a position against a
// scenario model. results are deterministic for an explicit seed
type SimulationService interface {
	// Run blocks until every trial completed or ctx is cancelled. a
	// cancelled run is not an error, the partial result comes back with
	// Complete=false
	Run(ctx context.Context, position domain.PositionSpec, model domain.ScenarioModel, config domain.SimulationConfig) (*domain.SimulationResult, error)
	Stream(ctx context.Context, position domain.PositionSpec, model domain.ScenarioModel, config domain.SimulationConfig) (*SimulationStream, error)
	// RunParallel splits the trials into one contiguous shard per worker.
	// deterministic for a fixed seed and worker count, and identical to
	// Run when workers is 1
	RunParallel(ctx context.Context, position domain.PositionSpec, model domain.ScenarioModel, config domain.SimulationConfig, workers int) (*domain.SimulationResult, error)
	// Check runs the same validation and limit checks a run would, without
	// simulating anything
	Check(position domain.PositionSpec, model domain.ScenarioModel, config domain.SimulationConfig, workers int) error
}

type simulationServiceHandler struct {
	Limits     Limits
	Metrics    *observability.Metrics
	seedSource func() int64
}

func NewSimulationService(limits Limits, metrics *observability.Metrics) SimulationService {
	defaults := DefaultLimits()
	if limits.MaxIterations <= 0 {
		limits.MaxIterations = defaults.MaxIterations
	}
	if limits.MaxRetainedSamples <= 0 {
		limits.MaxRetainedSamples = defaults.MaxRetainedSamples
	}
	return simulationServiceHandler{
		Limits:  limits,
		Metrics: metrics,
		seedSource: func() int64 {
			return time.Now().UnixNano()
		},
	}
}

// runPlan is a validated run, ready to simulate
type runPlan struct {
	model      domain.ScenarioModel
	config     domain.SimulationConfig
	seed       int64
	workers    int
	runID      uuid.UUID
	sampler    scenarioSampler
	maxSamples int
}

func (h simulationServiceHandler) plan(position domain.PositionSpec, model domain.ScenarioModel, config domain.SimulationConfig, workers int) (*runPlan, error) {
	if err := position.Validate(); err != nil {
		return nil, err
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}
	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Iterations > h.Limits.MaxIterations {
		return nil, domain.ResourceLimitError{
			Field:     "config.iterations",
			Requested: config.Iterations,
			Ceiling:   h.Limits.MaxIterations,
		}
	}
	// every trial's p&l is retained for the order statistics, so refuse
	// up front instead of failing halfway through
	if config.Iterations > h.Limits.MaxRetainedSamples {
		return nil, domain.ResourceLimitError{
			Field:     "retainedSamples",
			Requested: config.Iterations,
			Ceiling:   h.Limits.MaxRetainedSamples,
		}
	}
	if workers < 1 {
		return nil, domain.NewInvalidParameterError("workers", "must be at least 1, got %d", workers)
	}
	if workers > config.Iterations {
		workers = config.Iterations
	}

	// the caller keeps ownership of its slice
	model.Categories = append([]domain.ScenarioCategory{}, model.Categories...)

	p := &runPlan{
		model:      model,
		config:     config,
		workers:    workers,
		sampler:    newScenarioSampler(position, model),
		maxSamples: h.Limits.MaxRetainedSamples,
	}

	if config.Seed == nil {
		p.seed = h.seedSource()
		p.runID = uuid.New()
		return p, nil
	}

	p.seed = *config.Seed
	hash, err := domain.SimulationInput{
		Position:        position,
		Model:           model,
		Iterations:      config.Iterations,
		Confidence:      config.Confidence,
		KellyMultiplier: config.KellyMultiplier,
		Seed:            p.seed,
		Workers:         workers,
	}.Hash()
	if err != nil {
		return nil, err
	}
	p.runID = uuid.NewSHA1(uuid.NameSpaceOID, []byte(hash))

	return p, nil
}

func (h simulationServiceHandler) Check(position domain.PositionSpec, model domain.ScenarioModel, config domain.SimulationConfig, workers int) error {
	_, err := h.plan(position, model, config, workers)
	return err
}

func (p *runPlan) newAccumulator(expectedTrials int) *calculator.Accumulator {
	return calculator.NewAccumulator(len(p.model.Categories), expectedTrials, p.maxSamples)
}

// simulate adds up to n trials to acc, checking ctx before every batch.
// returns false if it stopped early because ctx was done
func (p *runPlan) simulate(ctx context.Context, rng *rand.Rand, acc *calculator.Accumulator, n int) (bool, error) {
	done := 0
	for done < n {
		if ctx.Err() != nil {
			return false, nil
		}
		batch := min(p.config.BatchSize, n-done)
		for i := 0; i < batch; i++ {
			if err := acc.Add(p.sampler.draw(rng)); err != nil {
				return false, err
			}
		}
		done += batch
	}
	return true, nil
}

func (p *runPlan) result(acc *calculator.Accumulator, complete bool) (*domain.SimulationResult, error) {
	m, err := calculator.CalculateRiskMetrics(acc, p.config.Confidence, p.config.KellyMultiplier)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate risk metrics: %w", err)
	}

	frequencies := make([]domain.CategoryFrequency, len(p.model.Categories))
	for i, c := range p.model.Categories {
		frequency := 0.0
		if m.Trials > 0 {
			frequency = float64(m.CategoryCounts[i]) / float64(m.Trials)
		}
		frequencies[i] = domain.CategoryFrequency{
			Name:      c.Name,
			Count:     m.CategoryCounts[i],
			Frequency: frequency,
		}
	}

	return &domain.SimulationResult{
		RunID:                  p.runID,
		Complete:               complete,
		TrialsCompleted:        m.Trials,
		TrialsRequested:        p.config.Iterations,
		Confidence:             p.config.Confidence,
		Seed:                   p.seed,
		KellyMultiplier:        p.config.KellyMultiplier,
		WinRate:                m.WinRate,
		ExpectedPnL:            m.Mean,
		StddevPnL:              m.Stddev,
		ValueAtRisk:            m.ValueAtRisk,
		ConditionalValueAtRisk: m.ConditionalValueAtRisk,
		SharpeRatio:            m.SharpeRatio,
		DegenerateStddev:       m.DegenerateStddev,
		AverageWin:             m.AverageWin,
		AverageLoss:            m.AverageLoss,
		RiskRewardRatio:        m.RiskRewardRatio,
		DegenerateRiskReward:   m.DegenerateRiskReward,
		KellyFraction:          m.KellyFraction,
		RecommendedFraction:    m.RecommendedFraction,
		ExpectedExitPrice:      p.sampler.entry * (1 + m.MeanImpact),
		ExpectedPriceMove:      m.MeanImpact,
		CategoryFrequencies:    frequencies,
		Recommendation:         calculator.Recommend(*m, p.config.KellyMultiplier),
	}, nil
}

func recordRun(ctx context.Context, metrics *observability.Metrics, mode string, result *domain.SimulationResult, err error, start time.Time) {
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordSimulationRun(mode, observability.RunStatus_Error, 0, elapsed)
		return
	}
	status := observability.RunStatus_Complete
	if !result.Complete {
		status = observability.RunStatus_Cancelled
	}
	metrics.RecordSimulationRun(mode, status, result.TrialsCompleted, elapsed)
	logger.FromContext(ctx).Infow(
		"simulation finished",
		"mode", mode,
		"runID", result.RunID.String(),
		"status", status,
		"trials", result.TrialsCompleted,
		"elapsedMs", elapsed.Milliseconds(),
	)
}

func (h simulationServiceHandler) Run(ctx context.Context, position domain.PositionSpec, model domain.ScenarioModel, config domain.SimulationConfig) (result *domain.SimulationResult, err error) {
	start := time.Now()
	defer func() {
		recordRun(ctx, h.Metrics, mode_Run, result, err, start)
	}()
	profile := domain.PerformanceProfileFromContext(ctx)

	p, err := h.plan(position, model, config, 1)
	if err != nil {
		return nil, err
	}

	acc := p.newAccumulator(p.config.Iterations)
	complete, err := p.simulate(ctx, rand.New(rand.NewSource(p.seed)), acc, p.config.Iterations)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate: %w", err)
	}
	profile.Add("simulate")

	result, err = p.result(acc, complete)
	if err != nil {
		return nil, err
	}
	profile.Add("calculate metrics")

	return result, nil
}

type shardInput struct {
	index int
	size  int
}

type shardResult struct {
	index    int
	acc      *calculator.Accumulator
	complete bool
	err      error
}

// shardSeed mixes the shard index into the run seed with splitmix64.
// shard 0 keeps the run seed so a single worker reproduces Run
func shardSeed(seed int64, shard int) int64 {
	if shard == 0 {
		return seed
	}
	z := uint64(seed) + uint64(shard)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return int64(z ^ (z >> 31))
}

// shardSizes splits n into contiguous shards, the first n%workers shards
// get one extra trial
func shardSizes(n, workers int) []int {
	out := make([]int, workers)
	for i := range out {
		out[i] = n / workers
		if i < n%workers {
			out[i]++
		}
	}
	return out
}

func (h simulationServiceHandler) RunParallel(ctx context.Context, position domain.PositionSpec, model domain.ScenarioModel, config domain.SimulationConfig, workers int) (result *domain.SimulationResult, err error) {
	start := time.Now()
	defer func() {
		recordRun(ctx, h.Metrics, mode_Parallel, result, err, start)
	}()
	profile := domain.PerformanceProfileFromContext(ctx)

	p, err := h.plan(position, model, config, workers)
	if err != nil {
		return nil, err
	}

	sizes := shardSizes(p.config.Iterations, p.workers)
	inputCh := make(chan shardInput, len(sizes))
	resultCh := make(chan shardResult, len(sizes))
	var wg sync.WaitGroup
	for i, size := range sizes {
		wg.Add(1)
		inputCh <- shardInput{index: i, size: size}
	}
	close(inputCh)

	for i := 0; i < p.workers; i++ {
		go func() {
			for input := range inputCh {
				acc := p.newAccumulator(input.size)
				rng := rand.New(rand.NewSource(shardSeed(p.seed, input.index)))
				complete, err := p.simulate(ctx, rng, acc, input.size)
				if err != nil {
					err = fmt.Errorf("failed to simulate shard %d: %w", input.index, err)
				}
				resultCh <- shardResult{
					index:    input.index,
					acc:      acc,
					complete: complete,
					err:      err,
				}
				wg.Done()
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	shards := make([]shardResult, len(sizes))
	for res := range resultCh {
		shards[res.index] = res
	}
	profile.Add("simulate shards")

	// shard order, not completion order, keeps the float sums stable
	total := p.newAccumulator(p.config.Iterations)
	complete := true
	for _, shard := range shards {
		if shard.err != nil {
			return nil, shard.err
		}
		if err := total.Merge(shard.acc); err != nil {
			return nil, fmt.Errorf("failed to merge shard %d: %w", shard.index, err)
		}
		complete = complete && shard.complete
	}

	result, err = p.result(total, complete)
	if err != nil {
		return nil, err
	}
	profile.Add("calculate metrics")

	return result, nil
}

// SimulationStream is a lazy, single use iterator over a run's progress.
// each Next advances the simulation to the next progress point; the last
// update carries the final result
//
//	stream, err := svc.Stream(ctx, position, model, config)
//	for stream.Next() {
//		update := stream.Update()
//	}
//	if err := stream.Err(); err != nil {}
type SimulationStream struct {
	ctx     context.Context
	cancel  context.CancelFunc
	plan    *runPlan
	rng     *rand.Rand
	acc     *calculator.Accumulator
	metrics *observability.Metrics
	start   time.Time

	current domain.ProgressUpdate
	err     error
	done    bool
}

func (h simulationServiceHandler) Stream(ctx context.Context, position domain.PositionSpec, model domain.ScenarioModel, config domain.SimulationConfig) (*SimulationStream, error) {
	p, err := h.plan(position, model, config, 1)
	if err != nil {
		h.Metrics.RecordSimulationRun(mode_Stream, observability.RunStatus_Error, 0, 0)
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	return &SimulationStream{
		ctx:     streamCtx,
		cancel:  cancel,
		plan:    p,
		rng:     rand.New(rand.NewSource(p.seed)),
		acc:     p.newAccumulator(p.config.Iterations),
		metrics: h.Metrics,
		start:   time.Now(),
	}, nil
}

func (s *SimulationStream) Next() bool {
	if s.done {
		return false
	}

	iterations := s.plan.config.Iterations
	target := min(s.acc.Count()+s.plan.config.ProgressEvery, iterations)
	finishedChunk, err := s.plan.simulate(s.ctx, s.rng, s.acc, target-s.acc.Count())
	if err != nil {
		s.finish(nil, fmt.Errorf("failed to simulate: %w", err))
		return false
	}

	allDone := finishedChunk && s.acc.Count() >= iterations
	final := !finishedChunk || allDone

	snapshot, err := s.plan.result(s.acc, allDone)
	if err != nil {
		s.finish(nil, err)
		return false
	}

	s.current = domain.ProgressUpdate{
		TrialsCompleted: s.acc.Count(),
		Snapshot:        snapshot,
		Final:           final,
	}
	if final {
		s.finish(snapshot, nil)
	}
	return true
}

func (s *SimulationStream) finish(result *domain.SimulationResult, err error) {
	s.done = true
	s.err = err
	s.cancel()
	recordRun(s.ctx, s.metrics, mode_Stream, result, err, s.start)
}

// Update is the progress point reached by the last successful Next
func (s *SimulationStream) Update() domain.ProgressUpdate {
	return s.current
}

// Err is only set when the run failed. cancellation is reported through
// a final update with Complete=false instead
func (s *SimulationStream) Err() error {
	return s.err
}

// Cancel stops the run at the next batch boundary. the following Next
// returns the partial result as the final update. safe to call from
// another goroutine
func (s *SimulationStream) Cancel() {
	s.cancel()
}

// RunID is known before the first trial runs
func (s *SimulationStream) RunID() uuid.UUID {
	return s.plan.runID
}

func (s *SimulationStream) TrialsRequested() int {
	return s.plan.config.Iterations
}
