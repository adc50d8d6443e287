package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"recallvantage/api"
	"recallvantage/internal/app"
	"recallvantage/internal/config"
	"recallvantage/internal/logger"
	"recallvantage/internal/observability"
	"recallvantage/internal/repository"
	"recallvantage/internal/service"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Dependencies struct {
	Config  config.Config
	Logger  *zap.SugaredLogger
	Db      *sql.DB
	Redis   *redis.Client
	Metrics *observability.Metrics

	SimulationService    service.SimulationService
	ScenarioModelService service.ScenarioModelService
	CalibrationService   service.CalibrationService
	LedgerService        service.LedgerService
	SimulationApp        app.SimulationApp
}

func (d Dependencies) ApiHandler() *api.ApiHandler {
	sim := d.Config.Simulation
	return &api.ApiHandler{
		Db:                   d.Db,
		Logger:               d.Logger,
		Metrics:              d.Metrics,
		SimulationApp:        d.SimulationApp,
		ScenarioModelService: d.ScenarioModelService,
		CalibrationService:   d.CalibrationService,
		LedgerService:        d.LedgerService,
		Defaults: api.SimulationDefaults{
			Iterations:      sim.DefaultIterations,
			Confidence:      sim.DefaultConfidence,
			KellyMultiplier: sim.DefaultKellyMultiplier,
			BatchSize:       sim.DefaultBatchSize,
			MaxWorkers:      sim.MaxWorkers,
		},
		RequestTimeout: d.Config.Server.RequestTimeout,
		AllowedOrigins: d.Config.Server.AllowedOrigins,
	}
}

func CloseDependencies(d *Dependencies) {
	if d.Db != nil {
		if err := d.Db.Close(); err != nil {
			d.Logger.Errorf("failed to close db: %s", err.Error())
		}
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Errorf("failed to close redis: %s", err.Error())
		}
	}
	d.Logger.Sync()
}

// InitializeDependencies wires everything from config. the db, redis and
// alpaca are optional; without them runs are not persisted, results are
// cached in memory and entry prices must be given explicitly
func InitializeDependencies(cfg config.Config) (*Dependencies, error) {
	lg, err := logger.New(logger.Options{
		Env:      cfg.App.Env,
		Level:    cfg.Log.Level,
		Encoding: cfg.Log.Encoding,
	})
	if err != nil {
		return nil, err
	}
	zap.ReplaceGlobals(lg.Desugar())

	d := &Dependencies{
		Config:  cfg,
		Logger:  lg,
		Metrics: observability.NewMetrics(""),
	}

	var (
		scenarioModelRepository repository.ScenarioModelRepository
		resultCacheRepository   repository.ResultCacheRepository
		alpacaRepository        repository.AlpacaRepository
	)

	if cfg.DB.Enabled() {
		dbConn, err := sql.Open("postgres", cfg.DB.ToConnectionStr())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to db: %w", err)
		}
		dbConn.SetMaxOpenConns(cfg.DB.MaxOpenConns)
		dbConn.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)
		d.Db = dbConn

		scenarioModelRepository = repository.NewScenarioModelRepository(dbConn)
		d.LedgerService = service.NewLedgerService(dbConn, repository.NewSimulationRunRepository(dbConn))
	} else {
		lg.Info("no db configured, simulation runs will not be persisted")
	}

	if cfg.Redis.Addr != "" {
		d.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := d.Redis.Ping(ctx).Err(); err != nil {
			lg.Warnf("redis at %s is unreachable, lookups will miss until it is: %s", cfg.Redis.Addr, err.Error())
		}
		resultCacheRepository = repository.NewRedisResultCacheRepository(d.Redis, cfg.Cache.TTL)
	} else {
		resultCacheRepository = repository.NewMemoryResultCacheRepository(cfg.Cache.TTL)
	}

	if cfg.Alpaca.Enabled() {
		alpacaRepository = repository.NewAlpacaRepository(cfg.Alpaca.ApiKey, cfg.Alpaca.ApiSecret, cfg.Alpaca.Endpoint)
	}

	d.SimulationService = service.NewSimulationService(service.Limits{
		MaxIterations:      cfg.Simulation.MaxIterations,
		MaxRetainedSamples: cfg.Simulation.MaxRetainedSamples,
	}, d.Metrics)
	d.ScenarioModelService = service.NewScenarioModelService(scenarioModelRepository)
	d.CalibrationService = service.NewCalibrationService(repository.NewPriceHistoryRepository())
	d.SimulationApp = app.NewSimulationApp(
		d.SimulationService,
		d.ScenarioModelService,
		service.NewQuoteService(alpacaRepository),
		d.LedgerService,
		resultCacheRepository,
		d.Metrics,
	)

	return d, nil
}
