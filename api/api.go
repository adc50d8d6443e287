package api

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"recallvantage/internal/app"
	"recallvantage/internal/domain"
	"recallvantage/internal/logger"
	"recallvantage/internal/observability"
	"recallvantage/internal/service"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// SimulationDefaults fill the fields a request leaves out
type SimulationDefaults struct {
	Iterations      int
	Confidence      float64
	KellyMultiplier float64
	BatchSize       int
	MaxWorkers      int
}

type ApiHandler struct {
	// nil when running without the ledger db
	Db                   *sql.DB
	Logger               *zap.SugaredLogger
	Metrics              *observability.Metrics
	SimulationApp        app.SimulationApp
	ScenarioModelService service.ScenarioModelService
	CalibrationService   service.CalibrationService
	// nil when running without the ledger db
	LedgerService service.LedgerService

	Defaults       SimulationDefaults
	RequestTimeout time.Duration
	AllowedOrigins []string
}

func (m ApiHandler) InitializeRouterEngine() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(m.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = m.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AddExposeHeaders(requestIDHeader)
	router.Use(cors.New(corsConfig))
	router.Use(m.logRequestMiddleware)

	router.GET("/", func(ctx *gin.Context) {
		ctx.JSON(200, map[string]string{"message": "welcome to recallvantage"})
	})
	router.GET("/metrics", gin.WrapH(m.Metrics.Handler()))

	router.GET("/scenarioModels", m.getScenarioModels)
	router.POST("/scenarioModels", m.saveScenarioModel)
	router.POST("/simulate", m.simulate)
	router.POST("/simulate/stream", m.simulateStream)
	router.POST("/calibrate", m.calibrate)
	router.GET("/simulationRuns", m.listSimulationRuns)
	router.GET("/simulationRuns/:id", m.getSimulationRun)
	router.GET("/stats", m.getStats)

	return router
}

func (m ApiHandler) StartApi(port int) error {
	router := m.InitializeRouterEngine()
	return router.Run(fmt.Sprintf(":%d", port))
}

// errorStatus maps domain errors onto http codes, anything unknown is
// treated as our fault
func errorStatus(err error) int {
	var (
		invalidErr domain.InvalidParameterError
		limitErr   domain.ResourceLimitError
	)
	switch {
	case errors.As(err, &invalidErr):
		return http.StatusBadRequest
	case errors.As(err, &limitErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func returnErrorJson(err error, c *gin.Context) {
	returnErrorJsonCode(err, c, errorStatus(err))
}

func returnErrorJsonCode(err error, c *gin.Context, code int) {
	lg := logger.FromContext(c.Request.Context())
	if code >= 500 {
		lg.Errorf("request failed: %s", err.Error())
	} else {
		lg.Infof("rejected request: %s", err.Error())
	}

	body := gin.H{
		"error": err.Error(),
	}
	var (
		invalidErr domain.InvalidParameterError
		limitErr   domain.ResourceLimitError
	)
	if errors.As(err, &invalidErr) {
		body["field"] = invalidErr.Field
	} else if errors.As(err, &limitErr) {
		body["field"] = limitErr.Field
		body["ceiling"] = limitErr.Ceiling
	}
	c.AbortWithStatusJSON(code, body)
}

var errNoDatabase = errors.New("no database is configured")

func (m ApiHandler) baseLogger() *zap.SugaredLogger {
	if m.Logger == nil {
		return zap.S()
	}
	return m.Logger
}

// logRequestMiddleware tags every request with an id, attaches a request
// scoped logger and performance profile, and records latency
func (m ApiHandler) logRequestMiddleware(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if _, err := uuid.Parse(requestID); err != nil {
		requestID = uuid.NewString()
	}
	c.Header(requestIDHeader, requestID)

	lg := m.baseLogger().With("requestID", requestID)
	profile := domain.NewPerformanceProfile()
	ctx := logger.WithContext(c.Request.Context(), lg)
	ctx = domain.ContextWithPerformanceProfile(ctx, profile)
	c.Request = c.Request.WithContext(ctx)

	start := time.Now()
	c.Next()
	profile.End()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	status := c.Writer.Status()
	m.Metrics.RecordRequest(route, strconv.Itoa(status), time.Since(start))

	fields := []interface{}{
		"method", c.Request.Method,
		"route", route,
		"status", status,
		"latencyMs", time.Since(start).Milliseconds(),
	}
	if len(profile.Events) > 0 {
		fields = append(fields, profile.LogFields()...)
	}
	lg.Infow("handled request", fields...)
}
