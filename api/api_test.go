package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"recallvantage/internal/app"
	"recallvantage/internal/db/models/postgres/public/model"
	"recallvantage/internal/domain"
	"recallvantage/internal/observability"
	"recallvantage/internal/repository"
	mock_repository "recallvantage/internal/repository/mocks"
	"recallvantage/internal/service"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testServer struct {
	handler                 ApiHandler
	engine                  *gin.Engine
	simulationRunRepository *mock_repository.MockSimulationRunRepository
}

func newTestServer(t *testing.T, withLedger bool) testServer {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)

	metrics := observability.NewMetrics("")
	simulationRunRepository := mock_repository.NewMockSimulationRunRepository(ctrl)
	scenarioModelService := service.NewScenarioModelService(nil)
	var ledgerService service.LedgerService
	if withLedger {
		ledgerService = service.NewLedgerService(nil, simulationRunRepository)
	}

	simulationService := service.NewSimulationService(service.Limits{
		MaxIterations:      50_000,
		MaxRetainedSamples: 50_000,
	}, metrics)

	handler := ApiHandler{
		Metrics: metrics,
		SimulationApp: app.NewSimulationApp(
			simulationService,
			scenarioModelService,
			service.NewQuoteService(nil),
			ledgerService,
			repository.NewMemoryResultCacheRepository(time.Hour),
			metrics,
		),
		ScenarioModelService: scenarioModelService,
		CalibrationService:   service.NewCalibrationService(mock_repository.NewMockPriceHistoryRepository(ctrl)),
		LedgerService:        ledgerService,
		Defaults: SimulationDefaults{
			Iterations:      10_000,
			Confidence:      0.95,
			KellyMultiplier: 0.25,
			BatchSize:       1_000,
			MaxWorkers:      4,
		},
	}

	return testServer{
		handler:                 handler,
		engine:                  handler.InitializeRouterEngine(),
		simulationRunRepository: simulationRunRepository,
	}
}

func (s testServer) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func concreteRequest() map[string]interface{} {
	return map[string]interface{}{
		"symbol":            "TSLA",
		"direction":         "short",
		"shares":            100000,
		"entryPrice":        224.50,
		"scenarioModelName": "recall-binary",
		"iterations":        10000,
		"confidence":        0.95,
		"seed":              42,
	}
}

func TestApi_simulate(t *testing.T) {
	t.Run("concrete scenario", func(t *testing.T) {
		s := newTestServer(t, false)
		w := s.do("POST", "/simulate", concreteRequest())
		require.Equal(t, 200, w.Code, w.Body.String())
		_, err := uuid.Parse(w.Header().Get(requestIDHeader))
		require.NoError(t, err)

		out := app.SimulateOutput{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.True(t, out.Result.Complete)
		require.Equal(t, 10_000, out.Result.TrialsCompleted)
		require.InDelta(t, 0.9488, out.Result.WinRate, 0.01)
		require.Greater(t, out.Result.ExpectedPnL, 0.0)
		require.Greater(t, out.Result.KellyFraction, 0.0)
		require.False(t, out.Cached)

		again := app.SimulateOutput{}
		w = s.do("POST", "/simulate", concreteRequest())
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
		require.True(t, again.Cached)
		require.Equal(t, out.Result.RunID, again.Result.RunID)
	})

	t.Run("invalid weights", func(t *testing.T) {
		s := newTestServer(t, false)
		req := concreteRequest()
		req["scenarioModel"] = domain.ScenarioModel{
			Name: "half",
			Categories: []domain.ScenarioCategory{
				{Name: "Recall", Weight: 0.5, Impact: domain.ImpactDistribution{Mean: -0.15, Stddev: 0.05}},
			},
		}
		w := s.do("POST", "/simulate", req)
		require.Equal(t, 400, w.Code)

		body := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "model.weights", body["field"])
	})

	t.Run("iterations above ceiling", func(t *testing.T) {
		s := newTestServer(t, false)
		req := concreteRequest()
		req["iterations"] = 60_000
		w := s.do("POST", "/simulate", req)
		require.Equal(t, 422, w.Code)

		body := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Equal(t, "config.iterations", body["field"])
		require.Equal(t, 50_000.0, body["ceiling"])
	})

	t.Run("explicit zero iterations", func(t *testing.T) {
		s := newTestServer(t, false)
		req := concreteRequest()
		req["iterations"] = 0
		w := s.do("POST", "/simulate", req)
		require.Equal(t, 400, w.Code)
	})

	t.Run("too many workers", func(t *testing.T) {
		s := newTestServer(t, false)
		req := concreteRequest()
		req["workers"] = 8
		w := s.do("POST", "/simulate", req)
		require.Equal(t, 422, w.Code)
	})

	t.Run("unknown model", func(t *testing.T) {
		s := newTestServer(t, false)
		req := concreteRequest()
		req["scenarioModelName"] = "nope"
		w := s.do("POST", "/simulate", req)
		require.Equal(t, 404, w.Code)
	})

	t.Run("missing entry price without quotes", func(t *testing.T) {
		s := newTestServer(t, false)
		req := concreteRequest()
		delete(req, "entryPrice")
		w := s.do("POST", "/simulate", req)
		require.Equal(t, 400, w.Code)
	})

	t.Run("save", func(t *testing.T) {
		s := newTestServer(t, true)
		savedID := uuid.New()
		s.simulationRunRepository.EXPECT().
			Add(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, m model.SimulationRun) (*model.SimulationRun, error) {
				m.SimulationRunID = savedID
				return &m, nil
			})

		req := concreteRequest()
		req["save"] = true
		w := s.do("POST", "/simulate", req)
		require.Equal(t, 200, w.Code, w.Body.String())

		out := app.SimulateOutput{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, savedID, *out.SimulationRunID)
	})
}

func TestApi_simulateStream(t *testing.T) {
	s := newTestServer(t, false)
	req := concreteRequest()
	req["progressEvery"] = 2_000
	w := s.do("POST", "/simulate/stream", req)
	require.Equal(t, 200, w.Code)

	body := w.Body.String()
	require.Len(t, regexp.MustCompile(`event: ?started`).FindAllString(body, -1), 1)
	require.Len(t, regexp.MustCompile(`event: ?progress`).FindAllString(body, -1), 4)
	require.Len(t, regexp.MustCompile(`event: ?result`).FindAllString(body, -1), 1)
	require.NotContains(t, body, "event:error")
}

func TestApi_scenarioModels(t *testing.T) {
	s := newTestServer(t, false)
	w := s.do("GET", "/scenarioModels", nil)
	require.Equal(t, 200, w.Code)

	out := []scenarioModelResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	require.True(t, out[0].Preset)
	require.Equal(t, domain.DefaultScenarioModelName, out[0].Name)

	w = s.do("POST", "/scenarioModels", domain.TwoOutcomeRecallScenarioModel())
	require.Equal(t, 503, w.Code)
}

func TestApi_simulationRuns(t *testing.T) {
	t.Run("no ledger", func(t *testing.T) {
		s := newTestServer(t, false)
		w := s.do("GET", "/simulationRuns/"+uuid.NewString(), nil)
		require.Equal(t, 503, w.Code)
	})

	t.Run("falls back to run id", func(t *testing.T) {
		s := newTestServer(t, true)
		runID := uuid.New()
		s.simulationRunRepository.EXPECT().Get(runID).Return(nil, nil)
		s.simulationRunRepository.EXPECT().GetLatestByRunID(runID).Return(&model.SimulationRun{
			SimulationRunID: uuid.New(),
			RunID:           runID,
			Direction:       "SHORT",
			ResultJSON:      fmt.Sprintf(`{"runID":"%s","complete":true}`, runID.String()),
		}, nil)

		w := s.do("GET", "/simulationRuns/"+runID.String(), nil)
		require.Equal(t, 200, w.Code, w.Body.String())
		entry := service.LedgerEntry{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entry))
		require.Equal(t, runID, entry.Result.RunID)
	})

	t.Run("not found", func(t *testing.T) {
		s := newTestServer(t, true)
		id := uuid.New()
		s.simulationRunRepository.EXPECT().Get(id).Return(nil, nil)
		s.simulationRunRepository.EXPECT().GetLatestByRunID(id).Return(nil, nil)

		w := s.do("GET", "/simulationRuns/"+id.String(), nil)
		require.Equal(t, 404, w.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		s := newTestServer(t, true)
		w := s.do("GET", "/simulationRuns/abc", nil)
		require.Equal(t, 400, w.Code)
	})
}

func TestApi_metrics(t *testing.T) {
	s := newTestServer(t, false)
	w := s.do("POST", "/simulate", concreteRequest())
	require.Equal(t, 200, w.Code)

	w = s.do("GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `recallvantage_simulation_runs_total{mode="run",status="complete"} 1`)
}

func Test_errorStatus(t *testing.T) {
	require.Equal(t, 400, errorStatus(domain.NewInvalidParameterError("x", "bad")))
	require.Equal(t, 400, errorStatus(fmt.Errorf("wrapped: %w", domain.NewInvalidParameterError("x", "bad"))))
	require.Equal(t, 422, errorStatus(domain.ResourceLimitError{Field: "x", Requested: 2, Ceiling: 1}))
	require.Equal(t, 404, errorStatus(fmt.Errorf("model: %w", domain.ErrNotFound)))
	require.Equal(t, 500, errorStatus(errors.New("boom")))
}
