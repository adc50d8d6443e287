package api

import (
	"fmt"
	"recallvantage/internal/domain"
	"recallvantage/internal/service"
	"time"

	"github.com/gin-gonic/gin"
)

type calibrateRequest struct {
	Symbol            string                `json:"symbol"`
	ScenarioModelName string                `json:"scenarioModelName"`
	ScenarioModel     *domain.ScenarioModel `json:"scenarioModel"`
	LookbackDays      int                   `json:"lookbackDays"`
	HorizonDays       int                   `json:"horizonDays"`
}

func (m ApiHandler) calibrate(c *gin.Context) {
	var requestBody calibrateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}

	var model domain.ScenarioModel
	if requestBody.ScenarioModel != nil {
		model = *requestBody.ScenarioModel
	} else {
		found, err := m.ScenarioModelService.Get(requestBody.ScenarioModelName)
		if err != nil {
			returnErrorJson(err, c)
			return
		}
		model = *found
	}

	lookback := service.DefaultCalibrationLookback
	if requestBody.LookbackDays != 0 {
		lookback = time.Duration(requestBody.LookbackDays) * 24 * time.Hour
	}
	horizon := service.DefaultCalibrationHorizon
	if requestBody.HorizonDays != 0 {
		horizon = requestBody.HorizonDays
	}

	result, err := m.CalibrationService.Calibrate(c.Request.Context(), model, requestBody.Symbol, lookback, horizon)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, result)
}
