package api

import (
	"fmt"
	"recallvantage/internal/domain"

	"github.com/gin-gonic/gin"
)

type scenarioModelResponse struct {
	domain.ScenarioModel
	Preset         bool    `json:"preset"`
	ExpectedImpact float64 `json:"expectedImpact"`
}

func isPreset(name string) bool {
	for _, p := range domain.PresetScenarioModels() {
		if p.Name == name {
			return true
		}
	}
	return false
}

func (m ApiHandler) getScenarioModels(c *gin.Context) {
	models, err := m.ScenarioModelService.List()
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	out := []scenarioModelResponse{}
	for _, model := range models {
		out = append(out, scenarioModelResponse{
			ScenarioModel:  model,
			Preset:         isPreset(model.Name),
			ExpectedImpact: model.ExpectedImpact(),
		})
	}

	c.JSON(200, out)
}

func (m ApiHandler) saveScenarioModel(c *gin.Context) {
	var requestBody domain.ScenarioModel
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	if m.Db == nil {
		returnErrorJsonCode(errNoDatabase, c, 503)
		return
	}

	saved, err := m.ScenarioModelService.Save(requestBody)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, scenarioModelResponse{
		ScenarioModel:  *saved,
		ExpectedImpact: saved.ExpectedImpact(),
	})
}
