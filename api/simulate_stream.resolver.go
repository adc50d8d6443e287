package api

import (
	"fmt"
	"recallvantage/internal/logger"

	"github.com/gin-gonic/gin"
)

const (
	sseEvent_Started  = "started"
	sseEvent_Progress = "progress"
	sseEvent_Result   = "result"
	sseEvent_Error    = "error"
)

type streamStartedEvent struct {
	RunID             string `json:"runID"`
	TrialsRequested   int    `json:"trialsRequested"`
	ScenarioModelName string `json:"scenarioModelName"`
}

// simulateStream pushes progress snapshots as server sent events. the
// last event is "result" with the final snapshot. a client hanging up
// cancels the run
func (m ApiHandler) simulateStream(c *gin.Context) {
	var requestBody simulateRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(fmt.Errorf("failed to read request body: %w", err), c, 400)
		return
	}
	if requestBody.Save {
		returnErrorJsonCode(fmt.Errorf("save is not supported on streamed runs"), c, 400)
		return
	}
	if requestBody.Workers > 1 {
		returnErrorJsonCode(fmt.Errorf("streamed runs use a single worker"), c, 400)
		return
	}

	in, err := m.toSimulateInput(requestBody)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	ctx := c.Request.Context()
	out, err := m.SimulationApp.Stream(ctx, *in)
	if err != nil {
		returnErrorJson(err, c)
		return
	}
	stream := out.Stream
	defer stream.Cancel()

	c.SSEvent(sseEvent_Started, streamStartedEvent{
		RunID:             stream.RunID().String(),
		TrialsRequested:   stream.TrialsRequested(),
		ScenarioModelName: out.ModelName,
	})
	c.Writer.Flush()

	for stream.Next() {
		update := stream.Update()
		if update.Final {
			c.SSEvent(sseEvent_Result, update.Snapshot)
		} else {
			c.SSEvent(sseEvent_Progress, update)
		}
		c.Writer.Flush()
	}
	if err := stream.Err(); err != nil {
		logger.FromContext(ctx).Errorf("streamed run %s failed: %s", stream.RunID().String(), err.Error())
		c.SSEvent(sseEvent_Error, map[string]string{"error": err.Error()})
		c.Writer.Flush()
	}
}
