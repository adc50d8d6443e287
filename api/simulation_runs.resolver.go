package api

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getSimulationRun accepts either the ledger id or a run id. run ids
// of seeded runs are reproducible, the latest save wins
func (m ApiHandler) getSimulationRun(c *gin.Context) {
	if m.LedgerService == nil {
		returnErrorJsonCode(errNoDatabase, c, 503)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		returnErrorJsonCode(fmt.Errorf("invalid simulation run id: %w", err), c, 400)
		return
	}

	ctx := c.Request.Context()
	entry, err := m.LedgerService.Get(ctx, id)
	if err != nil && errorStatus(err) == 404 {
		entry, err = m.LedgerService.GetByRunID(ctx, id)
	}
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, entry)
}

func (m ApiHandler) listSimulationRuns(c *gin.Context) {
	if m.LedgerService == nil {
		returnErrorJsonCode(errNoDatabase, c, 503)
		return
	}

	var symbol *string
	if s := strings.ToUpper(strings.TrimSpace(c.Query("symbol"))); s != "" {
		symbol = &s
	}
	limit := 0
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			returnErrorJsonCode(fmt.Errorf("invalid limit: %w", err), c, 400)
			return
		}
		limit = parsed
	}

	entries, err := m.LedgerService.List(c.Request.Context(), symbol, limit)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, entries)
}
