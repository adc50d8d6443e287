package api

import (
	"recallvantage/internal/repository"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) getStats(c *gin.Context) {
	if m.Db == nil {
		returnErrorJsonCode(errNoDatabase, c, 503)
		return
	}

	stats, err := repository.GetUsageStats(m.Db)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, stats)
}
