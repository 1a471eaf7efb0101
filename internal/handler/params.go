package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/spycat-agency/service-mission/internal/common/response"
)

// parseID reads the :id path parameter. On failure it writes a 400 and
// returns false.
func parseID(c *gin.Context, entity string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid "+entity+" ID")
		return 0, false
	}
	return id, true
}

// parsePositiveID is parseID for routes that reject IDs below 1 up front.
func parsePositiveID(c *gin.Context, entity, label string) (int64, bool) {
	id, ok := parseID(c, entity)
	if !ok {
		return 0, false
	}
	if id <= 0 {
		response.BadRequest(c, label+" ID must be positive")
		return 0, false
	}
	return id, true
}
