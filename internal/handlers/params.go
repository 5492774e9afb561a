package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/advocate-scheduler/internal/httperr"
	"github.com/BruksfildServices01/advocate-scheduler/internal/middleware"
)

// advocateID is the authenticated user. Routes under /api/me only admit the
// advocate role, so the user id is the advocate id.
func advocateID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}

func bindError(c *gin.Context, err error) {
	httperr.WriteDetails(c, 400, "invalid_request", "Invalid request body.", map[string]any{
		"reason": err.Error(),
	})
}
