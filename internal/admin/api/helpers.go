package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

// parseIDParam parses the :id path parameter. On failure it writes the
// 400 response and returns ok=false.
func parseIDParam(c *app.RequestContext) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}

// orgParam returns the :org path parameter. On a missing value it
// writes the 400 response and returns ok=false.
func orgParam(c *app.RequestContext) (string, bool) {
	org := c.Param("org")
	if org == "" {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Missing organization identifier"})
		return "", false
	}
	return org, true
}

// parseDate parses an optional YYYY-MM-DD value in local time.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
