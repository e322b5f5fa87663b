package api

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"

	adminDB "freelance-admin-service/internal/admin/db"
)

func TestExportICS_RequiresOrgParameter(t *testing.T) {
	dbFilePath := testDBFile("test_api_ics_noorg_")
	router, gormDB := setupTestAppWithRoutes(t, dbFilePath)
	defer teardownTestDBFromRouter(gormDB, t, dbFilePath)

	w := ut.PerformRequest(router, "GET", "/calendar.ics", nil)
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode())
}

func TestExportICS_RendersDatedTasksOnly(t *testing.T) {
	dbFilePath := testDBFile("test_api_ics_")
	router, gormDB := setupTestAppWithRoutes(t, dbFilePath)
	defer teardownTestDBFromRouter(gormDB, t, dbFilePath)

	due := time.Date(2024, time.July, 8, 0, 0, 0, 0, time.Local)
	gormDB.Create(&adminDB.Task{OrgID: "org-cal", Title: "Dated task", Status: "todo", DueDate: &due})
	gormDB.Create(&adminDB.Task{OrgID: "org-cal", Title: "Undated task", Status: "todo"})
	gormDB.Create(&adminDB.Task{OrgID: "org-other", Title: "Other org task", Status: "todo", DueDate: &due})

	w := ut.PerformRequest(router, "GET", "/calendar.ics?org=org-cal", nil)
	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Header.ContentType()), "text/calendar")

	body := string(resp.Body())
	assert.Contains(t, body, "BEGIN:VCALENDAR")
	assert.Contains(t, body, "SUMMARY:Dated task")
	assert.Contains(t, body, "20240708")
	assert.NotContains(t, body, "Undated task")
	assert.NotContains(t, body, "Other org task")
	// One VEVENT per dated task.
	assert.Equal(t, 1, strings.Count(body, "BEGIN:VEVENT"))
}
