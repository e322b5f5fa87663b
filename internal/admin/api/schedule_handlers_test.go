package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/stretchr/testify/assert"

	adminDB "freelance-admin-service/internal/admin/db"
)

func TestGetWeek_BucketsTasksByDay(t *testing.T) {
	dbFilePath := testDBFile("test_api_week_")
	router, gormDB := setupTestAppWithRoutes(t, dbFilePath)
	defer teardownTestDBFromRouter(gormDB, t, dbFilePath)

	// Week of Monday 2024-01-15.
	monday := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.Local)
	wednesday := monday.AddDate(0, 0, 2)
	nextMonday := monday.AddDate(0, 0, 7)
	gormDB.Create(&adminDB.Task{OrgID: "org-w", Title: "Monday task", Status: "todo", DueDate: &monday})
	gormDB.Create(&adminDB.Task{OrgID: "org-w", Title: "Wednesday task", Status: "todo", DueDate: &wednesday})
	gormDB.Create(&adminDB.Task{OrgID: "org-w", Title: "Next week task", Status: "todo", DueDate: &nextMonday})

	// Any date inside the week resolves to the same Monday-start week.
	w := ut.PerformRequest(router, "GET", "/orgs/org-w/schedule/week?date=2024-01-17", nil)
	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	var view WeekViewResponse
	assert.NoError(t, json.Unmarshal(resp.Body(), &view))
	assert.Equal(t, "2024-01-15", view.Start)
	assert.Equal(t, "2024-01-22", view.End)
	assert.Len(t, view.Days, 7)

	assert.Equal(t, "2024-01-15", view.Days[0].Date)
	assert.Len(t, view.Days[0].Tasks, 1)
	assert.Equal(t, "Monday task", view.Days[0].Tasks[0].Title)

	assert.Len(t, view.Days[2].Tasks, 1)
	assert.Equal(t, "Wednesday task", view.Days[2].Tasks[0].Title)

	// Days without tasks are present and empty; next week's task is
	// outside the window.
	assert.Empty(t, view.Days[1].Tasks)
	assert.Empty(t, view.Days[6].Tasks)
}

func TestGetWeek_RejectsMalformedDate(t *testing.T) {
	dbFilePath := testDBFile("test_api_week_baddate_")
	router, gormDB := setupTestAppWithRoutes(t, dbFilePath)
	defer teardownTestDBFromRouter(gormDB, t, dbFilePath)

	w := ut.PerformRequest(router, "GET", "/orgs/org-w/schedule/week?date=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode())
}
