package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"gorm.io/gorm"

	adminDB "freelance-admin-service/internal/admin/db"
)

const calendarContentType = "text/calendar; charset=utf-8"

type CalendarHandler struct {
	DB *gorm.DB
}

func NewCalendarHandler(db *gorm.DB) *CalendarHandler {
	return &CalendarHandler{DB: db}
}

// ExportICS renders every dated task of an organization as one VEVENT,
// ordered by due date. Recurrence is not expanded here: only rows the
// materializer has already written appear in the feed.
func (h *CalendarHandler) ExportICS(ctx context.Context, c *app.RequestContext) {
	org := c.Query("org")
	if org == "" {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Missing required query parameter: org"})
		return
	}

	var tasks []adminDB.Task
	result := h.DB.Where("org_id = ?", org).
		Where("due_date IS NOT NULL").
		Order("due_date asc").
		Find(&tasks)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to fetch tasks for export: " + result.Error.Error()})
		return
	}

	now := time.Now()
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//freelance-admin-service//Task Calendar//EN")

	for _, task := range tasks {
		uid := fmt.Sprintf("task-%d@%s", task.ID, org)
		event := cal.AddEvent(uid)
		event.SetDtStampTime(now)
		event.SetSummary(task.Title)
		if task.Description != "" {
			event.SetDescription(task.Description)
		}
		due := *task.DueDate
		event.SetAllDayStartAt(due)
		event.SetAllDayEndAt(due.AddDate(0, 0, 1))
	}

	c.Data(http.StatusOK, calendarContentType, []byte(cal.Serialize()))
}
