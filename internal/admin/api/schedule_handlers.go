package api

import (
	"context"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"gorm.io/gorm"

	"freelance-admin-service/internal/admin/dates"
	adminDB "freelance-admin-service/internal/admin/db"
)

type ScheduleHandler struct {
	DB *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{DB: db}
}

type ScheduleDay struct {
	Date  string         `json:"date"`
	Tasks []adminDB.Task `json:"tasks"`
}

type WeekViewResponse struct {
	Start string        `json:"start"`
	End   string        `json:"end"`
	Days  []ScheduleDay `json:"days"`
}

// GetWeek returns the Monday-start week containing the requested date
// (default today), with the organization's tasks bucketed by due date.
func (h *ScheduleHandler) GetWeek(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}

	anchor := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := parseDate(dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid date, expected YYYY-MM-DD"})
			return
		}
		anchor = *parsed
	}
	week := dates.BuildWeek(anchor)

	var tasks []adminDB.Task
	result := h.DB.Where("org_id = ?", org).
		Where("due_date >= ? AND due_date < ?", week.Start, week.End).
		Order("due_date asc, position asc").
		Find(&tasks)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to fetch schedule: " + result.Error.Error()})
		return
	}

	byDay := make(map[string][]adminDB.Task, 7)
	for _, task := range tasks {
		if task.DueDate == nil {
			continue
		}
		key := dates.ToISODate(*task.DueDate)
		byDay[key] = append(byDay[key], task)
	}

	resp := WeekViewResponse{
		Start: dates.ToISODate(week.Start),
		End:   dates.ToISODate(week.End),
		Days:  make([]ScheduleDay, 0, 7),
	}
	for _, day := range week.Days {
		key := dates.ToISODate(day)
		dayTasks := byDay[key]
		if dayTasks == nil {
			dayTasks = []adminDB.Task{}
		}
		resp.Days = append(resp.Days, ScheduleDay{Date: key, Tasks: dayTasks})
	}
	c.JSON(http.StatusOK, resp)
}
