package api

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/segmentio/kafka-go"
	"gorm.io/gorm"

	adminDB "freelance-admin-service/internal/admin/db"
	adminKafka "freelance-admin-service/internal/admin/kafka"
	"freelance-admin-service/internal/admin/recurrence"
)

type TaskHandler struct {
	DB       *gorm.DB
	Producer *kafka.Writer
}

func NewTaskHandler(db *gorm.DB, producer *kafka.Writer) *TaskHandler {
	return &TaskHandler{DB: db, Producer: producer}
}

type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	ClientID    *uint  `json:"client_id"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Position    int    `json:"position"`
	DueDate     string `json:"due_date"` // YYYY-MM-DD

	RecurRule     string `json:"recur_rule"` // "", weekly, monthly
	RecurInterval int    `json:"recur_interval"`
	RecurCount    int    `json:"recur_count"`
	RecurUntil    string `json:"recur_until"` // YYYY-MM-DD
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ClientID    *uint   `json:"client_id"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	Position    *int    `json:"position"`
	DueDate     *string `json:"due_date"` // YYYY-MM-DD, "" clears

	RecurRule     *string `json:"recur_rule"`
	RecurInterval *int    `json:"recur_interval"`
	RecurCount    *int    `json:"recur_count"`
	RecurUntil    *string `json:"recur_until"` // YYYY-MM-DD, "" clears
}

func validRecurRule(rule string) bool {
	return rule == "" || rule == recurrence.RuleWeekly || rule == recurrence.RuleMonthly
}

func (h *TaskHandler) CreateTask(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	var req CreateTaskRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	if !validRecurRule(req.RecurRule) {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Unsupported recurrence rule: " + req.RecurRule})
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid due_date, expected YYYY-MM-DD"})
		return
	}
	recurUntil, err := parseDate(req.RecurUntil)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid recur_until, expected YYYY-MM-DD"})
		return
	}

	status := req.Status
	if status == "" {
		status = "todo"
	}
	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	task := adminDB.Task{
		OrgID:         org,
		ClientID:      req.ClientID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        status,
		Priority:      priority,
		Position:      req.Position,
		DueDate:       dueDate,
		RecurRule:     req.RecurRule,
		RecurInterval: req.RecurInterval,
		RecurCount:    req.RecurCount,
		RecurUntil:    recurUntil,
	}
	if result := h.DB.Create(&task); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to create task: " + result.Error.Error()})
		return
	}

	adminKafka.PublishEntityEvent(ctx, h.Producer, org, "task.created", task.ID, task.Title)
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) GetTasks(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	var tasks []adminDB.Task
	query := h.DB.Where("org_id = ?", org)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}
	if result := query.Order("position asc, due_date asc").Find(&tasks); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to fetch tasks: " + result.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) GetTaskByID(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var task adminDB.Task
	if result := h.DB.Where("org_id = ?", org).First(&task, id); result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, utils.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to fetch task: " + result.Error.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateTaskRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	var task adminDB.Task
	if result := h.DB.Where("org_id = ?", org).First(&task, id); result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, utils.H{"error": "Task not found"})
		} else {
			c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to find task: " + result.Error.Error()})
		}
		return
	}

	updateData := make(map[string]interface{})
	if req.Title != nil {
		updateData["title"] = *req.Title
	}
	if req.Description != nil {
		updateData["description"] = *req.Description
	}
	if req.ClientID != nil {
		updateData["client_id"] = *req.ClientID
	}
	if req.Status != nil {
		updateData["status"] = *req.Status
	}
	if req.Priority != nil {
		updateData["priority"] = *req.Priority
	}
	if req.Position != nil {
		updateData["position"] = *req.Position
	}
	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid due_date, expected YYYY-MM-DD"})
			return
		}
		updateData["due_date"] = due
	}
	if req.RecurRule != nil {
		if !validRecurRule(*req.RecurRule) {
			c.JSON(http.StatusBadRequest, utils.H{"error": "Unsupported recurrence rule: " + *req.RecurRule})
			return
		}
		updateData["recur_rule"] = *req.RecurRule
	}
	if req.RecurInterval != nil {
		updateData["recur_interval"] = *req.RecurInterval
	}
	if req.RecurCount != nil {
		updateData["recur_count"] = *req.RecurCount
	}
	if req.RecurUntil != nil {
		until, err := parseDate(*req.RecurUntil)
		if err != nil {
			c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid recur_until, expected YYYY-MM-DD"})
			return
		}
		updateData["recur_until"] = until
	}
	if len(updateData) == 0 {
		c.JSON(http.StatusBadRequest, utils.H{"error": "No update fields provided"})
		return
	}
	if result := h.DB.Model(&task).Updates(updateData); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to update task: " + result.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var task adminDB.Task
	if result := h.DB.Where("org_id = ?", org).First(&task, id); result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, utils.H{"error": "Task not found to delete"})
		} else {
			c.JSON(http.StatusInternalServerError, utils.H{"error": "Error finding task to delete: " + result.Error.Error()})
		}
		return
	}
	if result := h.DB.Delete(&task); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to delete task: " + result.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, utils.H{"message": "Task deleted successfully"})
}
