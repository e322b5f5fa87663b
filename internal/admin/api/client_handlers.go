package api

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"gorm.io/gorm"

	adminDB "freelance-admin-service/internal/admin/db"
)

type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler {
	return &ClientHandler{DB: db}
}

type CreateClientRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Status  string `json:"status"`
	Notes   string `json:"notes"`
}

type UpdateClientRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Company *string `json:"company"`
	Phone   *string `json:"phone"`
	Status  *string `json:"status"`
	Notes   *string `json:"notes"`
}

func (h *ClientHandler) CreateClient(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	var req CreateClientRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	status := req.Status
	if status == "" {
		status = "active"
	}
	client := adminDB.Client{
		OrgID:   org,
		Name:    req.Name,
		Email:   req.Email,
		Company: req.Company,
		Phone:   req.Phone,
		Status:  status,
		Notes:   req.Notes,
	}
	if result := h.DB.Create(&client); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to create client: " + result.Error.Error()})
		return
	}
	c.JSON(http.StatusCreated, client)
}

// GetClients lists an organization's clients. The Leads page is this
// endpoint with ?status=lead.
func (h *ClientHandler) GetClients(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	var clients []adminDB.Client
	query := h.DB.Where("org_id = ?", org)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if result := query.Order("name asc").Find(&clients); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to fetch clients: " + result.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *ClientHandler) GetClientByID(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var client adminDB.Client
	if result := h.DB.Where("org_id = ?", org).First(&client, id); result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, utils.H{"error": "Client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to fetch client: " + result.Error.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) UpdateClient(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateClientRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	var client adminDB.Client
	if result := h.DB.Where("org_id = ?", org).First(&client, id); result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, utils.H{"error": "Client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to find client: " + result.Error.Error()})
		}
		return
	}
	updateData := make(map[string]interface{})
	if req.Name != nil {
		updateData["name"] = *req.Name
	}
	if req.Email != nil {
		updateData["email"] = *req.Email
	}
	if req.Company != nil {
		updateData["company"] = *req.Company
	}
	if req.Phone != nil {
		updateData["phone"] = *req.Phone
	}
	if req.Status != nil {
		updateData["status"] = *req.Status
	}
	if req.Notes != nil {
		updateData["notes"] = *req.Notes
	}
	if len(updateData) == 0 {
		c.JSON(http.StatusBadRequest, utils.H{"error": "No update fields provided"})
		return
	}
	if result := h.DB.Model(&client).Updates(updateData); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to update client: " + result.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) DeleteClient(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var client adminDB.Client
	if result := h.DB.Where("org_id = ?", org).First(&client, id); result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, utils.H{"error": "Client not found to delete"})
		} else {
			c.JSON(http.StatusInternalServerError, utils.H{"error": "Error finding client to delete: " + result.Error.Error()})
		}
		return
	}
	if result := h.DB.Delete(&client); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to delete client: " + result.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, utils.H{"message": "Client deleted successfully"})
}
