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
)

type InvoiceHandler struct {
	DB       *gorm.DB
	Producer *kafka.Writer
}

func NewInvoiceHandler(db *gorm.DB, producer *kafka.Writer) *InvoiceHandler {
	return &InvoiceHandler{DB: db, Producer: producer}
}

type InvoiceItemRequest struct {
	Description string  `json:"description" validate:"required"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

type CreateInvoiceRequest struct {
	ClientID  uint                 `json:"client_id" validate:"required"`
	Number    string               `json:"number" validate:"required"`
	Status    string               `json:"status"`
	IssueDate string               `json:"issue_date"` // YYYY-MM-DD
	DueDate   string               `json:"due_date"`   // YYYY-MM-DD
	Currency  string               `json:"currency"`
	Notes     string               `json:"notes"`
	Items     []InvoiceItemRequest `json:"items"`
}

type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func buildItems(reqs []InvoiceItemRequest) ([]adminDB.InvoiceItem, float64) {
	items := make([]adminDB.InvoiceItem, 0, len(reqs))
	total := 0.0
	for _, item := range reqs {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		amount := qty * item.UnitPrice
		total += amount
		items = append(items, adminDB.InvoiceItem{
			Description: item.Description,
			Quantity:    qty,
			UnitPrice:   item.UnitPrice,
			Amount:      amount,
		})
	}
	return items, total
}

func (h *InvoiceHandler) CreateInvoice(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	var req CreateInvoiceRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request payload: " + err.Error()})
		return
	}

	var client adminDB.Client
	if err := h.DB.Where("org_id = ?", org).First(&client, req.ClientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, utils.H{"error": "Client not found"})
		} else {
			c.JSON(http.StatusInternalServerError, utils.H{"error": "Error verifying client: " + err.Error()})
		}
		return
	}

	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid issue_date, expected YYYY-MM-DD"})
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid due_date, expected YYYY-MM-DD"})
		return
	}

	status := req.Status
	if status == "" {
		status = "draft"
	}
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}
	items, total := buildItems(req.Items)

	invoice := adminDB.Invoice{
		OrgID:     org,
		ClientID:  req.ClientID,
		Number:    req.Number,
		Status:    status,
		IssueDate: issueDate,
		DueDate:   dueDate,
		Currency:  currency,
		Total:     total,
		Notes:     req.Notes,
		Items:     items,
	}
	if result := h.DB.Create(&invoice); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to create invoice: " + result.Error.Error()})
		return
	}

	adminKafka.PublishEntityEvent(ctx, h.Producer, org, "invoice.created", invoice.ID, invoice.Number)
	c.JSON(http.StatusCreated, invoice)
}

func (h *InvoiceHandler) GetInvoices(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	var invoices []adminDB.Invoice
	query := h.DB.Where("org_id = ?", org).Preload("Items")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if result := query.Order("due_date asc").Find(&invoices); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to fetch invoices: " + result.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *InvoiceHandler) GetInvoiceByID(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var invoice adminDB.Invoice
	if result := h.DB.Where("org_id = ?", org).Preload("Items").First(&invoice, id); result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, utils.H{"error": "Invoice not found"})
		} else {
			c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to fetch invoice: " + result.Error.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) UpdateInvoiceStatus(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req UpdateInvoiceStatusRequest
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request payload: " + err.Error()})
		return
	}
	switch req.Status {
	case "draft", "sent", "paid", "overdue":
	default:
		c.JSON(http.StatusBadRequest, utils.H{"error": "Unsupported invoice status: " + req.Status})
		return
	}
	var invoice adminDB.Invoice
	if result := h.DB.Where("org_id = ?", org).First(&invoice, id); result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, utils.H{"error": "Invoice not found"})
		} else {
			c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to find invoice: " + result.Error.Error()})
		}
		return
	}
	if result := h.DB.Model(&invoice).Update("status", req.Status); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to update invoice status: " + result.Error.Error()})
		return
	}

	adminKafka.PublishEntityEvent(ctx, h.Producer, org, "invoice.status_changed", invoice.ID, req.Status)
	c.JSON(http.StatusOK, invoice)
}

func (h *InvoiceHandler) DeleteInvoice(ctx context.Context, c *app.RequestContext) {
	org, ok := orgParam(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var invoice adminDB.Invoice
	if result := h.DB.Where("org_id = ?", org).First(&invoice, id); result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, utils.H{"error": "Invoice not found to delete"})
		} else {
			c.JSON(http.StatusInternalServerError, utils.H{"error": "Error finding invoice to delete: " + result.Error.Error()})
		}
		return
	}
	if result := h.DB.Select("Items").Delete(&invoice); result.Error != nil {
		c.JSON(http.StatusInternalServerError, utils.H{"error": "Failed to delete invoice: " + result.Error.Error()})
		return
	}
	c.JSON(http.StatusOK, utils.H{"message": "Invoice deleted successfully"})
}
