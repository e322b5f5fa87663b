package api

import (
	"context"
	"log"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"freelance-admin-service/internal/admin/services"
)

type MaterializeHandler struct {
	Materializer *services.MaterializerService
}

func NewMaterializeHandler(materializer *services.MaterializerService) *MaterializeHandler {
	return &MaterializeHandler{Materializer: materializer}
}

type MaterializeRequest struct {
	Org string `json:"org"`
}

// TriggerMaterialize runs the recurrence materializer on demand,
// optionally scoped to one organization. The body is optional.
func (h *MaterializeHandler) TriggerMaterialize(ctx context.Context, c *app.RequestContext) {
	var req MaterializeRequest
	if len(c.Request.Body()) > 0 {
		if err := c.Bind(&req); err != nil {
			c.JSON(http.StatusBadRequest, utils.H{"error": "Invalid request payload: " + err.Error()})
			return
		}
	}

	created, err := h.Materializer.Run(ctx, req.Org)
	if err != nil {
		log.Printf("Materialize trigger failed (org filter: %q): %v", req.Org, err)
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, utils.H{"created": created})
}
