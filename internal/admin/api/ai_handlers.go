package api

import (
	"context"
	"log"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"freelance-admin-service/internal/admin/ai"
)

// AIHandler fronts the suggestion endpoints. These always respond 200
// with a best-effort body: a malformed request or a failing upstream
// call degrades to the default shape, never to an error response.
type AIHandler struct {
	Client *ai.Client
}

func NewAIHandler(client *ai.Client) *AIHandler {
	return &AIHandler{Client: client}
}

func (h *AIHandler) SuggestFocus(ctx context.Context, c *app.RequestContext) {
	var focus ai.FocusContext
	if err := c.Bind(&focus); err != nil {
		log.Printf("Focus suggestion request did not bind, using empty context: %v", err)
	}
	c.JSON(http.StatusOK, h.Client.SuggestFocus(ctx, focus))
}

func (h *AIHandler) SuggestInvoiceChaser(ctx context.Context, c *app.RequestContext) {
	var chaser ai.ChaserContext
	if err := c.Bind(&chaser); err != nil {
		log.Printf("Invoice chaser request did not bind, using empty context: %v", err)
	}
	c.JSON(http.StatusOK, h.Client.SuggestChaser(ctx, chaser))
}
