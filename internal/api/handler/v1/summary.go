package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hidori-app/hidori-api/internal/api/handler/v1/response"
	"github.com/hidori-app/hidori-api/internal/domain"
	"github.com/hidori-app/hidori-api/internal/service"
)

type SummaryService interface {
	Summarize(ctx context.Context, eventID string) (domain.EventSummary, error)
}

type SummaryHandler struct {
	svc SummaryService
}

func NewSummaryHandler(svc SummaryService) *SummaryHandler {
	return &SummaryHandler{
		svc: svc,
	}
}

// HandleGetSummary godoc
// @Summary      Aggregate an event's responses
// @Description  Per-slot availability counts, ranked best slots and per-grade breakdowns, recomputed on every call.
// @Tags         summary
// @Produce      json
// @Param        eventID  path      string  true  "event ID"
// @Success      200      {object}  domain.EventSummary
// @Failure      404      {object}  response.Err
// @Failure      429      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/summary [get]
func (h *SummaryHandler) HandleGetSummary(ctx *gin.Context) {
	eventID := ctx.Param("eventID")

	summary, err := h.svc.Summarize(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetSummary -> h.svc.Summarize -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, summary)
}
