package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hidori-app/hidori-api/internal/api/handler/v1/request"
	"github.com/hidori-app/hidori-api/internal/api/handler/v1/response"
	"github.com/hidori-app/hidori-api/internal/domain"
	"github.com/hidori-app/hidori-api/internal/service"
)

type ParticipantService interface {
	CreateParticipant(ctx context.Context, event domain.Event, participant domain.Participant) (domain.Participant, error)
	UpdateParticipant(ctx context.Context, event domain.Event, participantID, editToken string, participant domain.Participant) (domain.Participant, error)
	DeleteParticipant(ctx context.Context, event domain.Event, participantID, editToken string) error
}

type ParticipantHandler struct {
	svc    ParticipantService
	events EventService
	gate   AccessGate
}

func NewParticipantHandler(svc ParticipantService, events EventService, gate AccessGate) *ParticipantHandler {
	return &ParticipantHandler{
		svc:    svc,
		events: events,
		gate:   gate,
	}
}

// HandleCreateParticipant godoc
// @Summary      Submit a response to an event
// @Description  For password-protected events the reply carries an edit token, returned exactly once.
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        eventID  path      string                          true  "event ID"
// @Param        request  body      request.SaveParticipantRequest  true  "response"
// @Success      201      {object}  response.ParticipantCreated
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      429      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/participants [post]
// @Security BearerAuth
func (h *ParticipantHandler) HandleCreateParticipant(ctx *gin.Context) {
	event, req, ok := h.gatedRequest(ctx)
	if !ok {
		return
	}

	created, err := h.svc.CreateParticipant(ctx.Request.Context(), event, req.ToDomain())
	if err != nil {
		if isResponseError(err) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateParticipant -> h.svc.CreateParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.ParticipantCreated{
		Participant: created,
		EditToken:   created.EditToken,
	})
}

// HandleUpdateParticipant godoc
// @Summary      Update a response
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        eventID        path      string                          true  "event ID"
// @Param        participantID  path      string                          true  "participant ID"
// @Param        X-Edit-Token   header    string                          false "edit token"
// @Param        request        body      request.SaveParticipantRequest  true  "response"
// @Success      200            {object}  domain.Participant
// @Failure      400            {object}  response.Err
// @Failure      401            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      429            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /events/{eventID}/participants/{participantID} [put]
// @Security BearerAuth
func (h *ParticipantHandler) HandleUpdateParticipant(ctx *gin.Context) {
	event, req, ok := h.gatedRequest(ctx)
	if !ok {
		return
	}

	participantID := ctx.Param("participantID")
	updated, err := h.svc.UpdateParticipant(ctx.Request.Context(), event, participantID, editToken(ctx), req.ToDomain())
	if err != nil {
		h.renderEditError(ctx, participantID, err, "HandleUpdateParticipant")
		return
	}

	ctx.JSON(http.StatusOK, updated)
}

// HandleDeleteParticipant godoc
// @Summary      Delete a response
// @Tags         participants
// @Produce      json
// @Param        eventID        path      string  true  "event ID"
// @Param        participantID  path      string  true  "participant ID"
// @Param        X-Edit-Token   header    string  false "edit token"
// @Success      200            {object}  response.IDResponse
// @Failure      401            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      429            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /events/{eventID}/participants/{participantID} [delete]
// @Security BearerAuth
func (h *ParticipantHandler) HandleDeleteParticipant(ctx *gin.Context) {
	eventID := ctx.Param("eventID")
	participantID := ctx.Param("participantID")

	event, err := h.events.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteParticipant -> h.events.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	if err := h.gate.Authorize(ctx.Request.Context(), event, accessRequest(ctx, "")); err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return
	}

	if err := h.svc.DeleteParticipant(ctx.Request.Context(), event, participantID, editToken(ctx)); err != nil {
		h.renderEditError(ctx, participantID, err, "HandleDeleteParticipant")
		return
	}

	ctx.JSON(http.StatusOK, response.IDResponse{ID: participantID})
}

// gatedRequest binds the body, loads the event and runs the gate.
// Renders its own errors; ok=false means the response is written.
func (h *ParticipantHandler) gatedRequest(ctx *gin.Context) (domain.Event, request.SaveParticipantRequest, bool) {
	eventID := ctx.Param("eventID")

	var req request.SaveParticipantRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.Event{}, req, false
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return domain.Event{}, req, false
	}

	event, err := h.events.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return domain.Event{}, req, false
		}

		err = fmt.Errorf("v1.gatedRequest -> h.events.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return domain.Event{}, req, false
	}

	if err := h.gate.Authorize(ctx.Request.Context(), event, accessRequest(ctx, req.EventPassword)); err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return domain.Event{}, req, false
	}

	return event, req, true
}

func (h *ParticipantHandler) renderEditError(ctx *gin.Context, participantID string, err error, op string) {
	switch {
	case errors.Is(err, service.ErrParticipantNotFound):
		response.RenderErr(ctx, response.ErrNotFound("participant", "ID", participantID))
	case errors.Is(err, service.ErrWrongEditToken):
		response.RenderErr(ctx, response.ErrUnauthorized())
	case isResponseError(err):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	default:
		err = fmt.Errorf("v1.%v -> %w", op, err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
	}
}

func isResponseError(err error) bool {
	return errors.Is(err, service.ErrUnknownGrade) ||
		errors.Is(err, service.ErrUnknownScheduleType) ||
		errors.Is(err, service.ErrUnknownSlot)
}
