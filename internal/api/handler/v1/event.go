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

type EventService interface {
	CreateEvent(ctx context.Context, event domain.Event, password string) (domain.Event, error)
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	DeleteEvent(ctx context.Context, id string) error
	IssueAccessToken(ctx context.Context, eventID, password string) (string, error)
}

type ParticipantLister interface {
	ListParticipants(ctx context.Context, eventID string) ([]domain.Participant, error)
}

type AccessGate interface {
	Authorize(ctx context.Context, event domain.Event, req service.AccessRequest) error
}

type EventHandler struct {
	svc          EventService
	participants ParticipantLister
	gate         AccessGate
}

func NewEventHandler(svc EventService, participants ParticipantLister, gate AccessGate) *EventHandler {
	return &EventHandler{
		svc:          svc,
		participants: participants,
		gate:         gate,
	}
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest  true  "event configuration"
// @Success      201      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      429      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events [post]
func (h *EventHandler) HandleCreateEvent(ctx *gin.Context) {
	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), req.ToDomain(), req.Password)
	if err != nil {
		if isConfigError(err) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleGetEvent godoc
// @Summary      Get an event with its responses
// @Tags         events
// @Produce      json
// @Param        eventID  path      string  true  "event ID"
// @Success      200      {object}  response.EventDetail
// @Failure      404      {object}  response.Err
// @Failure      429      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [get]
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	eventID := ctx.Param("eventID")

	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	participants, err := h.participants.ListParticipants(ctx.Request.Context(), eventID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvent -> h.participants.ListParticipants -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.EventDetail{
		Event:            event,
		RequiresPassword: event.RequiresPassword(),
		Participants:     participants,
	})
}

// HandleUpdateEvent godoc
// @Summary      Update an event's configuration
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      string                      true  "event ID"
// @Param        request  body      request.UpdateEventRequest  true  "event configuration"
// @Success      200      {object}  domain.Event
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      429      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [put]
// @Security BearerAuth
func (h *EventHandler) HandleUpdateEvent(ctx *gin.Context) {
	eventID := ctx.Param("eventID")

	var req request.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, ok := h.authorizedEvent(ctx, eventID, req.EventPassword)
	if !ok {
		return
	}

	updated := req.ToDomain()
	updated.ID = event.ID

	saved, err := h.svc.UpdateEvent(ctx.Request.Context(), updated)
	if err != nil {
		if isConfigError(err) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateEvent -> h.svc.UpdateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, saved)
}

// HandleDeleteEvent godoc
// @Summary      Delete an event and all its responses
// @Tags         events
// @Produce      json
// @Param        eventID  path      string  true  "event ID"
// @Success      200      {object}  response.IDResponse
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      429      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID} [delete]
// @Security BearerAuth
func (h *EventHandler) HandleDeleteEvent(ctx *gin.Context) {
	eventID := ctx.Param("eventID")

	if _, ok := h.authorizedEvent(ctx, eventID, ""); !ok {
		return
	}

	if err := h.svc.DeleteEvent(ctx.Request.Context(), eventID); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteEvent -> h.svc.DeleteEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.IDResponse{ID: eventID})
}

// HandleIssueToken godoc
// @Summary      Exchange the event password for a bearer token
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        eventID  path      string                     true  "event ID"
// @Param        request  body      request.IssueTokenRequest  true  "event password"
// @Success      200      {object}  response.TokenResponse
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      429      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /events/{eventID}/token [post]
func (h *EventHandler) HandleIssueToken(ctx *gin.Context) {
	eventID := ctx.Param("eventID")

	var req request.IssueTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	token, err := h.svc.IssueAccessToken(ctx.Request.Context(), eventID, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrWrongPassword):
			response.RenderErr(ctx, response.ErrUnauthorized())
		default:
			err = fmt.Errorf("v1.HandleIssueToken -> h.svc.IssueAccessToken -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, response.TokenResponse{Token: token})
}

// authorizedEvent loads the event and runs the access gate over the
// request's credential material. Renders 404/401/500 itself.
func (h *EventHandler) authorizedEvent(ctx *gin.Context, eventID, bodyPassword string) (domain.Event, bool) {
	event, err := h.svc.GetEvent(ctx.Request.Context(), eventID)
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return domain.Event{}, false
		}

		err = fmt.Errorf("v1.authorizedEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return domain.Event{}, false
	}

	if err := h.gate.Authorize(ctx.Request.Context(), event, accessRequest(ctx, bodyPassword)); err != nil {
		response.RenderErr(ctx, response.ErrUnauthorized())
		return domain.Event{}, false
	}

	return event, true
}

func isConfigError(err error) bool {
	return errors.Is(err, service.ErrNoAvailableType) ||
		errors.Is(err, service.ErrDuplicateTypeID) ||
		errors.Is(err, service.ErrMissingAxes) ||
		errors.Is(err, service.ErrMissingDateTimes) ||
		errors.Is(err, service.ErrUnknownGradeOrder)
}
