package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/clubhub-api/internal/core/domain"
	"github.com/clubhub/clubhub-api/internal/core/ports"
)

// EventHandler handles HTTP requests for event operations.
type EventHandler struct {
	service ports.EventService
}

func NewEventHandler(service ports.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// List handles GET /events.
//
// @Summary      List events by start time
// @Tags         events
// @Produce      json
// @Param        clubId    query     int   false  "Only events of this club"
// @Param        upcoming  query     bool  false  "Only events that have not started (default true)"
// @Success      200       {array}   domain.Event
// @Failure      400       {object}  errorResponse
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
	in := ports.ListEventsInput{Upcoming: true}

	if raw := c.QueryParam("clubId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return domain.InvalidInput("clubId must be a positive integer")
		}
		in.ClubID = id
	}
	if raw := c.QueryParam("upcoming"); raw != "" {
		upcoming, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.InvalidInput("upcoming must be true or false")
		}
		in.Upcoming = upcoming
	}

	events, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /events/:id.
//
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path      int  true  "Event id"
// @Success      200  {object}  domain.Event
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	event, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, event)
}

// Create handles POST /events. Business accounts may only add events to
// their own clubs.
//
// @Summary      Create an event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string              false  "Replays the event created earlier with the same key"
// @Param        body             body      createEventRequest  true   "Event details"
// @Success      201              {object}  domain.Event
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	actor, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req createEventRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return domain.InvalidInput(err.Error())
	}

	event, err := h.service.Create(c.Request().Context(), actor, ports.CreateEventInput{
		ClubID:         req.ClubID,
		Title:          strings.TrimSpace(req.Title),
		Description:    strings.TrimSpace(req.Description),
		StartsAt:       req.StartsAt.UTC(),
		EndsAt:         req.EndsAt.UTC(),
		Status:         domain.EventStatus(req.Status),
		IdempotencyKey: idempotencyKey(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}
