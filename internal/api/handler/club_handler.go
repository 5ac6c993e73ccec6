package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clubhub/clubhub-api/internal/core/domain"
	"github.com/clubhub/clubhub-api/internal/core/ports"
)

// ClubHandler handles HTTP requests for club operations.
type ClubHandler struct {
	service ports.ClubService
}

func NewClubHandler(service ports.ClubService) *ClubHandler {
	return &ClubHandler{service: service}
}

// List handles GET /clubs.
//
// @Summary      List clubs, newest first
// @Tags         clubs
// @Produce      json
// @Success      200  {array}   domain.Club
// @Failure      500  {object}  errorResponse
// @Router       /clubs [get]
func (h *ClubHandler) List(c echo.Context) error {
	clubs, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if clubs == nil {
		clubs = []*domain.Club{}
	}
	return c.JSON(http.StatusOK, clubs)
}

// Get handles GET /clubs/:id.
//
// @Summary      Get a club
// @Tags         clubs
// @Produce      json
// @Param        id   path      int  true  "Club id"
// @Success      200  {object}  domain.Club
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /clubs/{id} [get]
func (h *ClubHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	club, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, club)
}

// Create handles POST /clubs. The caller becomes the owner.
//
// @Summary      Create a club
// @Tags         clubs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        Idempotency-Key  header    string             false  "Replays the club created earlier with the same key"
// @Param        body             body      createClubRequest  true   "Club details"
// @Success      201              {object}  domain.Club
// @Failure      400              {object}  errorResponse
// @Failure      401              {object}  errorResponse
// @Failure      403              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /clubs [post]
func (h *ClubHandler) Create(c echo.Context) error {
	owner, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req createClubRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidPayload
	}
	if err := c.Validate(&req); err != nil {
		return domain.InvalidInput(err.Error())
	}

	club, err := h.service.Create(c.Request().Context(), owner, toCreateClubInput(req, idempotencyKey(c)))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, club)
}
