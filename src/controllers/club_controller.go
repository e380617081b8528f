package controllers

import (
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/services/clubs"
	"Backend-UniClub/src/services/stats"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ClubController struct {
	clubs  *clubs.Service
	stats  *stats.Service
	logger *zap.Logger
}

func NewClubController(c *clubs.Service, s *stats.Service, logger *zap.Logger) *ClubController {
	return &ClubController{clubs: c, stats: s, logger: logger}
}

// ListClubs godoc
// @Summary      List clubs
// @Tags         clubs
// @Produce      json
// @Param        lang query string false "en or mn"
// @Success      200  {array}   models.Club
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/admin/clubs [get]
func (h *ClubController) List(c *fiber.Ctx) error {
	list, err := h.clubs.List(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "list clubs")
	}
	return sendList(c, list, models.Club.View)
}

// ClubStats godoc
// @Summary      Activity summary of every club
// @Description  Keyed by university code. score = members + totalEvents*5.
// @Tags         clubs
// @Produce      json
// @Success      200  {object}  map[string]models.ClubStats
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/clubs/stats [get]
func (h *ClubController) Stats(c *fiber.Ctx) error {
	all, err := h.stats.All(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "club stats")
	}
	return c.JSON(all)
}

// GetClub godoc
// @Summary      Activity summary of one club
// @Description  Same tier as /api/clubs/stats plus the next upcoming event.
// @Tags         clubs
// @Produce      json
// @Param        id   path string true "University code"
// @Success      200  {object}  models.ClubDetail
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/clubs/{id} [get]
func (h *ClubController) Get(c *fiber.Ctx) error {
	detail, err := h.stats.Club(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "get club")
	}
	return c.JSON(detail)
}

// CreateClub godoc
// @Summary      Create a club
// @Tags         admin-clubs
// @Accept       multipart/form-data
// @Produce      json
// @Param        clubId  formData string true  "University code"
// @Param        name_en formData string false "English name (one name is required)"
// @Param        name_mn formData string false "Mongolian name"
// @Param        image   formData file   true  "Logo"
// @Success      201  {object}  models.Club
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs [post]
func (h *ClubController) Create(c *fiber.Ctx) error {
	var form models.ClubForm
	image, err := parseAdminForm(c, &form)
	if err != nil {
		return respondError(c, h.logger, err, "parse club form")
	}
	club, err := h.clubs.Create(c.UserContext(), &form, image)
	if err != nil {
		return respondError(c, h.logger, err, "create club")
	}
	return c.Status(fiber.StatusCreated).JSON(club)
}

// UpdateClub godoc
// @Summary      Update a club
// @Tags         admin-clubs
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    formData string true  "Club document ID"
// @Param        image formData file   false "New logo"
// @Success      200  {object}  models.Club
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs [put]
func (h *ClubController) Update(c *fiber.Ctx) error {
	var form models.ClubForm
	image, err := parseAdminForm(c, &form)
	if err != nil {
		return respondError(c, h.logger, err, "parse club form")
	}
	club, err := h.clubs.Update(c.UserContext(), &form, image)
	if err != nil {
		return respondError(c, h.logger, err, "update club")
	}
	return c.JSON(club)
}

// DeleteClub godoc
// @Summary      Delete a club
// @Tags         admin-clubs
// @Produce      json
// @Param        id   query string true "Club document ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/clubs [delete]
func (h *ClubController) Delete(c *fiber.Ctx) error {
	if err := h.clubs.Delete(c.UserContext(), c.Query("id")); err != nil {
		return respondError(c, h.logger, err, "delete club")
	}
	return deleted(c)
}
