package controllers

import (
	"Backend-UniClub/src/middleware"
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/services/users"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UserController struct {
	users  *users.Service
	logger *zap.Logger
}

func NewUserController(s *users.Service, logger *zap.Logger) *UserController {
	return &UserController{users: s, logger: logger}
}

// GetDashboard godoc
// @Summary      Member dashboard
// @Description  Creates the member record on first visit.
// @Tags         user
// @Produce      json
// @Success      200  {object}  models.Dashboard
// @Failure      401  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/user/dashboard [get]
func (h *UserController) Dashboard(c *fiber.Ctx) error {
	d, err := h.users.Dashboard(c.UserContext(), middleware.SessionFrom(c).Identity())
	if err != nil {
		return respondError(c, h.logger, err, "load dashboard")
	}
	return c.JSON(d)
}

// SyncUser godoc
// @Summary      Save the member profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Param        body body models.SyncUserRequest true "Profile"
// @Success      200  {object}  models.User
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      409  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/user/sync [post]
func (h *UserController) Sync(c *fiber.Ctx) error {
	var req models.SyncUserRequest
	if err := parseJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "parse sync body")
	}
	u, err := h.users.Sync(c.UserContext(), middleware.SessionFrom(c).Identity(), &req)
	if err != nil {
		return respondError(c, h.logger, err, "sync user")
	}
	return c.JSON(u)
}
