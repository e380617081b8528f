package controllers

import (
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/services/users"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AdminController serves member management and the console overview.
type AdminController struct {
	users  *users.Service
	logger *zap.Logger
}

func NewAdminController(s *users.Service, logger *zap.Logger) *AdminController {
	return &AdminController{users: s, logger: logger}
}

// GetOverview godoc
// @Summary      Admin console overview
// @Tags         admin
// @Produce      json
// @Success      200  {object}  models.AdminOverview
// @Failure      403  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/overview [get]
func (h *AdminController) Overview(c *fiber.Ctx) error {
	o, err := h.users.Overview(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "load overview")
	}
	return c.JSON(o)
}

// ListUsers godoc
// @Summary      List members
// @Tags         admin
// @Produce      json
// @Success      200  {array}   models.User
// @Failure      403  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/users [get]
func (h *AdminController) ListUsers(c *fiber.Ctx) error {
	list, err := h.users.List(c.UserContext())
	if err != nil {
		return respondError(c, h.logger, err, "list users")
	}
	return c.JSON(list)
}

// UpdateUserRole godoc
// @Summary      Change a member's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body body models.UpdateRoleRequest true "Role change"
// @Success      200  {object}  models.User
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/users/role [put]
func (h *AdminController) UpdateRole(c *fiber.Ctx) error {
	var req models.UpdateRoleRequest
	if err := parseJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "parse role body")
	}
	u, err := h.users.SetRole(c.UserContext(), req.ID, req.Role)
	if err != nil {
		return respondError(c, h.logger, err, "update role")
	}
	return c.JSON(u)
}

// AssignBadge godoc
// @Summary      Grant a badge
// @Description  Granting a badge the member already has changes nothing.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body body models.AssignBadgeRequest true "Badge"
// @Success      200  {object}  models.User
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/users/badges [post]
func (h *AdminController) AssignBadge(c *fiber.Ctx) error {
	var req models.AssignBadgeRequest
	if err := parseJSON(c, &req); err != nil {
		return respondError(c, h.logger, err, "parse badge body")
	}
	u, err := h.users.AddBadge(c.UserContext(), req.ID, req.Badge)
	if err != nil {
		return respondError(c, h.logger, err, "assign badge")
	}
	return c.JSON(u)
}

// DeleteUser godoc
// @Summary      Delete a member
// @Tags         admin
// @Produce      json
// @Param        id   query string true "User ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/users [delete]
func (h *AdminController) DeleteUser(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Query("id")); err != nil {
		return respondError(c, h.logger, err, "delete user")
	}
	return deleted(c)
}
