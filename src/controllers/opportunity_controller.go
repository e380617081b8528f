package controllers

import (
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/services/opportunities"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type OpportunityController struct {
	opportunities *opportunities.Service
	logger        *zap.Logger
}

func NewOpportunityController(s *opportunities.Service, logger *zap.Logger) *OpportunityController {
	return &OpportunityController{opportunities: s, logger: logger}
}

// ListOpportunities godoc
// @Summary      List opportunities
// @Tags         opportunities
// @Produce      json
// @Param        type query string false "scholarship, internship or volunteer"
// @Param        lang query string false "en or mn"
// @Success      200  {array}   models.Opportunity
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/opportunities [get]
func (h *OpportunityController) List(c *fiber.Ctx) error {
	list, err := h.opportunities.List(c.UserContext(), c.Query("type"))
	if err != nil {
		return respondError(c, h.logger, err, "list opportunities")
	}
	return sendList(c, list, models.Opportunity.View)
}

// GetOpportunity godoc
// @Summary      Get an opportunity
// @Tags         opportunities
// @Produce      json
// @Param        id   path  string true  "Opportunity ID"
// @Param        lang query string false "en or mn"
// @Success      200  {object}  models.Opportunity
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/opportunities/{id} [get]
func (h *OpportunityController) Get(c *fiber.Ctx) error {
	o, err := h.opportunities.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "get opportunity")
	}
	return sendOne(c, o, models.Opportunity.View)
}

// CreateOpportunity godoc
// @Summary      Create an opportunity
// @Tags         admin-opportunities
// @Accept       multipart/form-data
// @Produce      json
// @Param        type            formData string true  "scholarship, internship or volunteer"
// @Param        title_en        formData string false "English title (one title is required)"
// @Param        title_mn        formData string false "Mongolian title"
// @Param        requirements_en formData string false "One requirement per line"
// @Param        requirements_mn formData string false "One requirement per line"
// @Param        image           formData file   true  "Cover image"
// @Success      201  {object}  models.Opportunity
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/opportunities [post]
func (h *OpportunityController) Create(c *fiber.Ctx) error {
	var form models.OpportunityForm
	image, err := parseAdminForm(c, &form)
	if err != nil {
		return respondError(c, h.logger, err, "parse opportunity form")
	}
	o, err := h.opportunities.Create(c.UserContext(), &form, image)
	if err != nil {
		return respondError(c, h.logger, err, "create opportunity")
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

// UpdateOpportunity godoc
// @Summary      Update an opportunity
// @Tags         admin-opportunities
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    formData string true  "Opportunity ID"
// @Param        image formData file   false "New cover image"
// @Success      200  {object}  models.Opportunity
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/opportunities [put]
func (h *OpportunityController) Update(c *fiber.Ctx) error {
	var form models.OpportunityForm
	image, err := parseAdminForm(c, &form)
	if err != nil {
		return respondError(c, h.logger, err, "parse opportunity form")
	}
	o, err := h.opportunities.Update(c.UserContext(), &form, image)
	if err != nil {
		return respondError(c, h.logger, err, "update opportunity")
	}
	return c.JSON(o)
}

// DeleteOpportunity godoc
// @Summary      Delete an opportunity
// @Tags         admin-opportunities
// @Produce      json
// @Param        id   query string true "Opportunity ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/opportunities [delete]
func (h *OpportunityController) Delete(c *fiber.Ctx) error {
	if err := h.opportunities.Delete(c.UserContext(), c.Query("id")); err != nil {
		return respondError(c, h.logger, err, "delete opportunity")
	}
	return deleted(c)
}
