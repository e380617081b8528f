package controllers

import (
	"Backend-UniClub/src/middleware"
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/services/events"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type EventController struct {
	events *events.Service
	logger *zap.Logger
}

func NewEventController(s *events.Service, logger *zap.Logger) *EventController {
	return &EventController{events: s, logger: logger}
}

// ListEvents godoc
// @Summary      List events
// @Description  Events sorted by date ascending. ?lang adds a localized block.
// @Tags         events
// @Produce      json
// @Param        category   query string false "campaign, workshop, fundraiser or meeting"
// @Param        university query string false "University code"
// @Param        status     query string false "upcoming, past or cancelled"
// @Param        lang       query string false "en or mn"
// @Success      200  {array}   models.Event
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/events [get]
func (h *EventController) List(c *fiber.Ctx) error {
	filter := models.EventFilter{
		Category:   c.Query("category"),
		University: c.Query("university"),
		Status:     c.Query("status"),
	}
	list, err := h.events.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, h.logger, err, "list events")
	}
	return sendList(c, list, models.Event.View)
}

// GetEvent godoc
// @Summary      Get an event
// @Tags         events
// @Produce      json
// @Param        id   path  string true  "Event ID"
// @Param        lang query string false "en or mn"
// @Success      200  {object}  models.Event
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/events/{id} [get]
func (h *EventController) Get(c *fiber.Ctx) error {
	e, err := h.events.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "get event")
	}
	return sendOne(c, e, models.Event.View)
}

// JoinEvent godoc
// @Summary      Join an event
// @Description  Registers the signed-in member and awards the join points once.
// @Tags         events
// @Produce      json
// @Param        id   path string true "Event ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      401  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/events/{id} [post]
func (h *EventController) Join(c *fiber.Ctx) error {
	claims := middleware.SessionFrom(c)
	if err := h.events.Join(c.UserContext(), claims.Subject, c.Params("id")); err != nil {
		return respondError(c, h.logger, err, "join event")
	}
	return c.JSON(models.SuccessResponse{Success: true})
}

// CreateEvent godoc
// @Summary      Create an event
// @Tags         admin-events
// @Accept       multipart/form-data
// @Produce      json
// @Param        title_en    formData string false "English title (one title is required)"
// @Param        title_mn    formData string false "Mongolian title"
// @Param        date        formData string true  "Event date"
// @Param        category    formData string true  "Category"
// @Param        university  formData string false "University code, defaults to the primary one"
// @Param        image       formData file   true  "Cover image"
// @Success      201  {object}  models.Event
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/events [post]
func (h *EventController) Create(c *fiber.Ctx) error {
	var form models.EventForm
	image, err := parseAdminForm(c, &form)
	if err != nil {
		return respondError(c, h.logger, err, "parse event form")
	}
	e, err := h.events.Create(c.UserContext(), &form, image)
	if err != nil {
		return respondError(c, h.logger, err, "create event")
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

// UpdateEvent godoc
// @Summary      Update an event
// @Description  Same form as create plus the id field. The image is optional.
// @Tags         admin-events
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    formData string true  "Event ID"
// @Param        image formData file   false "New cover image"
// @Success      200  {object}  models.Event
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/events [put]
func (h *EventController) Update(c *fiber.Ctx) error {
	var form models.EventForm
	image, err := parseAdminForm(c, &form)
	if err != nil {
		return respondError(c, h.logger, err, "parse event form")
	}
	e, err := h.events.Update(c.UserContext(), &form, image)
	if err != nil {
		return respondError(c, h.logger, err, "update event")
	}
	return c.JSON(e)
}

// DeleteEvent godoc
// @Summary      Delete an event
// @Description  Deleting an unknown id succeeds.
// @Tags         admin-events
// @Produce      json
// @Param        id   query string true "Event ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/events [delete]
func (h *EventController) Delete(c *fiber.Ctx) error {
	if err := h.events.Delete(c.UserContext(), c.Query("id")); err != nil {
		return respondError(c, h.logger, err, "delete event")
	}
	return deleted(c)
}
