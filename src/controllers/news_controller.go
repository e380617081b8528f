package controllers

import (
	"Backend-UniClub/src/models"
	"Backend-UniClub/src/services/news"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type NewsController struct {
	news   *news.Service
	logger *zap.Logger
}

func NewNewsController(s *news.Service, logger *zap.Logger) *NewsController {
	return &NewsController{news: s, logger: logger}
}

// ListNews godoc
// @Summary      List news
// @Description  Newest first.
// @Tags         news
// @Produce      json
// @Param        tag  query string false "Only posts carrying this tag"
// @Param        lang query string false "en or mn"
// @Success      200  {array}   models.News
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/news [get]
func (h *NewsController) List(c *fiber.Ctx) error {
	list, err := h.news.List(c.UserContext(), c.Query("tag"))
	if err != nil {
		return respondError(c, h.logger, err, "list news")
	}
	return sendList(c, list, models.News.View)
}

// GetNews godoc
// @Summary      Get a news post
// @Tags         news
// @Produce      json
// @Param        id   path  string true  "News ID"
// @Param        lang query string false "en or mn"
// @Success      200  {object}  models.News
// @Failure      400  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Router       /api/news/{id} [get]
func (h *NewsController) Get(c *fiber.Ctx) error {
	n, err := h.news.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.logger, err, "get news")
	}
	return sendOne(c, n, models.News.View)
}

// CreateNews godoc
// @Summary      Create a news post
// @Tags         admin-news
// @Accept       multipart/form-data
// @Produce      json
// @Param        title_en      formData string false "English title (one title is required)"
// @Param        title_mn      formData string false "Mongolian title"
// @Param        tags          formData string false "Comma separated tags"
// @Param        publishedDate formData string false "Defaults to now"
// @Param        image         formData file   true  "Cover image"
// @Success      201  {object}  models.News
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/news [post]
func (h *NewsController) Create(c *fiber.Ctx) error {
	var form models.NewsForm
	image, err := parseAdminForm(c, &form)
	if err != nil {
		return respondError(c, h.logger, err, "parse news form")
	}
	n, err := h.news.Create(c.UserContext(), &form, image)
	if err != nil {
		return respondError(c, h.logger, err, "create news")
	}
	return c.Status(fiber.StatusCreated).JSON(n)
}

// UpdateNews godoc
// @Summary      Update a news post
// @Tags         admin-news
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    formData string true  "News ID"
// @Param        image formData file   false "New cover image"
// @Success      200  {object}  models.News
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      404  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/news [put]
func (h *NewsController) Update(c *fiber.Ctx) error {
	var form models.NewsForm
	image, err := parseAdminForm(c, &form)
	if err != nil {
		return respondError(c, h.logger, err, "parse news form")
	}
	n, err := h.news.Update(c.UserContext(), &form, image)
	if err != nil {
		return respondError(c, h.logger, err, "update news")
	}
	return c.JSON(n)
}

// DeleteNews godoc
// @Summary      Delete a news post
// @Tags         admin-news
// @Produce      json
// @Param        id   query string true "News ID"
// @Success      200  {object}  models.SuccessResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      403  {object}  models.ErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Security     BearerAuth
// @Router       /api/admin/news [delete]
func (h *NewsController) Delete(c *fiber.Ctx) error {
	if err := h.news.Delete(c.UserContext(), c.Query("id")); err != nil {
		return respondError(c, h.logger, err, "delete news")
	}
	return deleted(c)
}
