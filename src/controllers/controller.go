// Package controllers holds the Fiber handlers. Handlers only translate HTTP
// into service calls; every domain rule lives in the services packages.
package controllers

import (
	"errors"
	"mime/multipart"

	"Backend-UniClub/src/models"
	"Backend-UniClub/src/services"
	"Backend-UniClub/src/services/events"
	"Backend-UniClub/src/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	imageField = "image"

	msgAlreadyRegistered = "Already registered"
	msgUserNotFound      = "User not found"
	msgUnknownUniversity = "Unknown university"
	msgDuplicate         = "Already exists"
)

// respondError maps a service error onto the HTTP status the API promises.
// Anything unrecognized is logged and answered with a generic 500.
func respondError(c *fiber.Ctx, logger *zap.Logger, err error, action string) error {
	var fe *utils.FormError
	switch {
	case errors.As(err, &fe):
		return utils.HandleError(c, fiber.StatusBadRequest, fe.Message)
	case errors.Is(err, utils.ErrMissingFields), errors.Is(err, services.ErrImageRequired):
		return utils.HandleError(c, fiber.StatusBadRequest, utils.MsgMissingFields)
	case errors.Is(err, services.ErrMissingID):
		return utils.HandleError(c, fiber.StatusBadRequest, utils.MsgMissingID)
	case errors.Is(err, services.ErrInvalidID):
		return utils.HandleError(c, fiber.StatusBadRequest, utils.MsgInvalidID)
	case errors.Is(err, services.ErrUnknownUniversity):
		return utils.HandleError(c, fiber.StatusBadRequest, msgUnknownUniversity)
	case errors.Is(err, services.ErrAlreadyRegistered):
		return utils.HandleError(c, fiber.StatusBadRequest, msgAlreadyRegistered)
	case errors.Is(err, services.ErrDuplicate):
		return utils.HandleError(c, fiber.StatusConflict, msgDuplicate)
	case errors.Is(err, events.ErrUserNotFound):
		return utils.HandleError(c, fiber.StatusNotFound, msgUserNotFound)
	case errors.Is(err, services.ErrNotFound):
		return utils.HandleError(c, fiber.StatusNotFound, utils.MsgNotFound)
	}
	return utils.HandleInternalError(c, logger, action, err)
}

// parseAdminForm decodes a multipart admin form into dst and returns the
// optional image part.
func parseAdminForm(c *fiber.Ctx, dst interface{}) (*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, &utils.FormError{Message: utils.MsgInvalidPayload}
	}
	if err := utils.DecodeForm(form, dst, imageField); err != nil {
		return nil, err
	}
	if files := form.File[imageField]; len(files) > 0 && files[0].Size > 0 {
		return files[0], nil
	}
	return nil, nil
}

// parseJSON binds and validates a JSON body.
func parseJSON(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return &utils.FormError{Message: utils.MsgInvalidPayload}
	}
	return utils.Validate(dst)
}

// requestLang returns the language asked for with ?lang=, or "" when the
// caller wants the raw bilingual documents.
func requestLang(c *fiber.Ctx) string {
	if c.Query("lang") == "" {
		return ""
	}
	return models.NormalizeLang(c.Query("lang"))
}

func sendList[T, V any](c *fiber.Ctx, items []T, view func(T, string) V) error {
	lang := requestLang(c)
	if lang == "" {
		return c.JSON(items)
	}
	out := make([]V, 0, len(items))
	for _, item := range items {
		out = append(out, view(item, lang))
	}
	return c.JSON(out)
}

func sendOne[T, V any](c *fiber.Ctx, item *T, view func(T, string) V) error {
	if lang := requestLang(c); lang != "" {
		return c.JSON(view(*item, lang))
	}
	return c.JSON(item)
}

func deleted(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse{Success: true})
}
