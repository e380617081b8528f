package utils

import (
	"errors"

	"Backend-UniClub/src/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Messages shared by every handler.
const (
	MsgForbidden      = "Forbidden"
	MsgUnauthorized   = "Unauthorized"
	MsgMissingFields  = "Missing required fields"
	MsgMissingID      = "Missing id"
	MsgInvalidID      = "Invalid id"
	MsgNotFound       = "Not found"
	MsgInternalError  = "Internal server error"
	MsgInvalidPayload = "Invalid request body"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{Error: message})
}

// HandleInternalError logs err and answers with a generic 500 body so that
// driver or upload details never reach the client.
func HandleInternalError(c *fiber.Ctx, logger *zap.Logger, msg string, err error) error {
	logger.Error(msg,
		zap.Error(err),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Any("requestId", c.Locals("requestid")),
	)
	return HandleError(c, fiber.StatusInternalServerError, MsgInternalError)
}

// ErrorHandler is the fiber.Config ErrorHandler; it keeps the {error} shape
// for routing errors and recovered panics.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return HandleError(c, fe.Code, fe.Message)
		}
		return HandleInternalError(c, logger, "unhandled error", err)
	}
}
