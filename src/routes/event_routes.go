package routes

import (
	"Backend-UniClub/src/controllers"
	"Backend-UniClub/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func eventRoutes(router fiber.Router, h *controllers.EventController, auth *middleware.Auth) {
	events := router.Group("/events")
	events.Get("/", h.List)
	events.Get("/:id", h.Get)
	events.Post("/:id", auth.RequireSession, h.Join)

	admin := router.Group("/admin/events")
	admin.Get("/", h.List)
	admin.Post("/", auth.RequireAdmin, h.Create)
	admin.Put("/", auth.RequireAdmin, h.Update)
	admin.Delete("/", auth.RequireAdmin, h.Delete)
}
