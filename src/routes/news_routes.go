package routes

import (
	"Backend-UniClub/src/controllers"
	"Backend-UniClub/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func newsRoutes(router fiber.Router, h *controllers.NewsController, auth *middleware.Auth) {
	news := router.Group("/news")
	news.Get("/", h.List)
	news.Get("/:id", h.Get)

	admin := router.Group("/admin/news")
	admin.Get("/", h.List)
	admin.Post("/", auth.RequireAdmin, h.Create)
	admin.Put("/", auth.RequireAdmin, h.Update)
	admin.Delete("/", auth.RequireAdmin, h.Delete)
}
