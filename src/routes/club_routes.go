package routes

import (
	"Backend-UniClub/src/controllers"
	"Backend-UniClub/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func clubRoutes(router fiber.Router, h *controllers.ClubController, auth *middleware.Auth) {
	clubs := router.Group("/clubs")
	// stats before :id
	clubs.Get("/stats", h.Stats)
	clubs.Get("/:id", h.Get)

	admin := router.Group("/admin/clubs")
	admin.Get("/", h.List)
	admin.Post("/", auth.RequireAdmin, h.Create)
	admin.Put("/", auth.RequireAdmin, h.Update)
	admin.Delete("/", auth.RequireAdmin, h.Delete)
}
