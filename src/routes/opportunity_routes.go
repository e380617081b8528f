package routes

import (
	"Backend-UniClub/src/controllers"
	"Backend-UniClub/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func opportunityRoutes(router fiber.Router, h *controllers.OpportunityController, auth *middleware.Auth) {
	opps := router.Group("/opportunities")
	opps.Get("/", h.List)
	opps.Get("/:id", h.Get)

	admin := router.Group("/admin/opportunities")
	admin.Get("/", h.List)
	admin.Post("/", auth.RequireAdmin, h.Create)
	admin.Put("/", auth.RequireAdmin, h.Update)
	admin.Delete("/", auth.RequireAdmin, h.Delete)
}
