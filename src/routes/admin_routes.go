package routes

import (
	"Backend-UniClub/src/controllers"
	"Backend-UniClub/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func adminRoutes(router fiber.Router, h *controllers.AdminController, auth *middleware.Auth) {
	router.Get("/admin/overview", auth.RequireAdmin, h.Overview)

	users := router.Group("/admin/users", auth.RequireAdmin)
	users.Get("/", h.ListUsers)
	users.Put("/role", h.UpdateRole)
	users.Post("/badges", h.AssignBadge)
	users.Delete("/", h.DeleteUser)
}
