package routes

import (
	"Backend-UniClub/src/controllers"
	"Backend-UniClub/src/middleware"

	"github.com/gofiber/fiber/v2"
)

func userRoutes(router fiber.Router, h *controllers.UserController, auth *middleware.Auth) {
	user := router.Group("/user", auth.RequireSession)
	user.Get("/dashboard", h.Dashboard)
	user.Post("/sync", h.Sync)
}
