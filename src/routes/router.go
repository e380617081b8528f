package routes

import (
	"Backend-UniClub/src/controllers"
	"Backend-UniClub/src/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Handlers bundles the controllers the router mounts.
type Handlers struct {
	Events        *controllers.EventController
	News          *controllers.NewsController
	Opportunities *controllers.OpportunityController
	Clubs         *controllers.ClubController
	Users         *controllers.UserController
	Admin         *controllers.AdminController
	Health        *controllers.HealthController
}

// InitRoutes mounts every API route. Session claims are parsed for all /api
// requests; member and admin routes add their own guard.
func InitRoutes(app *fiber.App, h Handlers, auth *middleware.Auth) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	if h.Health != nil {
		app.Get("/health", h.Health.Health)
	}

	api := app.Group("/api", auth.Session)
	eventRoutes(api, h.Events, auth)
	newsRoutes(api, h.News, auth)
	opportunityRoutes(api, h.Opportunities, auth)
	clubRoutes(api, h.Clubs, auth)
	userRoutes(api, h.Users, auth)
	adminRoutes(api, h.Admin, auth)
}
