package routes

import (
	"github.com/gofiber/fiber/v2"

	"placar-backend/controllers"
	"placar-backend/middleware"
	"placar-backend/storage"
)

func Register(app *fiber.App, svc *storage.Service) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Public ranking view.
	api.Get("/standings", controllers.GetStandings(svc))
	api.Get("/standings/topscorer", controllers.GetTopScorer(svc))
	api.Get("/standings/mostcarded", controllers.GetMostCarded(svc))
	api.Get("/teams", controllers.GetTeams(svc))
	api.Get("/teams/:id", controllers.GetTeam(svc))
	api.Get("/matches", controllers.GetMatches(svc))

	// User accounts.
	api.Post("/auth/register", controllers.Register(svc))
	api.Post("/auth/login", controllers.Login(svc))
	api.Get("/auth/me", middleware.RequireAuth, controllers.GetMe(svc))

	// Everything below mutates league state and requires a logged-in user.
	api.Post("/teams", middleware.RequireAuth, controllers.CreateTeam(svc))
	api.Put("/teams/:id", middleware.RequireAuth, controllers.UpdateTeam(svc))
	api.Delete("/teams/:id", middleware.RequireAuth, controllers.DeleteTeam(svc))

	api.Post("/teams/:id/players", middleware.RequireAuth, controllers.AddPlayer(svc))
	api.Put("/teams/:id/players/:playerId", middleware.RequireAuth, controllers.UpdatePlayer(svc))
	api.Delete("/teams/:id/players/:playerId", middleware.RequireAuth, controllers.DeletePlayer(svc))

	api.Post("/matches", middleware.RequireAuth, controllers.CreateMatch(svc))
	api.Put("/matches/:id", middleware.RequireAuth, controllers.UpdateMatch(svc))

	api.Get("/admin/status", controllers.AdminStatus(svc))
	api.Post("/admin/login", middleware.RequireAuth, controllers.AdminLogin(svc))
	api.Post("/admin/logout", middleware.RequireAuth, controllers.AdminLogout(svc))
	api.Put("/admin/password", middleware.RequireAuth, controllers.UpdateAdminPassword(svc))

	api.Get("/storage/info", middleware.RequireAuth, controllers.GetStorageInfo(svc))
	api.Get("/storage/export", middleware.RequireAuth, controllers.ExportData(svc))
	api.Post("/storage/import", middleware.RequireAuth, controllers.ImportData(svc))
	api.Post("/storage/reset", middleware.RequireAuth, controllers.ResetData(svc))
}
