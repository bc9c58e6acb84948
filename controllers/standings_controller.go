package controllers

import (
	"github.com/gofiber/fiber/v2"

	"placar-backend/league"
	"placar-backend/models"
	"placar-backend/storage"
)

type StandingRow struct {
	Position       int         `json:"position"`
	Team           models.Team `json:"team"`
	Points         int         `json:"points"`
	GoalDifference int         `json:"goalDifference"`
}

// GetStandings is the public ranking view. Records are recomputed from
// the match log on every request; the stored per-team counters are only
// a cache.
func GetStandings(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		data := svc.Load()
		ranked := league.Rank(data.Teams, data.Matches)

		rows := make([]StandingRow, len(ranked))
		for i, team := range ranked {
			rows[i] = StandingRow{
				Position:       i + 1,
				Team:           team,
				Points:         league.Points(team),
				GoalDifference: league.GoalDifference(team),
			}
		}
		return c.JSON(rows)
	}
}

func GetTopScorer(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		player, ok := league.TopScorer(svc.GetTeams())
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No players registered"})
		}
		return c.JSON(player)
	}
}

func GetMostCarded(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		player, ok := league.MostCarded(svc.GetTeams())
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No players registered"})
		}
		return c.JSON(player)
	}
}
