package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"placar-backend/models"
	"placar-backend/storage"
)

// saveFailed is the shared response for a gateway save that returned
// false: either the payload is over capacity or the store rejected it.
func saveFailed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInsufficientStorage).JSON(fiber.Map{
		"error": "Failed to save data; storage may be full",
	})
}

func findTeam(svc *storage.Service, id string) (models.Team, bool) {
	for _, t := range svc.GetTeams() {
		if t.ID == id {
			return t, true
		}
	}
	return models.Team{}, false
}

func GetTeams(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.GetTeams())
	}
}

func GetTeam(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		team, ok := findTeam(svc, c.Params("id"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Team not found"})
		}
		return c.JSON(team)
	}
}

func CreateTeam(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Name   string `json:"name"`
			Shield string `json:"shield"`
		}
		if err := c.BodyParser(&body); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
		}
		if strings.TrimSpace(body.Name) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Team name is required"})
		}

		team := models.Team{
			ID:      models.NewID(),
			Name:    strings.TrimSpace(body.Name),
			Shield:  body.Shield,
			Players: []models.Player{},
		}
		if !svc.SaveTeam(team) {
			return saveFailed(c)
		}
		maybeSendUsageAlert(svc)
		return c.Status(fiber.StatusCreated).JSON(team)
	}
}

func UpdateTeam(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		existing, ok := findTeam(svc, c.Params("id"))
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Team not found"})
		}

		var team models.Team
		if err := c.BodyParser(&team); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
		}
		team.ID = existing.ID
		if team.Players == nil {
			team.Players = existing.Players
		}

		if !svc.SaveTeam(team) {
			return saveFailed(c)
		}
		maybeSendUsageAlert(svc)
		return c.JSON(team)
	}
}

func DeleteTeam(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, ok := findTeam(svc, id); !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Team not found"})
		}
		if !svc.DeleteTeam(id) {
			return saveFailed(c)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
