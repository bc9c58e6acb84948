package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"placar-backend/models"
	"placar-backend/storage"
)

type playerInput struct {
	Name        string `json:"name"`
	Number      int    `json:"number"`
	Goals       int    `json:"goals"`
	YellowCards int    `json:"yellowCards"`
	RedCards    int    `json:"redCards"`
}

func (in playerInput) validate() string {
	if strings.TrimSpace(in.Name) == "" {
		return "Player name is required"
	}
	if in.Number < 1 || in.Number > 99 {
		return "Shirt number must be between 1 and 99"
	}
	if in.Goals < 0 || in.YellowCards < 0 || in.RedCards < 0 {
		return "Statistics cannot be negative"
	}
	return ""
}

func AddPlayer(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID := c.Params("id")
		if _, ok := findTeam(svc, teamID); !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Team not found"})
		}

		var in playerInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
		}
		if msg := in.validate(); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
		}

		player := models.Player{
			ID:          models.NewID(),
			Name:        strings.TrimSpace(in.Name),
			Number:      in.Number,
			Goals:       in.Goals,
			YellowCards: in.YellowCards,
			RedCards:    in.RedCards,
		}
		if !svc.AddPlayer(teamID, player) {
			return saveFailed(c)
		}
		return c.Status(fiber.StatusCreated).JSON(player)
	}
}

func UpdatePlayer(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID := c.Params("id")
		playerID := c.Params("playerId")

		team, ok := findTeam(svc, teamID)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Team not found"})
		}
		exists := false
		for _, p := range team.Players {
			if p.ID == playerID {
				exists = true
				break
			}
		}
		if !exists {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Player not found"})
		}

		var in playerInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
		}
		if msg := in.validate(); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
		}

		player := models.Player{
			ID:          playerID,
			Name:        strings.TrimSpace(in.Name),
			Number:      in.Number,
			Goals:       in.Goals,
			YellowCards: in.YellowCards,
			RedCards:    in.RedCards,
		}
		if !svc.UpdatePlayer(teamID, player) {
			return saveFailed(c)
		}
		return c.JSON(player)
	}
}

func DeletePlayer(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		teamID := c.Params("id")
		playerID := c.Params("playerId")

		team, ok := findTeam(svc, teamID)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Team not found"})
		}
		exists := false
		for _, p := range team.Players {
			if p.ID == playerID {
				exists = true
				break
			}
		}
		if !exists {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Player not found"})
		}

		if !svc.DeletePlayer(teamID, playerID) {
			return saveFailed(c)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
