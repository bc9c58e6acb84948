package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"placar-backend/models"
	"placar-backend/storage"
)

type matchInput struct {
	HomeTeamID string              `json:"homeTeamId"`
	AwayTeamID string              `json:"awayTeamId"`
	HomeScore  int                 `json:"homeScore"`
	AwayScore  int                 `json:"awayScore"`
	Date       string              `json:"date"`
	Events     []models.MatchEvent `json:"events"`
}

func (in *matchInput) validate(svc *storage.Service) string {
	if in.HomeTeamID == in.AwayTeamID {
		return "A team cannot play against itself"
	}
	if in.HomeScore < 0 || in.AwayScore < 0 {
		return "Scores cannot be negative"
	}
	if _, ok := findTeam(svc, in.HomeTeamID); !ok {
		return "Home team not found"
	}
	if _, ok := findTeam(svc, in.AwayTeamID); !ok {
		return "Away team not found"
	}
	for _, e := range in.Events {
		if !models.ValidEventType(e.Type) {
			return "Unknown event type: " + string(e.Type)
		}
		if e.Minute < 0 {
			return "Event minute cannot be negative"
		}
	}
	return ""
}

func (in *matchInput) toMatch(id string) models.Match {
	if in.Date == "" {
		in.Date = time.Now().Format("2006-01-02")
	}
	events := in.Events
	if events == nil {
		events = []models.MatchEvent{}
	}
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = models.NewID()
		}
	}
	return models.Match{
		ID:         id,
		HomeTeamID: in.HomeTeamID,
		AwayTeamID: in.AwayTeamID,
		HomeScore:  in.HomeScore,
		AwayScore:  in.AwayScore,
		Date:       in.Date,
		Events:     events,
	}
}

func GetMatches(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.GetMatches())
	}
}

func CreateMatch(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in matchInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
		}
		if msg := in.validate(svc); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
		}

		match := in.toMatch(models.NewID())
		if !svc.SaveMatch(match) {
			return saveFailed(c)
		}
		maybeSendUsageAlert(svc)
		return c.Status(fiber.StatusCreated).JSON(match)
	}
}

func UpdateMatch(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		exists := false
		for _, m := range svc.GetMatches() {
			if m.ID == id {
				exists = true
				break
			}
		}
		if !exists {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Match not found"})
		}

		var in matchInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
		}
		if msg := in.validate(svc); msg != "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
		}

		match := in.toMatch(id)
		if !svc.SaveMatch(match) {
			return saveFailed(c)
		}
		return c.JSON(match)
	}
}
