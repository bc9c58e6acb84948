package controllers

import (
	"github.com/gofiber/fiber/v2"

	"placar-backend/models"
	"placar-backend/storage"
)

// The admin gate lives inside the data blob itself: AdminAuth carries the
// password in the clear and a flag for whether the admin panel is open.
// That is the storage model this system inherited; account-level security
// is the user auth layer's job, not this one's.

func AdminStatus(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := svc.AdminAuth()
		return c.JSON(fiber.Map{
			"isAuthenticated": auth.IsAuthenticated,
			"hasPassword":     auth.Password != "",
		})
	}
}

func AdminLogin(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var data struct {
			Password string `json:"password"`
		}
		if err := c.BodyParser(&data); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
		}

		auth := svc.AdminAuth()
		if auth.Password == "" {
			// First login defines the admin password.
			if data.Password == "" {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Password is required"})
			}
			auth = models.AdminAuth{IsAuthenticated: true, Password: data.Password}
			if !svc.SetAdminAuth(auth) {
				return saveFailed(c)
			}
			return c.JSON(fiber.Map{"message": "Admin password set", "isAuthenticated": true})
		}

		if data.Password != auth.Password {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Incorrect password"})
		}

		auth.IsAuthenticated = true
		if !svc.SetAdminAuth(auth) {
			return saveFailed(c)
		}
		return c.JSON(fiber.Map{"isAuthenticated": true})
	}
}

func AdminLogout(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := svc.AdminAuth()
		auth.IsAuthenticated = false
		if !svc.SetAdminAuth(auth) {
			return saveFailed(c)
		}
		return c.JSON(fiber.Map{"isAuthenticated": false})
	}
}

func UpdateAdminPassword(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var data struct {
			CurrentPassword string `json:"currentPassword"`
			NewPassword     string `json:"newPassword"`
		}
		if err := c.BodyParser(&data); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
		}
		if data.NewPassword == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "New password is required"})
		}

		auth := svc.AdminAuth()
		if auth.Password != "" && auth.Password != data.CurrentPassword {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Incorrect password"})
		}

		auth.Password = data.NewPassword
		if !svc.SetAdminAuth(auth) {
			return saveFailed(c)
		}
		return c.JSON(fiber.Map{"message": "Admin password updated"})
	}
}
