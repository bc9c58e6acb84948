package controllers

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"placar-backend/models"
	"placar-backend/storage"
)

func Register(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var data struct {
			Name            string `json:"name"`
			Email           string `json:"email"`
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirmPassword"`
		}
		if err := c.BodyParser(&data); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
		}

		data.Email = strings.TrimSpace(strings.ToLower(data.Email))
		if data.Name == "" || data.Email == "" || data.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Name, email and password are required"})
		}
		if data.Password != data.ConfirmPassword {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Passwords do not match"})
		}
		if _, exists := svc.FindUserByEmail(data.Email); exists {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already registered"})
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), 14)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to hash password"})
		}

		user := models.StoredUser{
			ID:           models.NewID(),
			Name:         data.Name,
			Email:        data.Email,
			PasswordHash: string(hash),
		}
		if !svc.AddUser(user) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save user"})
		}

		return c.JSON(fiber.Map{"message": "User registered successfully"})
	}
}

func Login(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var data struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&data); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
		}

		user, ok := svc.FindUserByEmail(strings.TrimSpace(data.Email))
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(data.Password)) != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}

		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id": user.ID,
			"exp":     time.Now().Add(time.Hour * 72).Unix(),
		})

		tokenString, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
		}

		return c.JSON(fiber.Map{"token": tokenString, "user": user.Public()})
	}
}

func GetMe(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		user, ok := svc.FindUserByID(userID)
		if !ok {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		return c.JSON(user.Public())
	}
}
