package main

import (
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"placar-backend/logger"
	"placar-backend/routes"
	"placar-backend/storage"
)

// openStore picks the blob backend: Postgres when DATABASE_URL is set,
// otherwise files under DATA_DIR (defaults to ./data).
func openStore() (storage.BlobStore, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return storage.OpenPostgres(dsn)
	}

	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		dir = "data"
	}
	return storage.NewFileStore(dir)
}

func main() {
	// Load env vars from .env file
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, continuing with system environment variables")
	}
	logger.Init()

	store, err := openStore()
	if err != nil {
		logrus.Fatal("Failed to open storage: ", err)
	}

	capacity := storage.DefaultCapacity
	if raw := os.Getenv("MAX_STORAGE_BYTES"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			capacity = parsed
		} else {
			logrus.Warn("Ignoring invalid MAX_STORAGE_BYTES: ", raw)
		}
	}
	svc := storage.NewService(store, capacity)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Setup routes
	routes.Register(app, svc)

	// Start server
	logrus.Info("Server running on port " + port)
	logrus.Fatal(app.Listen(":" + port))
}
