package controllers

import (
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"placar-backend/mail"
	"placar-backend/storage"
)

const usageAlertThreshold = 90.0

var (
	alertMu   sync.Mutex
	lastAlert time.Time
)

// maybeSendUsageAlert emails the configured admin when storage usage
// crosses the threshold. Best effort, rate limited to one mail per day,
// and skipped entirely when STORAGE_ALERT_EMAIL is unset.
func maybeSendUsageAlert(svc *storage.Service) {
	to := os.Getenv("STORAGE_ALERT_EMAIL")
	if to == "" {
		return
	}

	info := svc.UsageInfo()
	if info.Percentage < usageAlertThreshold {
		return
	}

	alertMu.Lock()
	if time.Since(lastAlert) < 24*time.Hour {
		alertMu.Unlock()
		return
	}
	lastAlert = time.Now()
	alertMu.Unlock()

	go func() {
		if err := mail.SendStorageAlert(to, info.UsedBytes, info.CapacityBytes, info.Percentage); err != nil {
			logrus.WithError(err).Warn("failed to send storage alert")
		}
	}()
}

func GetStorageInfo(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(svc.UsageInfo())
	}
}

// ExportData serves the full state as a downloadable JSON snapshot.
func ExportData(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot, err := svc.ExportSnapshot()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to export data"})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="placar-backup.json"`)
		return c.SendString(snapshot)
	}
}

// ImportData replaces the whole stored state with the posted snapshot.
func ImportData(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !svc.ImportSnapshot(string(c.Body())) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Snapshot is not valid JSON or does not fit in storage",
			})
		}
		maybeSendUsageAlert(svc)
		return c.JSON(fiber.Map{"message": "Data imported successfully"})
	}
}

func ResetData(svc *storage.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !svc.Reset() {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to reset data"})
		}
		return c.JSON(fiber.Map{"message": "All data removed"})
	}
}
