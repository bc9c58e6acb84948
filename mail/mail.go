package mail

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendStorageAlert warns the league admin that the stored data is close
// to the configured capacity, so they can trim matches or shrink shield
// images before saves start failing.
func SendStorageAlert(to string, usedBytes, capacityBytes int, percentage float64) error {
	fromEmail := os.Getenv("EMAIL_FROM") // e.g., no-reply@placar.app
	apiKey := os.Getenv("SENDGRID_API_KEY")

	subject := "Placar storage almost full"
	plainTextContent := fmt.Sprintf(
		"League storage is at %.1f%% (%d of %d bytes). Remove old matches or use smaller shield images.",
		percentage, usedBytes, capacityBytes)
	htmlContent := fmt.Sprintf(`
        <html>
        <body>
            <h2>Storage almost full</h2>
            <p>League storage is at <strong>%.1f%%</strong> (%d of %d bytes).</p>
            <p>Remove old matches or upload smaller shield images to keep saves working.</p>
        </body>
        </html>
    `, percentage, usedBytes, capacityBytes)

	from := mail.NewEmail("Placar", fromEmail)
	toEmail := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, toEmail, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)

	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: %d - %s", response.StatusCode, response.Body)
	}

	return nil
}
