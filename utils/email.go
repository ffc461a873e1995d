// utils/email.go
package utils

import (
	"fmt"
	"log"
	"os"

	"github.com/keighl/postmark"

	"shopcart-api/models"
)

// EmailService sends transactional mail through Postmark. A service built
// without an API token is disabled and silently drops every message, which
// keeps local development working without credentials.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		log.Println("POSTMARK_API_TOKEN not set, order emails disabled")
		return &EmailService{}
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, textContent string) error {
	if es == nil || es.client == nil {
		return nil
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		TextBody: textContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderPlacedEmail notifies the user that their order was placed
func (es *EmailService) SendOrderPlacedEmail(toEmail, name string, order models.Order) error {
	subject := "Order Confirmation"
	content := fmt.Sprintf(
		"Dear %s,\n\nYour order (ID: %s) for %d item(s) was placed successfully on %s.\n\nThank you for shopping with us!\n",
		name,
		order.ID.Hex(),
		order.Quantity,
		order.OrderDate.Format("2006-01-02"),
	)
	return es.SendEmail(toEmail, subject, content)
}

// SendOrderCancelledEmail notifies the user that their order was cancelled
func (es *EmailService) SendOrderCancelledEmail(toEmail, name string, order models.Order) error {
	subject := "Order Cancelled"
	content := fmt.Sprintf(
		"Dear %s,\n\nYour order (ID: %s) has been cancelled.\n\nThank you for shopping with us!\n",
		name,
		order.ID.Hex(),
	)
	return es.SendEmail(toEmail, subject, content)
}
