package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"carrental-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) SendReservationConfirmation(ctx context.Context, to, name, vehicle, startDate, endDate string, totalCents int64) error {
	subject := "Reservation confirmed"
	plainText := fmt.Sprintf("Hi %s, your reservation of %s from %s to %s is confirmed. Total charged: %s.",
		name, vehicle, startDate, endDate, formatCents(totalCents))
	htmlContent := fmt.Sprintf(`<p>Hi %s,</p><p>Your reservation of <strong>%s</strong> from %s to %s is confirmed.</p><p>Total charged: <strong>%s</strong>.</p>`,
		name, vehicle, startDate, endDate, formatCents(totalCents))
	return s.send(to, name, subject, plainText, htmlContent)
}

func (s *emailService) SendCancellationNotification(ctx context.Context, to, name, vehicle, reason string, refundCents int64) error {
	subject := "Reservation cancelled"
	plainText := fmt.Sprintf("Hi %s, your reservation of %s was cancelled. Reason: %s. Refunded: %s.",
		name, vehicle, reason, formatCents(refundCents))
	htmlContent := fmt.Sprintf(`<p>Hi %s,</p><p>Your reservation of <strong>%s</strong> was cancelled.</p><p>Reason: %s</p><p>Refunded: <strong>%s</strong>.</p>`,
		name, vehicle, reason, formatCents(refundCents))
	return s.send(to, name, subject, plainText, htmlContent)
}

func (s *emailService) SendReservationReminder(ctx context.Context, to, name, vehicle, startDate string) error {
	subject := "Your reservation starts tomorrow"
	plainText := fmt.Sprintf("Hi %s, a reminder that your reservation of %s starts on %s.",
		name, vehicle, startDate)
	htmlContent := fmt.Sprintf(`<p>Hi %s,</p><p>A reminder that your reservation of <strong>%s</strong> starts on %s.</p>`,
		name, vehicle, startDate)
	return s.send(to, name, subject, plainText, htmlContent)
}

func (s *emailService) send(to, toName, subject, plainText, htmlContent string) error {
	if s.apiKey == "" {
		// No provider configured, common in local development.
		logger.Debug("Email delivery skipped", "to", to, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, htmlContent)

	client := sendgrid.NewSendClient(s.apiKey)
	logger.ExternalServiceCall("sendgrid", "send", "to", to, "subject", subject)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "send", err, "to", to)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "send", err, "to", to)
		return err
	}
	logger.ExternalServiceResult("sendgrid", "send", nil, "to", to)
	return nil
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
