package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"karrirconnect-backend/internal/logger"
	"karrirconnect-backend/internal/utils"
)

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, toEmail, toName, subject, plain, html string) error {
	logger.ExternalServiceCall("sendgrid", "send", "to", toEmail, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := s.client.SendWithContext(ctx, msg)
	if err == nil && resp.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "to", toEmail)
	return err
}

func (s *emailService) SendInvitationNotification(ctx context.Context, toEmail, toName, companyName, message string) error {
	subject := fmt.Sprintf("%s invited you to apply", companyName)
	plain := fmt.Sprintf(
		"Hi %s,\n\n%s has invited you to apply for a position on KarrirConnect.\n\n%s\n\nLog in to respond to the invitation.\n",
		toName, companyName, message)
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p><strong>%s</strong> has invited you to apply for a position on KarrirConnect.</p><p>%s</p><p>Log in to respond to the invitation.</p>`,
		toName, companyName, message)
	return s.send(ctx, toEmail, toName, subject, plain, html)
}

func (s *emailService) SendPurchaseReceipt(ctx context.Context, toEmail, companyName, packageName string, points int32, amount int64) error {
	subject := "Your KarrirConnect point purchase"
	price := utils.FormatRupiah(amount)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYour purchase is complete: %s\nPoints credited: %d\nAmount paid: %s\n\nThank you for using KarrirConnect.\n",
		companyName, packageName, points, price)
	html := fmt.Sprintf(
		`<p>Hi %s,</p><p>Your purchase is complete: <strong>%s</strong></p><ul><li>Points credited: %d</li><li>Amount paid: %s</li></ul><p>Thank you for using KarrirConnect.</p>`,
		companyName, packageName, points, price)
	return s.send(ctx, toEmail, companyName, subject, plain, html)
}
