package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// OrderCreatedData carries the fields rendered into the order-created
// notification.
type OrderCreatedData struct {
	Number    string
	BuyerName string
	Total     float64
	ItemCount int
}

// SendOrderCreated notifies the back office that an order was settled.
// Callers fire this after commit; a failure never affects the settlement.
func (s *EmailService) SendOrderCreated(toEmail string, data OrderCreatedData) error {
	htmlContent, err := s.renderOrderCreated(data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Pedido %s registrado", data.Number)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)
	return []byte(headers + htmlBody)
}

const orderCreatedTemplate = `
<html>
  <body style="font-family: Arial, sans-serif;">
    <h2>Pedido {{.Number}}</h2>
    <p>Cliente: <strong>{{.BuyerName}}</strong></p>
    <p>Itens: {{.ItemCount}}</p>
    <p>Total: <strong>R$ {{printf "%.2f" .Total}}</strong></p>
  </body>
</html>`

// renderOrderCreated renders the order-created email body
func (s *EmailService) renderOrderCreated(data OrderCreatedData) (string, error) {
	tmpl, err := template.New("order_created").Parse(orderCreatedTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
