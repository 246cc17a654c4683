package email

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"
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

// Sender delivers rendered messages.
type Sender interface {
	SendSlip(to string, slip SlipMessage) error
	SendOrderReady(to string, msg OrderReadyMessage) error
}

// SlipInstallment is one line of a payment slip message.
type SlipInstallment struct {
	Number  string
	DueDate string
	Amount  string
}

// SlipMessage is the data rendered into a payment slip e-mail.
type SlipMessage struct {
	StoreName    string
	CustomerName string
	OrderNumber  string
	AmountDue    string
	Installments []SlipInstallment
}

// OrderReadyMessage tells a customer their glasses can be picked up.
type OrderReadyMessage struct {
	StoreName    string
	CustomerName string
	OrderNumber  string
	Balance      string
}

// ErrNotConfigured is returned when no SMTP host is set.
var ErrNotConfigured = errors.New("email: SMTP is not configured")

// EmailService sends e-mails over SMTP
type EmailService struct {
	config    EmailConfig
	templates *template.Template
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	tmpl := template.Must(template.New("slip").Parse(slipTemplate))
	template.Must(tmpl.New("order_ready").Parse(orderReadyTemplate))

	return &EmailService{
		config:    config,
		templates: tmpl,
		send:      smtp.SendMail,
	}
}

// SendSlip sends the installment plan of an overdue order.
func (s *EmailService) SendSlip(to string, slip SlipMessage) error {
	body, err := s.render("slip", slip)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("%s - Carnê de pagamento %s", slip.StoreName, slip.OrderNumber)
	return s.deliver(to, subject, body)
}

// SendOrderReady notifies that an order arrived at the store.
func (s *EmailService) SendOrderReady(to string, msg OrderReadyMessage) error {
	body, err := s.render("order_ready", msg)
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("%s - Seus óculos chegaram (%s)", msg.StoreName, msg.OrderNumber)
	return s.deliver(to, subject, body)
}

func (s *EmailService) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (s *EmailService) deliver(to, subject, htmlBody string) error {
	if s.config.SMTPHost == "" {
		return ErrNotConfigured
	}
	if strings.TrimSpace(to) == "" {
		return errors.New("email: recipient address is empty")
	}

	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	var auth smtp.Auth
	if s.config.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)
	}

	if err := s.send(addr, auth, s.config.FromEmail, []string{to}, s.buildHTMLEmail(to, subject, htmlBody)); err != nil {
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

const slipTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="UTF-8"><title>Carnê {{.OrderNumber}}</title></head>
<body style="font-family: Arial, sans-serif; color: #1a1a2e;">
  <h2>{{.StoreName}}</h2>
  <p>Olá, {{.CustomerName}}.</p>
  <p>Segue o carnê referente à ordem de serviço <strong>{{.OrderNumber}}</strong>, no valor total de <strong>{{.AmountDue}}</strong>.</p>
  <table style="border-collapse: collapse;">
    <tr><th style="text-align:left;padding:4px 12px;">Parcela</th><th style="text-align:left;padding:4px 12px;">Vencimento</th><th style="text-align:right;padding:4px 12px;">Valor</th></tr>
    {{range .Installments}}<tr><td style="padding:4px 12px;">{{.Number}}</td><td style="padding:4px 12px;">{{.DueDate}}</td><td style="text-align:right;padding:4px 12px;">{{.Amount}}</td></tr>
    {{end}}
  </table>
  <p style="color:#718096;font-size:12px;">Este e-mail foi enviado por {{.StoreName}}.</p>
</body>
</html>
`

const orderReadyTemplate = `<!DOCTYPE html>
<html lang="pt-BR">
<head><meta charset="UTF-8"><title>{{.OrderNumber}}</title></head>
<body style="font-family: Arial, sans-serif; color: #1a1a2e;">
  <h2>{{.StoreName}}</h2>
  <p>Olá, {{.CustomerName}}.</p>
  <p>Seus óculos da ordem de serviço <strong>{{.OrderNumber}}</strong> já estão na loja e podem ser retirados.</p>
  {{if .Balance}}<p>Saldo a pagar na retirada: <strong>{{.Balance}}</strong>.</p>{{end}}
</body>
</html>
`
