package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/rs/zerolog/log"

	"travelblog-backend/internal/config"
)

// EmailService sends newsletter and test emails over SMTP.
type EmailService interface {
	SendUpdatePublished(recipients []string, updateTitle, updateURL string) error
	SendTestEmail(recipient string) error
}

type smtpService struct {
	cfg config.SMTPConfig
}

func NewSMTPService(cfg config.SMTPConfig) EmailService {
	return &smtpService{cfg: cfg}
}

const updatePublishedTemplate = `
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>Nouvelle étape du voyage !</h2>
	<p>Un nouvel article vient d'être publié : <strong>{{.Title}}</strong></p>
	<p><a href="{{.URL}}" style="color: #2563eb;">Lire l'article</a></p>
	<p style="color: #888; font-size: 12px;">
		Vous recevez cet email car vous êtes abonné au carnet de voyage.
	</p>
</body>
</html>
`

// SendUpdatePublished notifies a batch of subscribers about a new article.
// Recipients go in BCC so subscribers never see each other's address.
func (s *smtpService) SendUpdatePublished(recipients []string, updateTitle, updateURL string) error {
	if len(recipients) == 0 {
		return nil
	}

	tmpl, err := template.New("update_published").Parse(updatePublishedTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var htmlBody bytes.Buffer
	data := struct {
		Title string
		URL   string
	}{Title: updateTitle, URL: updateURL}

	if err := tmpl.Execute(&htmlBody, data); err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Nouvelle étape : %s", updateTitle)
	plain := fmt.Sprintf("Un nouvel article vient d'être publié : %s\n%s", updateTitle, updateURL)

	if err := s.send(recipients, subject, plain, htmlBody.String()); err != nil {
		return err
	}

	log.Info().Int("recipients", len(recipients)).Str("title", updateTitle).Msg("📧 Sent publish notification batch")
	return nil
}

func (s *smtpService) SendTestEmail(recipient string) error {
	plain := "Ceci est un email de test du carnet de voyage."
	html := "<p>Ceci est un email de test du carnet de voyage.</p>"
	return s.send([]string{recipient}, "Email de test", plain, html)
}

// send builds a multipart/alternative message and delivers it in one
// SMTP session. All recipients are addressed via envelope (BCC style).
func (s *smtpService) send(recipients []string, subject, plainBody, htmlBody string) error {
	boundary := "travelblog-boundary-7f3a"

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, s.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s <%s>\r\n", s.cfg.FromName, s.cfg.From))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary))
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	msg.WriteString(plainBody)
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	msg.WriteString(htmlBody)
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)

	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, recipients, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
