package email

import (
	"fmt"
	"net/smtp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Sender delivers account e-mails
type Sender interface {
	SendActivationEmail(toEmail, toName, activationURL string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// Configured reports whether enough settings are present to talk to a server.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// SMTPSender implements Sender over net/smtp
type SMTPSender struct {
	config SMTPConfig
	logger zerolog.Logger
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates a new SMTPSender
func NewSMTPSender(config SMTPConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		config: config,
		logger: logger,
		send:   smtp.SendMail,
	}
}

// SendActivationEmail sends the signup activation link. Without SMTP
// credentials the link is logged instead so development setups can activate.
func (s *SMTPSender) SendActivationEmail(toEmail, toName, activationURL string) error {
	if !s.config.Configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("activationURL", activationURL).
			Msg("SMTP not configured - activation email not sent")
		return nil
	}

	subject := "Please verify your e-mail to finish signing up"
	body := fmt.Sprintf(`<html>
<body>
	<p>Hello %s,</p>
	<p>Thank you for signing up for the experiment management system.</p>
	<p>Open the link below to activate your account:</p>
	<p><a href="%s">%s</a></p>
</body>
</html>`, toName, activationURL, activationURL)

	return s.sendHTML(toEmail, subject, body)
}

func (s *SMTPSender) sendHTML(toEmail, subject, htmlBody string) error {
	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var msg strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&msg, "%s: %s\r\n", k, headers[k])
	}
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := s.send(addr, auth, s.config.FromEmail, []string{toEmail}, []byte(msg.String())); err != nil {
		s.logger.Error().Err(err).Str("server", addr).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info().Str("toEmail", toEmail).Msg("Activation email sent")
	return nil
}
