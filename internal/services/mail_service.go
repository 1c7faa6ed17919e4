package services

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
)

// MailService delivers transactional email over SMTP.
type MailService struct {
	host     string
	port     string
	username string
	password string
	from     string
}

// NewMailService creates a new MailService.
func NewMailService(host, port, username, password, from string) *MailService {
	return &MailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers a single HTML email.
func (s *MailService) Send(to, subject, html string) error {
	if s.host == "" {
		log.Println("[Mail] SMTP host not configured, skipping send")
		return nil
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: \"SkwerMkt\" <%s>\r\n", s.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(html)

	addr := s.host + ":" + s.port
	var auth smtp.Auth
	if s.username != "" {
		auth = smtp.PlainAuth("", s.username, s.password, s.host)
	}

	if err := smtp.SendMail(addr, auth, s.from, []string{to}, []byte(msg.String())); err != nil {
		log.Printf("[Mail] failed to send to %s: %v", to, err)
		return err
	}

	return nil
}

// SendVerificationOTP emails the code issued at registration.
func (s *MailService) SendVerificationOTP(email, code string) error {
	html := fmt.Sprintf(`<h1>Verify Your Email</h1>
<p>Your OTP is <strong>%s</strong>. It expires in 10 minutes.</p>`, code)
	return s.Send(email, "Email Verification OTP", html)
}

// SendPasswordResetOTP emails the code issued by the forgot-password flow.
func (s *MailService) SendPasswordResetOTP(email, code string) error {
	html := fmt.Sprintf(`<h1>Reset Your Password</h1>
<p>Your OTP is <strong>%s</strong>. It expires in 10 minutes.</p>`, code)
	return s.Send(email, "Password Reset OTP", html)
}
