package service

import (
	"crypto/tls"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"umkmotion-otp/config"
)

// sendTimeout bounds the SMTP round trip; gomail has no deadline of its own
const sendTimeout = 15 * time.Second

type EmailService struct {
	dialer     *gomail.Dialer
	from       string
	configured bool
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Pass)
	dialer.SSL = cfg.Secure
	dialer.TLSConfig = &tls.Config{ServerName: cfg.Host}

	return &EmailService{
		dialer:     dialer,
		from:       cfg.From,
		configured: cfg.IsConfigured(),
	}
}

// IsConfigured reports whether the transport has credentials to dial with
func (s *EmailService) IsConfigured() bool {
	return s.configured
}

// SendOTP delivers the code to the user. A timed-out send is reported as a
// plain delivery failure; the underlying goroutine is abandoned.
func (s *EmailService) SendOTP(to, subject, code string, ttl time.Duration) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", otpBody(code, ttl))

	done := make(chan error, 1)
	go func() {
		done <- s.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(sendTimeout):
		return fmt.Errorf("smtp send to %s timed out after %s", to, sendTimeout)
	}
}

func otpBody(code string, ttl time.Duration) string {
	minutes := int(ttl.Minutes())
	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px;">
			<h2>Halo!</h2>
			<p>Kode verifikasi UMKMotion kamu adalah:</p>
			<h1 style="color: #16a34a; letter-spacing: 5px;">%s</h1>
			<p>Kode ini berlaku selama %d menit.</p>
			<p>Jika kamu tidak meminta kode ini, abaikan email ini.</p>
		</div>
	`, code, minutes)
}
