package notify

import (
	"fmt"
	"time"

	gomail "gopkg.in/gomail.v2"

	"github.com/juancarlosGilardi/flask-marcaciones/config"
)

// Notifier is the outbound side channel fired on accepted Entry and Exit
// events. Implementations must never make a failed delivery look like a
// failed marking.
type Notifier interface {
	SendMarking(name, email, dni, kind string) error
}

// Mailer sends a short plain-text message per marking over SMTP. When the
// configuration is incomplete the mailer is disabled and SendMarking is a
// no-op.
type Mailer struct {
	cfg config.SMTP
	now func() time.Time
}

func NewMailer(cfg config.SMTP) *Mailer {
	return &Mailer{cfg: cfg, now: time.Now}
}

func (m *Mailer) SendMarking(name, email, dni, kind string) error {
	if !m.cfg.Enabled() {
		return nil
	}

	now := m.now()
	body := fmt.Sprintf("User: %s\nEmail: %s\nDNI: %s\nType: %s\nDate: %s\nTime: %s",
		name, email, dni, kind,
		now.Format("02/01/2006"), now.Format("15:04:05"))

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", m.cfg.To)
	msg.SetHeader("Subject", fmt.Sprintf("New marking - %s (%s)", name, kind))
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.From, m.cfg.Password)
	return dialer.DialAndSend(msg)
}
