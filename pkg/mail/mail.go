package mail

import (
	"crypto/tls"
	"fmt"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/telekom/logmail/pkg/config"
	"github.com/telekom/logmail/pkg/metrics"
)

// NotificationIDHeader carries a unique id per message so a notification can
// be traced through the relay logs.
const NotificationIDHeader = "X-Notification-Id"

// Sender delivers one plain text mail.
type Sender interface {
	Send(from string, receivers []string, subject, body string) error
	GetHost() string
	GetPort() int
}

// DeliveryError is returned when the SMTP server rejects a message or cannot
// be reached.
type DeliveryError struct {
	Host string
	Port int
	Err  error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivering mail via %s:%d: %v", e.Host, e.Port, e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}

type sender struct {
	dialer *gomail.Dialer
	log    *zap.SugaredLogger
}

// NewSender creates an SMTP sender from the mail configuration. The logger
// must not feed back into the notification sink.
func NewSender(cfg config.Mail, log *zap.SugaredLogger) Sender {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log = log.Named("mail")
	port := cfg.Port
	if port == 0 {
		port = config.DefaultSMTPPort
	}
	log.Debugw("Initializing mail sender", "host", cfg.Host, "port", port, "user", cfg.User, "ssl", cfg.SSL)

	d := gomail.NewDialer(cfg.Host, port, cfg.User, cfg.Password)
	d.SSL = d.SSL || cfg.SSL
	if cfg.LocalName != "" {
		d.LocalName = cfg.LocalName
	}
	if cfg.InsecureSkipVerify {
		log.Warnw("InsecureSkipVerify is enabled for mail TLS connection", "host", cfg.Host)
		d.TLSConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- explicitly configured
	}

	return &sender{dialer: d, log: log}
}

func (s *sender) Send(from string, receivers []string, subject, body string) error {
	id := uuid.NewString()
	s.log.Debugw("Sending mail", "id", id, "receivers", len(receivers), "subject", subject)

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", receivers...)
	msg.SetHeader("Subject", subject)
	msg.SetHeader(NotificationIDHeader, id)
	msg.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(msg); err != nil {
		metrics.MailSendFailure.WithLabelValues(s.GetHost()).Inc()
		return &DeliveryError{Host: s.GetHost(), Port: s.GetPort(), Err: errors.WithStack(err)}
	}

	metrics.MailSendSuccess.WithLabelValues(s.GetHost()).Inc()
	s.log.Debugw("Mail sent", "id", id, "receivers", len(receivers))
	return nil
}

func (s *sender) GetHost() string {
	return s.dialer.Host
}

func (s *sender) GetPort() int {
	return s.dialer.Port
}
