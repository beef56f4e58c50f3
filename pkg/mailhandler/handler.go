// SPDX-FileCopyrightText: 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package mailhandler

import (
	"fmt"
	"net/mail"

	"go.uber.org/zap"

	"github.com/telekom/logmail/pkg/logevent"
	mailtransport "github.com/telekom/logmail/pkg/mail"
	"github.com/telekom/logmail/pkg/metrics"
)

// Handler forwards qualifying log events by mail. It holds only read-only
// state, so Handle is safe for concurrent use.
type Handler struct {
	appName     string
	minSeverity logevent.Severity
	sender      string
	recipients  []string
	transport   mailtransport.Sender
	fallback    *zap.SugaredLogger
}

// New validates cfg and builds a Handler. The fallback logger records
// delivery failures and must not be connected to the sink the handler is
// subscribed to. A nil fallback discards those records.
func New(cfg Config, transport mailtransport.Sender, fallback *zap.SugaredLogger) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if transport == nil {
		return nil, NewConfigurationError(fmt.Errorf("mail transport must not be nil"))
	}
	sender, err := mail.ParseAddress(cfg.Sender)
	if err != nil {
		return nil, NewConfigurationError(fmt.Errorf("sender %q is not a valid mail address: %w", cfg.Sender, err))
	}
	recipients, err := parseAddresses(cfg.Recipients)
	if err != nil {
		return nil, NewConfigurationError(fmt.Errorf("recipient list is invalid: %w", err))
	}
	if fallback == nil {
		fallback = zap.NewNop().Sugar()
	}

	to := make([]string, 0, len(recipients))
	for _, r := range recipients {
		to = append(to, formatAddress(r))
	}

	return &Handler{
		appName:     cfg.AppName,
		minSeverity: cfg.MinSeverity,
		sender:      formatAddress(sender),
		recipients:  to,
		transport:   transport,
		fallback:    fallback,
	}, nil
}

// AppName returns the configured application name.
func (h *Handler) AppName() string {
	return h.appName
}

// MinSeverity returns the forwarding threshold.
func (h *Handler) MinSeverity() logevent.Severity {
	return h.minSeverity
}

// Recipients returns a copy of the normalized recipient addresses.
func (h *Handler) Recipients() []string {
	return append([]string(nil), h.recipients...)
}

// Notification applies the decision table to ev. The second result is false
// when the event does not qualify.
func (h *Handler) Notification(ev logevent.Event) (Notification, bool) {
	switch {
	case ev.Severity >= h.minSeverity && !ev.IsAnonymous():
		return formatAlert(h.appName, ev), true
	case ev.IsRegistration():
		return formatRegistration(h.appName, ev), true
	default:
		return Notification{}, false
	}
}

// Handle sends at most one notification for ev. It always returns, whatever
// the delivery outcome.
func (h *Handler) Handle(ev logevent.Event) {
	n, ok := h.Notification(ev)
	if !ok {
		metrics.EventsDropped.Inc()
		return
	}
	h.deliver(n)
}

func (h *Handler) deliver(n Notification) {
	defer func() {
		if r := recover(); r != nil {
			metrics.NotificationsFailed.WithLabelValues(string(n.Kind)).Inc()
			h.fallback.Errorw("Can't forward log record to recipients",
				"kind", n.Kind, "subject", n.Subject, "panic", r)
		}
	}()

	if err := h.transport.Send(h.sender, h.recipients, n.Subject, n.Body); err != nil {
		metrics.NotificationsFailed.WithLabelValues(string(n.Kind)).Inc()
		h.fallback.Errorw("Can't forward log record to recipients",
			"kind", n.Kind, "subject", n.Subject, "error", err)
		return
	}
	metrics.NotificationsSent.WithLabelValues(string(n.Kind)).Inc()
}

// Flush is a no-op: nothing is buffered.
func (h *Handler) Flush() error {
	return nil
}

// Close is a no-op: the handler owns no resources.
func (h *Handler) Close() error {
	return nil
}
