// SPDX-FileCopyrightText: 2025 Deutsche Telekom AG
//
// SPDX-License-Identifier: Apache-2.0

package installer

import (
	"errors"
	"sync"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"

	"github.com/telekom/logmail/pkg/config"
	"github.com/telekom/logmail/pkg/logevent"
	"github.com/telekom/logmail/pkg/logsink"
	"github.com/telekom/logmail/pkg/mail"
	"github.com/telekom/logmail/pkg/mailhandler"
	"github.com/telekom/logmail/pkg/system"
)

const (
	// LoggerName names the installer's own logger.
	LoggerName = "logmail-installer"

	RegisteredMessage   = "MailHandler registered"
	UnregisteredMessage = "MailHandler unregistered"
)

// ErrAlreadyStarted is returned by OnStart when the handler is installed.
var ErrAlreadyStarted = errors.New("mail handler is already installed")

// Option configures an Installer.
type Option func(*Installer)

// WithLogger sets the logger for the installer's own diagnostics. It may be
// connected to the hub.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(i *Installer) {
		i.log = l
	}
}

// WithFallbackLogger sets the logger handed to the mail handler for delivery
// failures. It must not be connected to the hub. Without it failures are
// written as JSON lines to stderr.
func WithFallbackLogger(l *zap.SugaredLogger) Option {
	return func(i *Installer) {
		i.fallback = l
	}
}

// WithClock overrides the time source for lifecycle notices.
func WithClock(now func() time.Time) Option {
	return func(i *Installer) {
		i.now = now
	}
}

// Installer owns the lifecycle of one mail handler.
type Installer struct {
	params    config.Params
	hub       *logsink.Hub
	transport mail.Sender
	log       *zap.SugaredLogger
	fallback  *zap.SugaredLogger
	now       func() time.Time

	// lifecycle serializes OnStart and OnStop, which deliver mail while
	// holding it; mu only guards handler so Started never waits on SMTP.
	lifecycle sync.Mutex
	mu        sync.Mutex
	handler   *mailhandler.Handler
}

// New creates an installer. Nothing is validated or subscribed until OnStart.
func New(params config.Params, hub *logsink.Hub, transport mail.Sender, opts ...Option) *Installer {
	i := &Installer{
		params:    params,
		hub:       hub,
		transport: transport,
		now:       time.Now,
	}
	for _, o := range opts {
		o(i)
	}
	if i.log == nil {
		i.log = zap.NewNop().Sugar()
	}
	if i.fallback == nil {
		i.fallback = system.NewFallbackLogger(nil)
	}
	i.log = i.log.Named(LoggerName)
	return i
}

// OnStart validates the configuration, builds the handler, subscribes it to
// the hub and publishes the registration notice. A configuration problem is
// returned as *mailhandler.ConfigurationError and leaves nothing installed.
func (i *Installer) OnStart() error {
	i.lifecycle.Lock()
	defer i.lifecycle.Unlock()

	if i.Started() {
		return ErrAlreadyStarted
	}

	cfg, err := BuildConfig(i.params)
	if err != nil {
		return err
	}

	i.log.Debugw("Mail handler configuration",
		"recipients", cfg.Recipients,
		"minLevel", cfg.MinSeverity.String())

	h, err := mailhandler.New(cfg, i.transport, i.fallback)
	if err != nil {
		return err
	}

	i.hub.Subscribe(h)
	i.setHandler(h)
	i.publish(RegisteredMessage)
	i.log.Infow("Mail handler installed",
		"application", cfg.AppName,
		"recipients", len(cfg.Recipients),
		"minLevel", cfg.MinSeverity.String())
	return nil
}

// OnStop publishes the unregistration notice and detaches the handler. It is
// a no-op when nothing is installed.
func (i *Installer) OnStop() {
	i.lifecycle.Lock()
	defer i.lifecycle.Unlock()

	h := i.Handler()
	if h == nil {
		return
	}
	i.publish(UnregisteredMessage)
	i.hub.Unsubscribe(h)
	i.setHandler(nil)
	_ = h.Close()
	i.log.Info("Mail handler uninstalled")
}

// Started reports whether a handler is installed.
func (i *Installer) Started() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.handler != nil
}

// Handler returns the installed handler, or nil.
func (i *Installer) Handler() *mailhandler.Handler {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.handler
}

func (i *Installer) setHandler(h *mailhandler.Handler) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.handler = h
}

func (i *Installer) publish(msg string) {
	i.hub.Publish(logevent.Event{
		Severity:    logevent.Info,
		Message:     msg,
		LoggerName:  LoggerName,
		OriginClass: logevent.RegistrationOrigin,
		Time:        i.now(),
	})
}

// Logr adapts a zap logger for libraries that log through logr, such as
// Kubernetes clients. When l is tee'd with the hub, their records reach the
// mail handler too.
func Logr(l *zap.Logger) logr.Logger {
	return zapr.NewLogger(l)
}
