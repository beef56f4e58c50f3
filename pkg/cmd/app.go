package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/telekom/logmail/pkg/config"
	"github.com/telekom/logmail/pkg/installer"
	"github.com/telekom/logmail/pkg/logsink"
	"github.com/telekom/logmail/pkg/mail"
	"github.com/telekom/logmail/pkg/system"
)

// app is the wired notification pipeline shared by run and send-test.
type app struct {
	cfg       config.Config
	hub       *logsink.Hub
	log       *zap.Logger
	installer *installer.Installer
	restore   func()
}

func newApp(opts *rootOptions) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg.Defaults()

	hub := logsink.NewHub()
	log, err := system.NewLogger(opts.debug, hub)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	restore := zap.ReplaceGlobals(log)

	// the transport and the handler report on the fallback logger so a
	// failing delivery never re-enters the hub
	fallback := system.NewFallbackLogger(nil)
	transport := mail.NewSender(cfg.Mail, fallback)

	params := config.Chain(config.NewEnvParams(), cfg.Params())
	inst := installer.New(params, hub, transport,
		installer.WithLogger(log.Sugar()),
		installer.WithFallbackLogger(fallback))

	return &app{cfg: cfg, hub: hub, log: log, installer: inst, restore: restore}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
	a.restore()
}
