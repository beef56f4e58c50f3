package cmd

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

type Config struct {
	ConfigPath   string
	OutputWriter io.Writer
}

func DefaultConfig() Config {
	return Config{OutputWriter: os.Stdout}
}

type rootOptions struct {
	configPath string
	debug      bool
	writer     io.Writer
}

func NewRootCommand(cfg Config) *cobra.Command {
	opts := &rootOptions{configPath: cfg.ConfigPath, writer: cfg.OutputWriter}
	if opts.writer == nil {
		opts.writer = os.Stdout
	}

	root := &cobra.Command{
		Use:           "logmail",
		Short:         "Forward log events as email notifications",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(opts.writer)

	root.PersistentFlags().StringVar(&opts.configPath, "config", opts.configPath,
		"Path to the logmail configuration file (defaults to $LOGMAIL_CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug level logging")

	root.AddCommand(
		NewRunCommand(opts),
		NewSendTestCommand(opts),
		NewVersionCommand(),
	)
	return root
}
