package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func NewSendTestCommand(opts *rootOptions) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "send-test",
		Short: "Install the mail handler, log one error event and uninstall it",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(opts)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.installer.OnStart(); err != nil {
				return err
			}
			a.log.Named("logmail-send-test").Error(message, zap.Error(errors.New("test notification requested from the command line")))
			a.installer.OnStop()

			_, _ = fmt.Fprintf(opts.writer, "Test notification submitted for %q\n", message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "logmail test notification", "Message of the test event")
	return cmd
}
