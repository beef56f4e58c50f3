package installer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/telekom/logmail/pkg/config"
	"github.com/telekom/logmail/pkg/logevent"
	"github.com/telekom/logmail/pkg/mailhandler"
)

var recipientSeparator = regexp.MustCompile(`[, ]`)

// SplitRecipients splits a comma or space separated address list. Empty
// tokens, as produced by ", " separators, are dropped.
func SplitRecipients(list string) []string {
	var out []string
	for _, token := range recipientSeparator.Split(list, -1) {
		if token = strings.TrimSpace(token); token != "" {
			out = append(out, token)
		}
	}
	return out
}

// BuildConfig reads the handler configuration from p. Every problem found is
// reported in a single *mailhandler.ConfigurationError.
func BuildConfig(p config.Params) (mailhandler.Config, error) {
	var problems []error
	cfg := mailhandler.Config{MinSeverity: logevent.DefaultMinSeverity}

	appName, _ := p.Param(config.ParamApplicationName)
	if strings.TrimSpace(appName) == "" {
		problems = append(problems, fmt.Errorf("parameter %q is required", config.ParamApplicationName))
	}
	cfg.AppName = appName

	// the sender is optional here and validated by the handler
	cfg.Sender, _ = p.Param(config.ParamSender)

	recipients, _ := p.Param(config.ParamRecipient)
	if strings.TrimSpace(recipients) == "" {
		problems = append(problems, fmt.Errorf("parameter %q is required (comma-separated list of mail addresses)", config.ParamRecipient))
	} else {
		cfg.Recipients = SplitRecipients(recipients)
	}

	if level, ok := p.Param(config.ParamMinLevel); ok {
		sev, err := logevent.ParseSeverity(level)
		if err != nil {
			problems = append(problems, fmt.Errorf("parameter %q: %w", config.ParamMinLevel, err))
		} else {
			cfg.MinSeverity = sev
		}
	}

	if len(problems) > 0 {
		return cfg, mailhandler.NewConfigurationError(problems...)
	}
	return cfg, nil
}
