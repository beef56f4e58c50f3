package mailhandler

import (
	"strings"

	"go.uber.org/multierr"
)

// ConfigurationError reports every problem found while validating the
// handler configuration. It is fatal at startup.
type ConfigurationError struct {
	Err error
}

// NewConfigurationError joins problems into a ConfigurationError. It returns
// nil when no problem is given.
func NewConfigurationError(problems ...error) error {
	err := multierr.Combine(problems...)
	if err == nil {
		return nil
	}
	return &ConfigurationError{Err: err}
}

func (e *ConfigurationError) Error() string {
	problems := e.Problems()
	msgs := make([]string, 0, len(problems))
	for _, p := range problems {
		msgs = append(msgs, p.Error())
	}
	return "invalid mail handler configuration: " + strings.Join(msgs, "; ")
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Problems returns the individual validation failures.
func (e *ConfigurationError) Problems() []error {
	return multierr.Errors(e.Err)
}
