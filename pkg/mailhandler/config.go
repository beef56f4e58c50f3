package mailhandler

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/telekom/logmail/pkg/logevent"
)

// Config is fixed for the lifetime of a Handler.
type Config struct {
	AppName     string            `validate:"required,notblank"`
	Sender      string            `validate:"mailbox"`
	Recipients  []string          `validate:"required,min=1,dive,mailbox"`
	MinSeverity logevent.Severity `validate:"severity"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	// mailbox accepts RFC 5322 addresses, with or without a display name.
	_ = v.RegisterValidation("mailbox", func(fl validator.FieldLevel) bool {
		_, err := mail.ParseAddress(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("severity", func(fl validator.FieldLevel) bool {
		return logevent.Severity(fl.Field().Int()).Valid()
	})
	return v
}

// Validate checks the configuration and returns a *ConfigurationError that
// lists every invalid field.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return NewConfigurationError(err)
	}
	problems := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return NewConfigurationError(problems...)
}

func describe(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Errorf("%s must not be empty", fieldName(fe))
	case "min":
		return fmt.Errorf("%s must contain at least %s entry", fieldName(fe), fe.Param())
	case "mailbox":
		return fmt.Errorf("%s %q is not a valid mail address", fieldName(fe), fe.Value())
	case "severity":
		return fmt.Errorf("%s %v is not a known severity", fieldName(fe), fe.Value())
	default:
		return fmt.Errorf("%s failed %q validation", fieldName(fe), fe.Tag())
	}
}

func fieldName(fe validator.FieldError) string {
	switch fe.StructField() {
	case "AppName":
		return "application name"
	case "Sender":
		return "sender"
	case "MinSeverity":
		return "minimum severity"
	}
	if strings.HasPrefix(fe.StructField(), "Recipients") {
		if fe.Field() == "Recipients" {
			return "recipient list"
		}
		return "recipient"
	}
	return fe.Field()
}

func parseAddresses(list []string) ([]*mail.Address, error) {
	out := make([]*mail.Address, 0, len(list))
	for _, s := range list {
		a, err := mail.ParseAddress(s)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// formatAddress drops the angle brackets net/mail adds around bare addresses.
func formatAddress(a *mail.Address) string {
	if a.Name == "" {
		return a.Address
	}
	return a.String()
}
