package mailhandler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telekom/logmail/pkg/logevent"
)

func TestConfigValidate(t *testing.T) {
	valid := ordersConfig(logevent.Warning)

	tests := []struct {
		name     string
		mutate   func(c *Config)
		problems []string
	}{
		{
			name:   "valid configuration",
			mutate: func(*Config) {},
		},
		{
			name:     "missing application name",
			mutate:   func(c *Config) { c.AppName = "" },
			problems: []string{"application name must not be empty"},
		},
		{
			name:     "blank application name",
			mutate:   func(c *Config) { c.AppName = "   " },
			problems: []string{"application name must not be empty"},
		},
		{
			name:     "missing sender",
			mutate:   func(c *Config) { c.Sender = "" },
			problems: []string{`sender "" is not a valid mail address`},
		},
		{
			name:     "malformed sender",
			mutate:   func(c *Config) { c.Sender = "noreply-at-orders" },
			problems: []string{`sender "noreply-at-orders" is not a valid mail address`},
		},
		{
			name:     "nil recipient list",
			mutate:   func(c *Config) { c.Recipients = nil },
			problems: []string{"recipient list must not be empty"},
		},
		{
			name:     "empty recipient list",
			mutate:   func(c *Config) { c.Recipients = []string{} },
			problems: []string{"recipient list must contain at least 1 entry"},
		},
		{
			name:     "malformed recipient",
			mutate:   func(c *Config) { c.Recipients = []string{"ops@orders.example", "oncall"} },
			problems: []string{`recipient "oncall" is not a valid mail address`},
		},
		{
			name:     "unknown severity",
			mutate:   func(c *Config) { c.MinSeverity = 0 },
			problems: []string{"minimum severity SEVERITY(0) is not a known severity"},
		},
		{
			name: "several problems at once",
			mutate: func(c *Config) {
				c.AppName = ""
				c.Recipients = nil
			},
			problems: []string{"application name must not be empty", "recipient list must not be empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			cfg.Recipients = append([]string(nil), valid.Recipients...)
			tt.mutate(&cfg)

			err := cfg.Validate()
			if len(tt.problems) == 0 {
				require.NoError(t, err)
				return
			}

			var cerr *ConfigurationError
			require.True(t, errors.As(err, &cerr), "expected *ConfigurationError, got %T", err)
			got := make([]string, 0, len(cerr.Problems()))
			for _, p := range cerr.Problems() {
				got = append(got, p.Error())
			}
			assert.ElementsMatch(t, tt.problems, got)
			for _, p := range tt.problems {
				assert.Contains(t, err.Error(), p)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := ordersConfig(logevent.Warning)
	cfg.Recipients = nil

	h, err := New(cfg, &recordingTransport{}, nil)
	assert.Nil(t, h)
	var cerr *ConfigurationError
	require.ErrorAs(t, err, &cerr)
}

func TestNewConfigurationErrorWithoutProblems(t *testing.T) {
	assert.NoError(t, NewConfigurationError())
	assert.NoError(t, NewConfigurationError(nil, nil))
}
