package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

const (
	// DefaultConfigPath is used when no path is given and LOGMAIL_CONFIG_PATH is unset.
	DefaultConfigPath = "./config.yaml"
	// ConfigPathEnv overrides the default config path.
	ConfigPathEnv = "LOGMAIL_CONFIG_PATH"

	DefaultSMTPPort      = 25
	DefaultListenAddress = ":8081"
)

// Notifier holds the handler parameters. Values are kept as raw strings and
// validated by the installer, so a bad file fails the same way a bad
// environment does.
type Notifier struct {
	ApplicationName string `yaml:"application-name"`
	Sender          string `yaml:"sender"`
	// Recipient is a comma or space separated list of mail addresses.
	Recipient string `yaml:"recipient"`
	MinLevel  string `yaml:"min-level"`
}

// Mail configures the SMTP transport.
type Mail struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	// SSL enables implicit TLS (usually port 465). STARTTLS is used
	// automatically when the server offers it.
	SSL                bool   `yaml:"ssl"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify"`
	LocalName          string `yaml:"localName"`
}

type Server struct {
	ListenAddress string `yaml:"listenAddress"`
}

type Config struct {
	Notifier Notifier `yaml:"notifier"`
	Mail     Mail     `yaml:"mail"`
	Server   Server   `yaml:"server"`
}

// Load loads the logmail configuration from a file path.
// If configPath is empty, LOGMAIL_CONFIG_PATH is consulted before falling
// back to "./config.yaml".
func Load(configPath ...string) (Config, error) {
	path := getEnvString(ConfigPathEnv, DefaultConfigPath)
	if len(configPath) > 0 && configPath[0] != "" {
		path = configPath[0]
	}

	var config Config

	content, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("trying to open logmail config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(content, &config); err != nil {
		return config, fmt.Errorf("error unmarshaling YAML %s: %w", path, err)
	}
	return config, nil
}

// Defaults fills in optional values that were left empty.
func (c *Config) Defaults() {
	if c.Mail.Port == 0 {
		c.Mail.Port = DefaultSMTPPort
	}
	if c.Server.ListenAddress == "" {
		c.Server.ListenAddress = DefaultListenAddress
	}
}

// Params exposes the notifier section as installer parameters. Empty values
// are reported as absent.
func (c Config) Params() MapParams {
	p := MapParams{}
	set := func(key, value string) {
		if value != "" {
			p[key] = value
		}
	}
	set(ParamApplicationName, c.Notifier.ApplicationName)
	set(ParamSender, c.Notifier.Sender)
	set(ParamRecipient, c.Notifier.Recipient)
	set(ParamMinLevel, c.Notifier.MinLevel)
	return p
}

// getEnvString returns the value of an environment variable, or the provided default if not set.
func getEnvString(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}
