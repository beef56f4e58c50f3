// Package config handles logmail configuration loading from YAML files and the
// environment, and exposes the notifier settings as key/value parameters for
// the installer.
package config
