package config

import (
	"os"
	"strings"
)

// Parameter names understood by the installer.
const (
	ParamApplicationName = "application-name"
	ParamSender          = "sender"
	ParamRecipient       = "recipient"
	ParamMinLevel        = "min-level"
)

// DefaultEnvPrefix is prepended to parameter names by EnvParams.
const DefaultEnvPrefix = "LOGMAIL_"

// Params is a read-only source of named parameters.
type Params interface {
	Param(key string) (string, bool)
}

// MapParams serves parameters from a map.
type MapParams map[string]string

func (m MapParams) Param(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// EnvParams serves parameters from the process environment. The key
// "application-name" is looked up as <Prefix>APPLICATION_NAME.
type EnvParams struct {
	Prefix string
	// Lookup defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// NewEnvParams returns EnvParams using the LOGMAIL_ prefix.
func NewEnvParams() EnvParams {
	return EnvParams{Prefix: DefaultEnvPrefix}
}

// EnvName returns the environment variable consulted for key.
func (e EnvParams) EnvName(key string) string {
	return e.Prefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
}

func (e EnvParams) Param(key string) (string, bool) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return lookup(e.EnvName(key))
}

// Chain consults each source in order and returns the first hit.
func Chain(sources ...Params) Params {
	return chain(sources)
}

type chain []Params

func (c chain) Param(key string) (string, bool) {
	for _, p := range c {
		if p == nil {
			continue
		}
		if v, ok := p.Param(key); ok {
			return v, true
		}
	}
	return "", false
}
