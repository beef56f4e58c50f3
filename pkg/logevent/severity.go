package logevent

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Severity is a totally ordered log importance level. Higher values are more
// severe, so threshold checks are plain integer comparisons.
type Severity int

const (
	Finest  Severity = 300
	Finer   Severity = 400
	Fine    Severity = 500
	Config  Severity = 700
	Info    Severity = 800
	Warning Severity = 900
	Severe  Severity = 1000
)

// DefaultMinSeverity is used when no minimum level is configured.
const DefaultMinSeverity = Severe

var severityNames = map[Severity]string{
	Finest:  "FINEST",
	Finer:   "FINER",
	Fine:    "FINE",
	Config:  "CONFIG",
	Info:    "INFO",
	Warning: "WARNING",
	Severe:  "SEVERE",
}

// Severities lists every level from highest to lowest.
func Severities() []Severity {
	return []Severity{Severe, Warning, Info, Config, Fine, Finer, Finest}
}

// ParseSeverity accepts a level name (case-insensitive) or the numeric value
// of one of the known levels.
func ParseSeverity(s string) (Severity, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for sev, n := range severityNames {
		if n == name {
			return sev, nil
		}
	}
	if v, err := strconv.Atoi(name); err == nil {
		if sev := Severity(v); sev.Valid() {
			return sev, nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q (expected one of SEVERE, WARNING, INFO, CONFIG, FINE, FINER, FINEST)", s)
}

// Valid reports whether s is one of the known levels.
func (s Severity) Valid() bool {
	_, ok := severityNames[s]
	return ok
}

func (s Severity) String() string {
	if n, ok := severityNames[s]; ok {
		return n
	}
	return fmt.Sprintf("SEVERITY(%d)", int(s))
}

// UnmarshalText lets severities be read from YAML and flags.
func (s *Severity) UnmarshalText(text []byte) error {
	sev, err := ParseSeverity(string(text))
	if err != nil {
		return err
	}
	*s = sev
	return nil
}

// MarshalText renders the level name.
func (s Severity) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid severity %d", int(s))
	}
	return []byte(s.String()), nil
}

// FromZapLevel maps a zap level onto the severity scale.
func FromZapLevel(l zapcore.Level) Severity {
	switch {
	case l >= zapcore.ErrorLevel:
		return Severe
	case l == zapcore.WarnLevel:
		return Warning
	case l == zapcore.InfoLevel:
		return Info
	default:
		return Fine
	}
}
