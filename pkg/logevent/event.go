package logevent

import "time"

const (
	// AnonymousLogger is the logger name the logging facility uses for its own
	// diagnostics. Events from it are never forwarded by severity, which keeps
	// delivery failures from turning into more notifications.
	AnonymousLogger = "anonymous"

	// RegistrationOrigin identifies lifecycle notices emitted by the installer.
	RegistrationOrigin = "github.com/telekom/logmail/pkg/installer.Installer"
)

// Event is a single received log record. It is passed by value and never
// modified after it has been built.
type Event struct {
	Severity Severity
	// Message is a fmt template rendered with Args.
	Message string
	Args    []any
	// Err is the error associated with the record, if any.
	Err error
	// Stack is a stack trace captured by the logging facility, if any.
	Stack       string
	LoggerName  string
	OriginClass string
	Time        time.Time
}

// IsAnonymous reports whether the event was emitted by the anonymous logger.
func (e Event) IsAnonymous() bool {
	return e.LoggerName == AnonymousLogger
}

// IsRegistration reports whether the event is an installer lifecycle notice.
func (e Event) IsRegistration() bool {
	return e.OriginClass == RegistrationOrigin
}
