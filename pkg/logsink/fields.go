package logsink

import (
	"go.uber.org/zap"

	"github.com/telekom/logmail/pkg/logevent"
)

// Field keys the hub interprets when building events.
const (
	ErrorKey       = "error"
	OriginClassKey = "origin_class"
	ArgsKey        = "args"
)

// OriginClass marks the source identifier of a log call.
func OriginClass(name string) zap.Field {
	return zap.String(OriginClassKey, name)
}

// Args attaches positional arguments for the message template. The message
// is then treated as a fmt template by the handlers.
func Args(args ...any) zap.Field {
	return zap.Any(ArgsKey, args)
}

// Anonymous returns a logger writing to l's core under the anonymous logger
// name. Events from it are never forwarded by severity.
func Anonymous(l *zap.Logger) *zap.Logger {
	return zap.New(l.Core()).Named(logevent.AnonymousLogger)
}
