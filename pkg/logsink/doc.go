// Package logsink provides Hub, an injectable process-wide log sink. Hub is a
// zapcore.Core: tee it into the process logger and every log call is
// converted into a logevent.Event and dispatched to the subscribed handlers.
package logsink
