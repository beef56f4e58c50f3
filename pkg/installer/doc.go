// Package installer wires a mail handler into a hosting process: it builds
// and validates the handler configuration from key/value parameters,
// subscribes the handler to the log sink at startup and announces the
// handler coming online and going offline.
package installer
