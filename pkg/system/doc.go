// Package system provides process-wide logging setup: the main zap logger,
// the fallback diagnostic logger and test loggers.
package system
