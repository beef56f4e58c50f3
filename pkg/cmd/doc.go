// Package cmd implements the logmail command line: running the notifier next
// to a log-producing process, sending a test notification and printing
// version information.
package cmd
