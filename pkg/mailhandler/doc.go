// Package mailhandler forwards log events as plain text email notifications.
//
// A Handler applies a two-row decision table to every event it receives:
//
//  1. alert: the event is at or above the configured minimum severity and
//     was not emitted by the anonymous logger.
//  2. registration: otherwise, the event is a lifecycle notice emitted by
//     the installer.
//
// Anything else is dropped. Each qualifying event triggers exactly one
// synchronous delivery attempt. Delivery failures are written to a fallback
// logger and never returned to the caller.
package mailhandler
