// Package logevent defines the log event model shared by the sink, the mail
// handler and the installer: the ordered severity enumeration and the
// immutable Event record.
package logevent
