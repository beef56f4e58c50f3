// Package mail provides the SMTP transport used to deliver log notifications.
// Each Send is a single synchronous delivery attempt; failures are reported as
// *DeliveryError and never retried.
package mail
