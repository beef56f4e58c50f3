// Package metrics defines Prometheus metrics for logmail, covering handled and
// dropped log events, notifications by kind, and SMTP delivery.
package metrics
