package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Event routing metrics
	EventsPublished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "logmail_events_published_total",
		Help: "Total number of log events published to the sink",
	})
	EventsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "logmail_events_dropped_total",
		Help: "Total number of log events that did not qualify for a notification",
	})
	HandlersSubscribed = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "logmail_handlers_subscribed",
		Help: "Number of handlers currently subscribed to the sink",
	})

	// Notification metrics, kind is "alert" or "registration"
	NotificationsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logmail_notifications_sent_total",
		Help: "Total number of notifications handed to the mail transport successfully",
	}, []string{"kind"})
	NotificationsFailed = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logmail_notifications_failed_total",
		Help: "Total number of notifications the mail transport could not deliver",
	}, []string{"kind"})

	// Mail metrics
	MailSendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logmail_mail_send_success_total",
		Help: "Total number of successful mail sends",
	}, []string{"host"})
	MailSendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "logmail_mail_send_failure_total",
		Help: "Total number of failed mail sends",
	}, []string{"host"})
)

func init() {
	prometheus.MustRegister(EventsPublished)
	prometheus.MustRegister(EventsDropped)
	prometheus.MustRegister(HandlersSubscribed)
	prometheus.MustRegister(NotificationsSent)
	prometheus.MustRegister(NotificationsFailed)
	prometheus.MustRegister(MailSendSuccess)
	prometheus.MustRegister(MailSendFailure)
}

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
