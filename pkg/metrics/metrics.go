package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Booking event metrics
	EventsProcessed *prometheus.CounterVec
	EventsFailed    *prometheus.CounterVec

	// Notification email metrics
	EmailsSent   prometheus.Counter
	EmailsFailed prometheus.Counter
}

// NewMetrics creates and registers all application metrics
func NewMetrics(namespace, subsystem string) *Metrics {
	return &Metrics{
		EventsProcessed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "booking_events_processed_total",
			Help:      "Total number of booking events consumed from the broker",
		}, []string{"channel"}),
		EventsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "booking_events_failed_total",
			Help:      "Total number of booking events that could not be handled",
		}, []string{"channel"}),
		EmailsSent: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notification_emails_sent_total",
			Help:      "Total number of notification emails sent",
		}),
		EmailsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "notification_emails_failed_total",
			Help:      "Total number of notification emails that failed to send",
		}),
	}
}
