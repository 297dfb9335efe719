package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "telehealth"

// Metrics groups the collectors exported on /metrics. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	notificationFailures *prometheus.CounterVec
	emailJobs            *prometheus.CounterVec
	gatewayRequests      *prometheus.CounterVec
	gatewayLatency       *prometheus.HistogramVec
	httpRequests         *prometheus.CounterVec
	httpLatency          *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		notificationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_failures_total",
			Help:      "Notification dispatches that failed to reach the mailer",
		}, []string{"type"}),
		emailJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "email_worker",
			Name:      "jobs_total",
			Help:      "Email jobs processed by the worker",
		}, []string{"outcome"}),
		gatewayRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payment_gateway",
			Name:      "requests_total",
			Help:      "Calls made to the payment gateway",
		}, []string{"operation", "status"}),
		gatewayLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "payment_gateway",
			Name:      "request_duration_seconds",
			Help:      "Latency of payment gateway calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests served",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.notificationFailures,
		m.emailJobs,
		m.gatewayRequests,
		m.gatewayLatency,
		m.httpRequests,
		m.httpLatency,
	)
	return m
}

func (m *Metrics) IncNotificationFailure(notificationType string) {
	if m == nil {
		return
	}
	m.notificationFailures.WithLabelValues(notificationType).Inc()
}

func (m *Metrics) ObserveEmailJob(outcome string) {
	if m == nil {
		return
	}
	m.emailJobs.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveGatewayCall(operation string, statusCode int, seconds float64) {
	if m == nil {
		return
	}
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	m.gatewayRequests.WithLabelValues(operation, status).Inc()
	m.gatewayLatency.WithLabelValues(operation).Observe(seconds)
}

func (m *Metrics) ObserveHTTPRequest(method, route string, statusCode int, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	m.httpLatency.WithLabelValues(method, route).Observe(seconds)
}
