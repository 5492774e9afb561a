package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5},
		},
		[]string{"method", "path"},
	)
)

var (
	AppointmentConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "appointment_conflicts_total",
			Help: "Appointment writes rejected because of a calendar conflict",
		},
	)

	PaymentsRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_recorded_total",
			Help: "Payments accepted into the invoice ledger",
		},
	)

	PaymentsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_rejected_total",
			Help: "Payment attempts rejected by ledger validation",
		},
		[]string{"reason"},
	)
)

// Registry holds every collector of the service. It is separate from the
// global default registry so tests can build several routers.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(
		RequestsTotal,
		RequestDuration,
		AppointmentConflicts,
		PaymentsRecorded,
		PaymentsRejected,
	)
}

func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
