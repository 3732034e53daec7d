package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel_booking",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel_booking",
			Name:      "bookings_created_total",
			Help:      "Bookings created by transport type.",
		},
		[]string{"transport_type"},
	)

	bookingVerifications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "travel_booking",
			Name:      "booking_verifications_total",
			Help:      "Admin verifications by action.",
		},
		[]string{"action"},
	)

	paymentProofs = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "travel_booking",
			Name:      "payment_proofs_uploaded_total",
			Help:      "Payment proof uploads accepted.",
		},
	)

	ephemeralKey = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "travel_booking",
			Name:      "ephemeral_signing_key",
			Help:      "1 when the token signing key was generated at startup.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingsCreated, bookingVerifications, paymentProofs, ephemeralKey)
	})
}

// IncHTTP counts a finished request.
func IncHTTP(method, route, status string) {
	httpRequests.WithLabelValues(method, route, status).Inc()
}

func BookingCreated(transportType string) {
	bookingsCreated.WithLabelValues(transportType).Inc()
}

func BookingVerified(action string) {
	bookingVerifications.WithLabelValues(action).Inc()
}

func PaymentProofUploaded() { paymentProofs.Inc() }

// SetEphemeralKey records whether the signing key is ephemeral.
func SetEphemeralKey(ephemeral bool) {
	if ephemeral {
		ephemeralKey.Set(1)
		return
	}
	ephemeralKey.Set(0)
}
