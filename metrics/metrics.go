package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

var (
	tokenExchangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lazada_token_exchanges_total",
			Help: "Total number of authorization code exchanges by result",
		},
		[]string{"result"},
	)

	tokenExchangeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lazada_token_exchange_duration_seconds",
			Help:    "Duration of signed /auth/token/create calls",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		},
	)

	notificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lazada_notifications_total",
			Help: "Total number of operator notifications by channel and result",
		},
		[]string{"channel", "result"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func RecordTokenExchange(result string, d time.Duration) {
	tokenExchangesTotal.WithLabelValues(result).Inc()
	tokenExchangeDuration.Observe(d.Seconds())
}

func RecordNotification(channel, result string) {
	notificationsTotal.WithLabelValues(channel, result).Inc()
}

func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
