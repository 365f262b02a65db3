package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ppiankov/moodbot/internal/model"
)

var (
	initOnce sync.Once

	classificationsCounter  *prometheus.CounterVec
	classifierErrorsCounter prometheus.Counter
	appendErrorsCounter     prometheus.Counter
	statsRequestsCounter    prometheus.Counter
)

// Init registers metrics on the default Prometheus registry exactly once.
func Init() {
	initOnce.Do(func() {
		classificationsCounter = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moodbot_classifications_total",
				Help: "Total number of persisted classifications by sentiment.",
			},
			[]string{"sentiment"},
		)

		classifierErrorsCounter = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "moodbot_classifier_errors_total",
				Help: "Total number of failed classifier calls.",
			},
		)

		appendErrorsCounter = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "moodbot_store_append_errors_total",
				Help: "Total number of failed event log appends.",
			},
		)

		statsRequestsCounter = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "moodbot_stats_requests_total",
				Help: "Total number of stats requests.",
			},
		)

		prometheus.MustRegister(
			classificationsCounter,
			classifierErrorsCounter,
			appendErrorsCounter,
			statsRequestsCounter,
		)

		// Ensure sentiment series are visible at /metrics before first increment.
		for _, s := range model.Sentiments {
			classificationsCounter.WithLabelValues(string(s))
		}
	})
}

func IncClassified(sentiment string) {
	Init()
	classificationsCounter.WithLabelValues(sentiment).Inc()
}

func IncClassifierError() {
	Init()
	classifierErrorsCounter.Inc()
}

func IncAppendError() {
	Init()
	appendErrorsCounter.Inc()
}

func IncStatsRequest() {
	Init()
	statsRequestsCounter.Inc()
}

// Handler returns the HTTP handler serving the default registry.
func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}
