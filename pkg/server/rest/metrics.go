package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	HttpRequestCounter *prometheus.CounterVec
	HttpDuration       *prometheus.HistogramVec
	RouteCacheCounter  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HttpRequestCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "navigatorx",
			Name:      "http_requests_total",
			Help:      "number of http requests by path, method and status code",
		}, []string{"path", "method", "code"}),
		HttpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "navigatorx",
			Name:      "http_request_duration_seconds",
			Help:      "duration of http requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path", "method"}),
		RouteCacheCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "navigatorx",
			Name:      "route_cache_lookups_total",
			Help:      "route cache lookups by result (hit/miss)",
		}, []string{"result"}),
	}
	reg.MustRegister(m.HttpRequestCounter, m.HttpDuration, m.RouteCacheCounter)
	return m
}

func (m *Metrics) CacheHit() {
	m.RouteCacheCounter.WithLabelValues("hit").Inc()
}

func (m *Metrics) CacheMiss() {
	m.RouteCacheCounter.WithLabelValues("miss").Inc()
}

// PromeHttpMiddleware record request count & latency per chi route pattern.
func PromeHttpMiddleware(m *Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			m.HttpRequestCounter.WithLabelValues(path, r.Method, strconv.Itoa(status)).Inc()
			m.HttpDuration.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
		}
		return http.HandlerFunc(fn)
	}
}
