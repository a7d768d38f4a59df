package gateway

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/kinecosystem/solana-gateway/metrics"
)

// RequestIDHeader carries the request's correlation ID. An incoming value is
// reused; otherwise one is generated.
const RequestIDHeader = "X-Request-Id"

type contextKey int

const requestIDKey contextKey = iota

var (
	requestCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gateway",
		Name:      "http_requests",
		Help:      "Number of HTTP requests handled",
	}, []string{"endpoint", "method", "status"})
	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gateway",
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests",
		Buckets:   metrics.RequestDurationBuckets,
	}, []string{"endpoint", "method"})
)

func init() {
	requestCounter = metrics.Register(requestCounter).(*prometheus.CounterVec)
	requestDuration = metrics.Register(requestDuration).(*prometheus.HistogramVec)
}

// RequestID returns the correlation ID of the request, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func requestLogger(r *http.Request, log *logrus.Entry) *logrus.Entry {
	if id := RequestID(r.Context()); id != "" {
		return log.WithField("request_id", id)
	}
	return log
}

func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

// instrumentMiddleware logs every request and records its count and latency,
// keyed by route template so that path parameters do not explode cardinality.
func (s *Server) instrumentMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		elapsed := time.Since(start)

		endpoint := r.URL.Path
		if route := mux.CurrentRoute(r); route != nil {
			if tmpl, err := route.GetPathTemplate(); err == nil {
				endpoint = tmpl
			}
		}

		requestCounter.WithLabelValues(endpoint, r.Method, strconv.Itoa(rec.status)).Inc()
		requestDuration.WithLabelValues(endpoint, r.Method).Observe(elapsed.Seconds())

		s.requestMeter.Incr(metrics.WithEndpointTag(endpoint), metrics.WithStatusTag(rec.status))
		s.requestTimer.AddTiming(elapsed, metrics.WithEndpointTag(endpoint), metrics.WithStatusTag(rec.status))

		requestLogger(r, s.log).WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": elapsed,
		}).Debug("handled request")
	})
}

// bodyLimitMiddleware rejects bodies larger than limit. Requests that declare
// their length are rejected up front; the rest fail while decoding.
func bodyLimitMiddleware(limit int64) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeError(w, bodyTooLarge(limit))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

// rateLimit rejects requests once limiter is exhausted. A nil limiter lets
// every request through.
func (s *Server) rateLimit(limiter *rate.Limiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			requestLogger(r, s.log).WithField("remote_addr", r.RemoteAddr).Warn("rate limit exceeded")
			writeError(w, &Error{Kind: KindRateLimited, Message: "too many requests, try again later"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
