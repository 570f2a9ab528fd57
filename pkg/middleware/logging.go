package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/tramova/tramova/pkg/composables"
	"github.com/tramova/tramova/pkg/configuration"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

// RequestLogger attaches a request-scoped logger with a request id and logs
// one line per request.
func RequestLogger(logger *logrus.Logger) mux.MiddlewareFunc {
	header := configuration.Use().RequestIDHeader
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(header))
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(header, requestID)

			entry := logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})
			sw := &statusWriter{ResponseWriter: w}
			start := time.Now()

			next.ServeHTTP(sw, r.WithContext(composables.WithLogger(r.Context(), entry)))

			entry.WithFields(logrus.Fields{
				"status":   sw.Status(),
				"duration": time.Since(start).String(),
			}).Info("request completed")
		})
	}
}
