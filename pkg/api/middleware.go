package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"

	"profanity/pkg/logger"
)

// maxRequestIDLen bounds client supplied request IDs. Longer ones are
// replaced with a generated ID.
const maxRequestIDLen = 128

type ctxKeyRequestID struct{}

var RequestIDKey = ctxKeyRequestID{}

// MessageWriter is satisfied by *kafka.Writer.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

func (api *API) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := strings.TrimSpace(r.Header.Get("X-Request-Id"))
		if reqID == "" || len(reqID) > maxRequestIDLen {
			id, err := uuid.NewV4()
			if err != nil {
				log.Errorf("[requestIDMiddleware] failed to generate request ID for %v: %v", r.RemoteAddr, err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			reqID = id.String()
		}

		w.Header().Set("X-Request-Id", reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), RequestIDKey, reqID)))
	})
}

func (api *API) headerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware publishes a LogEntry for every request once its response
// has been written.
func (api *API) loggingMiddleware(kWriter MessageWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lw := logger.New(w)

			next.ServeHTTP(lw, r)

			api.publish(kWriter, api.logEntry(r, lw, start))
		})
	}
}

func (api *API) logEntry(r *http.Request, lw *logger.ResponseLogger, start time.Time) LogEntry {
	return LogEntry{
		Timestamp:  start.UTC(),
		IP:         getClientIP(r),
		StatusCode: lw.Status(),
		RequestID:  GetRequestID(r.Context()),
		Method:     r.Method,
		Path:       r.URL.Path,
		Duration:   time.Since(start).Seconds(),
		Bytes:      lw.Bytes(),
		Service:    api.ServiceName,
	}
}

func (api *API) publish(kWriter MessageWriter, entry LogEntry) {
	sID := shorten(entry.RequestID)

	b, err := json.Marshal(entry)
	if err != nil {
		log.Errorf("[loggingMiddleware][%s] failed to marshal log entry: %v", sID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := kWriter.WriteMessages(ctx, kafka.Message{Key: []byte(entry.RequestID), Value: b}); err != nil {
		log.Errorf("[loggingMiddleware][%s] failed to write log to Kafka: %v", sID, err)
		return
	}
	log.Debugf("[loggingMiddleware][%s] %s %s %d %dB", sID, entry.Method, entry.Path, entry.StatusCode, entry.Bytes)
}

// GetRequestID returns the request ID stored in ctx, or an empty string.
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(RequestIDKey).(string); ok {
		return v
	}
	return ""
}

// getClientIP prefers the first address of X-Forwarded-For.
func getClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		ip, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(ip)
	}

	return r.RemoteAddr
}
