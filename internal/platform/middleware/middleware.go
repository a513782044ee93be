// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package middleware provides the cross-cutting HTTP chain in front of the
catalog routes.

Order in the server:

  - chi RealIP rewrites RemoteAddr from proxy headers.
  - RequestID tags the request and the response.
  - StructuredLogger puts a request logger in the context and logs the outcome.
  - RateLimit throttles each client address.
  - PanicRecovery turns a panic into the API's plain-text 500.
  - CORS answers browser pre-flights and sets allow headers.
*/
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"slices"
	"strings"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/taibuivan/pokedex/internal/platform/apperr"
	"github.com/taibuivan/pokedex/internal/platform/constants"
	"github.com/taibuivan/pokedex/internal/platform/ctxutil"
	"github.com/taibuivan/pokedex/internal/platform/respond"
	"github.com/taibuivan/pokedex/pkg/uuidv7"
)

// # Request Tracing

// RequestID reuses the caller's X-Request-ID or issues a UUIDv7, and echoes it
// on the response.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			requestID := request.Header.Get(constants.HeaderXRequestID)
			if requestID == "" {
				requestID = uuidv7.New()
			}

			writer.Header().Set(constants.HeaderXRequestID, requestID)
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithRequestID(request.Context(), requestID)))
		})
	}
}

// # Activity Logging

// StructuredLogger stores a request-scoped logger in the context and writes
// one "http_request_finished" line per request. 4xx lines are warnings and
// 5xx lines are errors.
func StructuredLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			started := time.Now()

			requestLogger := logger.With(
				slog.String("request_id", ctxutil.GetRequestID(request.Context())),
				slog.String("method", request.Method),
				slog.String("path", request.URL.Path),
				slog.String("client", ClientIP(request)),
			)
			ctx := ctxutil.WithLogger(request.Context(), requestLogger)

			wrapped := chimw.NewWrapResponseWriter(writer, request.ProtoMajor)
			next.ServeHTTP(wrapped, request.WithContext(ctx))

			status := wrapped.Status()
			if status == 0 {
				status = http.StatusOK
			}

			attrs := []slog.Attr{
				slog.Int("status", status),
				slog.Int("bytes", wrapped.BytesWritten()),
				slog.Duration("latency", time.Since(started)),
			}
			if query := request.URL.RawQuery; query != "" {
				attrs = append(attrs, slog.String("query", query))
			}

			requestLogger.LogAttrs(ctx, levelFor(status), "http_request_finished", attrs...)
		})
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// # Rate Limiting

// visitors holds one token bucket per client address.
type visitors struct {
	mu      sync.Mutex
	buckets map[string]*visitor
	rps     rate.Limit
	burst   int
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newVisitors(rps float64, burst int) *visitors {
	return &visitors{buckets: make(map[string]*visitor), rps: rate.Limit(rps), burst: burst}
}

// allow takes one token from the bucket of client, creating it on first use.
func (v *visitors) allow(client string, now time.Time) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	entry, ok := v.buckets[client]
	if !ok {
		entry = &visitor{limiter: rate.NewLimiter(v.rps, v.burst)}
		v.buckets[client] = entry
	}
	entry.lastSeen = now
	return entry.limiter.AllowN(now, 1)
}

// sweep forgets clients idle for longer than ttl.
func (v *visitors) sweep(now time.Time, ttl time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for client, entry := range v.buckets {
		if now.Sub(entry.lastSeen) > ttl {
			delete(v.buckets, client)
		}
	}
}

// RateLimit answers 429 once a client address exceeds
// [constants.DefaultRateLimitRPS]. Idle clients are swept until ctx ends.
func RateLimit(ctx context.Context) func(http.Handler) http.Handler {
	return rateLimit(ctx, newVisitors(constants.DefaultRateLimitRPS, constants.DefaultRateLimitBurst))
}

func rateLimit(ctx context.Context, clients *visitors) func(http.Handler) http.Handler {
	go func() {
		ticker := time.NewTicker(constants.RateLimitCleanupInterval)
		defer ticker.Stop()

		for {
			select {
			case now := <-ticker.C:
				clients.sweep(now, constants.RateLimitClientTTL)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if !clients.allow(ClientIP(request), time.Now()) {
				respond.Error(writer, request, apperr.RateLimited())
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// # Reliability

// PanicRecovery converts a handler panic into "Internal Server Error" and
// logs the stack. [http.ErrAbortHandler] is re-raised so the server can
// abort the connection.
func PanicRecovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			defer func() {
				recovered := recover()
				if recovered == nil {
					return
				}
				if recovered == http.ErrAbortHandler {
					panic(recovered)
				}

				logger.ErrorContext(request.Context(), "panic_recovered",
					slog.String("request_id", ctxutil.GetRequestID(request.Context())),
					slog.String("path", request.URL.Path),
					slog.Any("panic", recovered),
					slog.String("stack", string(debug.Stack())),
				)

				respond.Error(writer, request, apperr.Internal(fmt.Errorf("panic: %v", recovered)))
			}()

			next.ServeHTTP(writer, request)
		})
	}
}

// # Cross-Origin Resource Sharing

// AppConfig is the part of the configuration CORS reads.
type AppConfig interface {
	IsDevelopment() bool
	AllowedOrigins() []string
}

var (
	corsMethods = strings.Join([]string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions}, ", ")
	corsHeaders = strings.Join([]string{"Accept", constants.HeaderContentType, constants.HeaderXRequestID}, ", ")
)

// CORS echoes an accepted Origin back in Access-Control-Allow-Origin.
//
// Development accepts every origin. Other environments accept the configured
// origins, or every origin when none are configured. Pre-flight requests end
// here with 204.
func CORS(cfg AppConfig) func(http.Handler) http.Handler {
	allowed := cfg.AllowedOrigins()
	acceptAll := cfg.IsDevelopment() || len(allowed) == 0

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			origin := request.Header.Get(constants.HeaderOrigin)

			if origin != "" && (acceptAll || slices.Contains(allowed, origin)) {
				header := writer.Header()
				header.Set("Access-Control-Allow-Origin", origin)
				header.Add("Vary", constants.HeaderOrigin)
				header.Set("Access-Control-Allow-Methods", corsMethods)
				header.Set("Access-Control-Allow-Headers", corsHeaders)
				header.Set("Access-Control-Expose-Headers", constants.HeaderXRequestID)
			}

			preflight := origin != "" &&
				request.Method == http.MethodOptions &&
				request.Header.Get("Access-Control-Request-Method") != ""
			if preflight {
				writer.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// # Helpers

// ClientIP returns the host part of RemoteAddr. Proxy headers are applied
// earlier by chi's RealIP middleware.
func ClientIP(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}
	return host
}
