// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/pokedex/internal/platform/ctxutil"
	"github.com/taibuivan/pokedex/internal/platform/middleware"
)

type corsConfig struct {
	development bool
	origins     []string
}

func (c corsConfig) IsDevelopment() bool      { return c.development }
func (c corsConfig) AllowedOrigins() []string { return c.origins }

var okHandler = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusOK)
})

/*
TestRequestID_GeneratesAndPropagates checks header generation and reuse.
*/
func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set("X-Request-ID", "client-id")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "client-id", seen)
}

/*
TestPanicRecovery_Returns500 converts panics into a plain 500.
*/
func TestPanicRecovery_Returns500(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	handler := middleware.PanicRecovery(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, "Internal Server Error", recorder.Body.String())
}

/*
TestCORS_Origins covers development, allow-listed, and rejected origins.
*/
func TestCORS_Origins(t *testing.T) {
	tests := []struct {
		name    string
		cfg     corsConfig
		origin  string
		allowed bool
	}{
		{"development_any", corsConfig{development: true}, "http://localhost:3000", true},
		{"production_open_when_unset", corsConfig{}, "https://any.example", true},
		{"production_listed", corsConfig{origins: []string{"https://dex.example"}}, "https://dex.example", true},
		{"production_unlisted", corsConfig{origins: []string{"https://dex.example"}}, "https://evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/pokemons", nil)
			request.Header.Set("Origin", tt.origin)
			recorder := httptest.NewRecorder()

			middleware.CORS(tt.cfg)(okHandler).ServeHTTP(recorder, request)

			if tt.allowed {
				assert.Equal(t, tt.origin, recorder.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
			}
			assert.Equal(t, http.StatusOK, recorder.Code)
		})
	}
}

/*
TestCORS_Preflight short-circuits OPTIONS pre-flight requests.
*/
func TestCORS_Preflight(t *testing.T) {
	request := httptest.NewRequest(http.MethodOptions, "/pokemons", nil)
	request.Header.Set("Origin", "http://localhost:3000")
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()

	middleware.CORS(corsConfig{development: true})(okHandler).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

/*
TestClientIP reads the remote address, after chi's RealIP for proxied requests.
*/
func TestClientIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.1:5555"
	assert.Equal(t, "10.0.0.1", middleware.ClientIP(request))

	request.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "10.0.0.1", middleware.ClientIP(request))

	var seen string
	chimw.RealIP(http.HandlerFunc(func(_ http.ResponseWriter, request *http.Request) {
		seen = middleware.ClientIP(request)
	})).ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "203.0.113.7", seen)
}

/*
TestStructuredLogger_LogsOutcome writes one line with status and level.
*/
func TestStructuredLogger_LogsOutcome(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	var injected bool
	handler := middleware.StructuredLogger(logger)(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		injected = ctxutil.GetLogger(request.Context()) != slog.Default()
		http.Error(writer, "Pokemon not found", http.StatusNotFound)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/pokemons/99?x=1", nil))

	assert.True(t, injected)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &line))
	assert.Equal(t, "http_request_finished", line["msg"])
	assert.Equal(t, "WARN", line["level"])
	assert.EqualValues(t, 404, line["status"])
	assert.Equal(t, "/pokemons/99", line["path"])
	assert.Equal(t, "x=1", line["query"])
}

/*
TestStructuredLogger_DefaultStatus logs 200 when the handler never sets one.
*/
func TestStructuredLogger_DefaultStatus(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	middleware.StructuredLogger(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &line))
	assert.EqualValues(t, 200, line["status"])
	assert.Equal(t, "INFO", line["level"])
}

/*
TestCORS_NoOriginPassesThrough leaves same-origin requests untouched.
*/
func TestCORS_NoOriginPassesThrough(t *testing.T) {
	request := httptest.NewRequest(http.MethodOptions, "/pokemons", nil)
	request.Header.Set("Access-Control-Request-Method", http.MethodPost)
	recorder := httptest.NewRecorder()

	middleware.CORS(corsConfig{development: true})(okHandler).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}
