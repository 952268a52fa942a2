package main

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRecoverPanic(t *testing.T) {
	app := newBareApplication()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	app.recoverPanic(handler).ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.Equal(t, "close", res.Header().Get("Connection"))
	assert.Contains(t, res.Body.String(), "the server encountered a problem")
}

func TestLogRequest(t *testing.T) {
	app := newBareApplication()

	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestID(r)
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	res := httptest.NewRecorder()

	app.logRequest(handler).ServeHTTP(res, req)

	assert.Equal(t, http.StatusTeapot, res.Code)

	id := res.Header().Get("X-Request-ID")
	assert.Equal(t, id, seen)

	_, err := uuid.Parse(id)
	assert.NoError(t, err)
}

func TestPanicIsLoggedWithRequestID(t *testing.T) {
	var logs bytes.Buffer
	app := newBareApplication()
	app.logger = slog.New(slog.NewTextHandler(&logs, nil))

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("something went wrong")
	})

	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	res := httptest.NewRecorder()

	app.logRequest(app.recoverPanic(handler)).ServeHTTP(res, req)

	assert.Equal(t, http.StatusInternalServerError, res.Code)

	id := res.Header().Get("X-Request-ID")
	assert.NotEmpty(t, id)

	out := logs.String()
	assert.Contains(t, out, "msg=\"something went wrong\"")
	assert.Contains(t, out, "msg=\"request completed\"")
	assert.Contains(t, out, "status=500")
	assert.Equal(t, 2, strings.Count(out, "request_id="+id))
}

func TestEnableCORS(t *testing.T) {
	app := newBareApplication()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	middleware := app.enableCORS(handler)

	tests := []struct {
		name                       string
		origin                     string
		method                     string
		accessControlRequestMethod string
		expectedStatus             int
		preflight                  bool
	}{
		{
			name:           "simple request",
			origin:         "http://example.com",
			method:         http.MethodGet,
			expectedStatus: http.StatusOK,
		},
		{
			name:                       "preflight request",
			origin:                     "http://another.example",
			method:                     http.MethodOptions,
			accessControlRequestMethod: http.MethodPut,
			expectedStatus:             http.StatusNoContent,
			preflight:                  true,
		},
		{
			name:           "plain options request",
			origin:         "http://example.com",
			method:         http.MethodOptions,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.accessControlRequestMethod != "" {
				req.Header.Set("Access-Control-Request-Method", tt.accessControlRequestMethod)
			}

			res := httptest.NewRecorder()

			middleware.ServeHTTP(res, req)

			assert.Equal(t, tt.expectedStatus, res.Code)
			assert.Equal(t, "*", res.Header().Get("Access-Control-Allow-Origin"))

			if tt.preflight {
				assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", res.Header().Get("Access-Control-Allow-Methods"))
				assert.Equal(t, "Content-Type, X-Request-ID", res.Header().Get("Access-Control-Allow-Headers"))
			} else {
				assert.Empty(t, res.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}

func TestRoutesPreflight(t *testing.T) {
	ts := newTestServer(t, newBareApplication().routes())

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/blogs/1", nil)
	assert.NoError(t, err)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)

	res, err := ts.Client().Do(req)
	assert.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusNoContent, res.StatusCode)
	assert.Equal(t, "*", res.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}
