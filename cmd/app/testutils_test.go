package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/webblog/api/internal/blogservice"
	"github.com/webblog/api/internal/common"
	"github.com/webblog/api/internal/userservice"
)

type testServer struct {
	*httptest.Server
}

func newTestServer(t *testing.T, h http.Handler) *testServer {
	ts := httptest.NewServer(h)

	t.Cleanup(ts.Close)

	return &testServer{ts}
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newBareApplication has no services; handlers that need storage must not be called.
func newBareApplication() *application {
	return &application{
		config: &Config{Environment: "testing"},
		logger: newTestLogger(),
	}
}

func newTestApplication(t *testing.T) (*application, *common.DB) {
	db := common.TestDB("file://../../migrations", t)
	logger := newTestLogger()

	app := &application{
		config:      &Config{Environment: "testing"},
		logger:      logger,
		userService: userservice.NewUserService(db, nil, logger),
		blogService: blogservice.NewBlogService(db),
	}

	return app, db
}

func readResponse(t *testing.T, res *http.Response) (int, http.Header, envelope) {
	defer res.Body.Close()

	responseBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatal(err)
	}

	var env envelope
	if len(responseBody) > 0 {
		err = json.Unmarshal(responseBody, &env)
		if err != nil {
			t.Fatal(err)
		}
	}

	return res.StatusCode, res.Header, env
}

func (ts *testServer) do(t *testing.T, method, path string, payload any) (int, http.Header, envelope) {
	var body io.Reader
	if payload != nil {
		jsonPayload, err := json.Marshal(payload)
		if err != nil {
			t.Fatal(err)
		}
		body = bytes.NewReader(jsonPayload)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatal(err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}

	return readResponse(t, res)
}

func (ts *testServer) post(t *testing.T, path string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPost, path, payload)
}

func (ts *testServer) get(t *testing.T, path string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodGet, path, nil)
}

func (ts *testServer) put(t *testing.T, path string, payload any) (int, http.Header, envelope) {
	return ts.do(t, http.MethodPut, path, payload)
}

func (ts *testServer) delete(t *testing.T, path string) (int, http.Header, envelope) {
	return ts.do(t, http.MethodDelete, path, nil)
}
