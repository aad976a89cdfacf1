package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timsexperiments/sitenav/application/service"
)

func TestAPIError(t *testing.T) {
	err := NewAPIError(http.StatusUnprocessableEntity, "sidebar invalid", nil)

	assert.Equal(t, 422, err.Code())
	assert.Equal(t, "sidebar invalid", err.Message())
	assert.Equal(t, "api error 422: sidebar invalid", err.Error())
	assert.ErrorIs(t, err, ErrAPI)

	cause := errors.New("boom")
	wrapped := NewAPIError(500, "internal", cause)
	assert.Equal(t, "api error 500: internal: boom", wrapped.Error())
	assert.ErrorIs(t, wrapped, cause)
}

func decodeErrors(t *testing.T, body *bytes.Buffer) JSONAPIErrorResponse {
	t.Helper()
	var resp JSONAPIErrorResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &resp))
	require.Len(t, resp.Errors, 1)
	return resp
}

func TestWriteError_Status(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"api error", NewAPIError(http.StatusTeapot, "short and stout", nil), http.StatusTeapot},
		{"slug not found", fmt.Errorf("%w: intro", service.ErrSlugNotFound), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logs bytes.Buffer
			logger := slog.New(slog.NewJSONHandler(&logs, nil))
			req := httptest.NewRequest(http.MethodGet, "/api/v1/slugs/intro", nil)
			w := httptest.NewRecorder()

			WriteError(w, req, tt.err, logger)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "application/vnd.api+json", w.Header().Get("Content-Type"))
			resp := decodeErrors(t, w.Body)
			assert.Equal(t, http.StatusText(tt.status), resp.Errors[0].Status)
			assert.Contains(t, logs.String(), "request error")
		})
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func captureCorrelation(seen *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*seen = GetCorrelationID(r.Context())
	})
}

func TestCorrelationID_FromHeader(t *testing.T) {
	var seen string
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(CorrelationHeader, "given-id")
	w := httptest.NewRecorder()

	CorrelationID(captureCorrelation(&seen)).ServeHTTP(w, req)

	assert.Equal(t, "given-id", seen)
	assert.Equal(t, "given-id", w.Header().Get(CorrelationHeader))
}

func TestCorrelationID_FromRequestID(t *testing.T) {
	var seen string
	h := chimiddleware.RequestID(CorrelationID(captureCorrelation(&seen)))
	w := httptest.NewRecorder()

	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get(CorrelationHeader))
}

func TestCorrelationID_GeneratesUUID(t *testing.T) {
	var seen string
	w := httptest.NewRecorder()

	CorrelationID(captureCorrelation(&seen)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/site", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "request completed", entry["msg"])
	assert.Equal(t, "/api/v1/site", entry["path"])
	assert.EqualValues(t, http.StatusAccepted, entry["status"])
	assert.EqualValues(t, 2, entry["bytes"])
}
