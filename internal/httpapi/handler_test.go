package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/taskdesk/internal/store"
	"github.com/mesh-intelligence/taskdesk/internal/view"
	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

func newTestServer(t *testing.T, cfg types.Config) (*httptest.Server, *bytes.Buffer) {
	t.Helper()

	backend, err := store.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { backend.Detach() })

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	srv := httptest.NewServer(NewHandler(backend, logger))
	t.Cleanup(srv.Close)
	return srv, &logs
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestTasksAPI(t *testing.T) {
	srv, logs := newTestServer(t, types.Config{Backend: types.BackendMock})
	base := srv.URL + "/api/tasks"

	resp := do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
	tasks := decodeBody[[]types.Task](t, resp)
	assert.Len(t, tasks, 6)

	resp = do(t, http.MethodPost, base, `{"title":"Book flights","category":"personal","priority":"high"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody[types.Task](t, resp)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, types.PriorityHigh, created.Priority)

	resp = do(t, http.MethodPut, base+"/"+created.ID, `{"title":"Book cheaper flights"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Book cheaper flights", decodeBody[types.Task](t, resp).Title)

	resp = do(t, http.MethodPatch, base+"/"+created.ID+"/toggle", `{"completed":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, decodeBody[types.Task](t, resp).Completed)

	resp = do(t, http.MethodGet, base+"/stats", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, view.Stats{Total: 7, Pending: 4, Completed: 3}, decodeBody[view.Stats](t, resp))

	resp = do(t, http.MethodDelete, base+"/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, http.MethodDelete, base+"/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "record not found", decodeBody[errorBody](t, resp).Error)

	assert.Contains(t, logs.String(), "http request")
}

func TestTasksAPI_Filter(t *testing.T) {
	srv, _ := newTestServer(t, types.Config{Backend: types.BackendMock})

	resp := do(t, http.MethodGet, srv.URL+"/api/tasks?category=work&status=pending&order=priority_desc", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	tasks := decodeBody[[]types.Task](t, resp)

	require.NotEmpty(t, tasks)
	for _, task := range tasks {
		assert.Equal(t, types.CategoryWork, task.Category)
		assert.False(t, task.Completed)
	}
	assert.Equal(t, types.PriorityHigh, tasks[0].Priority)
}

func TestTasksAPI_Validation(t *testing.T) {
	srv, _ := newTestServer(t, types.Config{Backend: types.BackendMock})
	base := srv.URL + "/api/tasks"

	tests := []struct {
		name    string
		method  string
		url     string
		body    string
		status  int
		message string
	}{
		{name: "short title", method: http.MethodPost, url: base, body: `{"title":"ab","category":"work"}`, status: http.StatusBadRequest, message: "title must be at least 3 characters"},
		{name: "missing category", method: http.MethodPost, url: base, body: `{"title":"Valid title"}`, status: http.StatusBadRequest, message: "category is required"},
		{name: "malformed body", method: http.MethodPost, url: base, body: `{"title":`, status: http.StatusBadRequest, message: "invalid request payload"},
		{name: "toggle without flag", method: http.MethodPatch, url: base + "/t1/toggle", body: `{}`, status: http.StatusBadRequest, message: "completed is required"},
		{name: "update unknown", method: http.MethodPut, url: base + "/nope", body: `{"title":"Whatever"}`, status: http.StatusNotFound, message: "record not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, tt.method, tt.url, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.message, decodeBody[errorBody](t, resp).Error)
		})
	}
}

func TestNotesAPI(t *testing.T) {
	srv, _ := newTestServer(t, types.Config{Backend: types.BackendMock})
	base := srv.URL + "/api/notes"

	resp := do(t, http.MethodPost, base, `{"topics":"- Roadmap\n- Budget"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	note := decodeBody[types.Note](t, resp)
	assert.Equal(t, types.DefaultNoteTitle, note.Title)

	resp = do(t, http.MethodPut, base+"/"+note.ID, `{"date":"2024-05-02"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "2024-05-02", decodeBody[types.Note](t, resp).Date)

	resp = do(t, http.MethodPut, base+"/"+note.ID, `{"date":"May 2nd"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = do(t, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decodeBody[[]types.Note](t, resp), 1)

	resp = do(t, http.MethodDelete, base+"/"+note.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestHealthAPI(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.Config
		want types.HealthStatus
	}{
		{name: "mock", cfg: types.Config{Backend: types.BackendMock}, want: types.HealthDisabled},
		{name: "sqlite without schema", cfg: types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}, want: types.HealthMissingTable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.cfg)
			resp := do(t, http.MethodGet, srv.URL+"/api/health", "")
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.want, decodeBody[types.Health](t, resp).Status)
		})
	}
}

func TestSchemaMissingIs503(t *testing.T) {
	srv, _ := newTestServer(t, types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})

	resp := do(t, http.MethodGet, srv.URL+"/api/tasks", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, decodeBody[errorBody](t, resp).Error, "taskdesk init")
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv, _ := newTestServer(t, types.Config{Backend: types.BackendMock})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/health", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&types.ValidationError{Field: "title"}, http.StatusBadRequest},
		{types.ErrInvalidID, http.StatusBadRequest},
		{types.ErrNotFound, http.StatusNotFound},
		{types.NewPermissionDeniedError("list", types.TasksTable, nil), http.StatusForbidden},
		{types.NewSchemaMissingError("list", types.TasksTable, nil), http.StatusServiceUnavailable},
		{types.NewFaultError("list", types.TasksTable, errors.New("disk full")), http.StatusInternalServerError},
		{types.ErrDetached, http.StatusServiceUnavailable},
		{context.DeadlineExceeded, http.StatusGatewayTimeout},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), "%v", tt.err)
	}
}

func TestWithRecover(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	h := WithRequestID(WithRecover(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.Contains(t, logs.String(), "kaboom")
}
