package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklists/internal/flash"
	"github.com/BuzzLyutic/tasklists/internal/repo"
	"github.com/BuzzLyutic/tasklists/internal/service"
	"github.com/BuzzLyutic/tasklists/pkg/respond"
)

func TestHandleErrors(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantField string
	}{
		{"field validation", &service.ValidationError{Field: "title", Message: "The title field is required."}, http.StatusBadRequest, "title"},
		{"wrapped validation", fmt.Errorf("%w: bad", service.ErrValidation), http.StatusBadRequest, ""},
		{"not found", fmt.Errorf("get: %w", repo.ErrorNotFound), http.StatusNotFound, ""},
		{"conflict", repo.ErrorConflict, http.StatusConflict, ""},
		{"internal", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/lists", nil)

			handleErrors(w, r, zap.NewNop(), tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			var got respond.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, tt.wantField, got.Field)
			assert.NotEmpty(t, got.Error)
		})
	}
}

func TestExpected(t *testing.T) {
	assert.True(t, expected(repo.ErrorNotFound))
	assert.True(t, expected(&service.ValidationError{Field: "title"}))
	assert.False(t, expected(errors.New("connection reset")))
}

func TestParseTaskFilter(t *testing.T) {
	filter, echo := parseTaskFilter(url.Values{"list": {"7"}, "status": {"completed"}})
	require.NotNil(t, filter.ListID)
	require.NotNil(t, filter.Completed)
	assert.Equal(t, int64(7), *filter.ListID)
	assert.True(t, *filter.Completed)
	assert.Equal(t, int64(7), echo.ListID)
	assert.Equal(t, "completed", echo.Status)

	filter, echo = parseTaskFilter(url.Values{"list": {"abc"}, "status": {"later"}})
	assert.Nil(t, filter.ListID)
	assert.Nil(t, filter.Completed)
	assert.Zero(t, echo.ListID)
	assert.Empty(t, echo.Status)

	filter, _ = parseTaskFilter(url.Values{"status": {"pending"}})
	require.NotNil(t, filter.Completed)
	assert.False(t, *filter.Completed)
}

func TestBackTo(t *testing.T) {
	tests := []struct {
		name    string
		referer string
		want    string
	}{
		{"no referer", "", "/tasks"},
		{"keeps filters", "http://example.com/tasks?list=3&status=pending&edit=9", "/tasks?list=3&status=pending"},
		{"drops dialog params", "http://example.com/tasks?new=1", "/tasks"},
		{"other page", "http://example.com/dashboard", "/tasks"},
		{"other host", "http://evil.test/tasks?list=3", "/tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "http://example.com/tasks", nil)
			if tt.referer != "" {
				r.Header.Set("Referer", tt.referer)
			}
			assert.Equal(t, tt.want, backTo(r, "/tasks"))
		})
	}
}

func TestIDParam(t *testing.T) {
	withID := func(v string) *http.Request {
		r := httptest.NewRequest(http.MethodDelete, "/api/tasks/"+v, nil)
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", v)
		return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	id, ok := idParam(withID("42"))
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)

	_, ok = idParam(withID("-1"))
	assert.False(t, ok)
	_, ok = idParam(withID("x"))
	assert.False(t, ok)
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(ctx context.Context) error { return p.err }

func TestHealthHandler(t *testing.T) {
	up := NewHealthHandler(fakePinger{}, zap.NewNop())
	down := NewHealthHandler(fakePinger{err: errors.New("refused")}, zap.NewNop())

	w := httptest.NewRecorder()
	up.Liveness(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	up.Readiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	down.Readiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"unavailable"}`, w.Body.String())
}

func TestPageHandler_RateLimitedGoesToSectionIndex(t *testing.T) {
	h := &PageHandler{logger: zap.NewNop()}

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodPut, "/lists/5", "/lists"},
		{http.MethodDelete, "/tasks/9", "/tasks"},
		{http.MethodPost, "/tasks", "/tasks"},
		{http.MethodPost, "/elsewhere", "/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.RateLimited(w, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusSeeOther, w.Code)
			assert.Equal(t, tt.want, w.Header().Get("Location"))

			cookies := w.Result().Cookies()
			require.Len(t, cookies, 1)
			r := httptest.NewRequest(http.MethodGet, tt.want, nil)
			r.AddCookie(cookies[0])
			assert.Equal(t, flash.Error("Too many requests. Please slow down."), flash.Pop(httptest.NewRecorder(), r))
		})
	}
}

func TestDecodeJSON_BodyTooLarge(t *testing.T) {
	h := NewListHandler(nil, zap.NewNop())
	body := `{"title":"` + strings.Repeat("x", maxBodyBytes+1) + `"}`

	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/lists", strings.NewReader(body)))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestDecodeJSON_Malformed(t *testing.T) {
	h := NewTaskHandler(nil, zap.NewNop())

	w := httptest.NewRecorder()
	h.Create(w, httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"title":`)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
