package view

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklists/internal/flash"
	"github.com/BuzzLyutic/tasklists/internal/model"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(zap.NewNop())
	require.NoError(t, err)
	return r
}

func TestRender_Dashboard(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()

	r.Render(w, http.StatusOK, "dashboard", DashboardPage{
		Page:  Page{Title: "Dashboard", Active: "dashboard"},
		Stats: model.Stats{TotalLists: 1, TotalTasks: 4, Completed: 3, PendingTasks: 1},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "Completed Tasks")
	assert.Contains(t, body, `<p class="stat green">3</p>`)
	assert.NotContains(t, body, `class="toast`)
}

func TestRender_ListsWithToastAndEditForm(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()

	form := NewForm(nil).Edit(5, map[string]string{"title": "Groceries", "description": ""})
	r.Render(w, http.StatusOK, "lists", ListsPage{
		Page: Page{
			Title:        "Lists",
			Active:       "lists",
			Notification: Notification{}.Receive(flash.Success("List updated successfully!")),
		},
		Lists: []model.List{{ID: 5, Title: "Groceries", TasksCount: 2}},
		Form:  form,
	})

	body := w.Body.String()
	assert.Contains(t, body, `class="toast success"`)
	assert.Contains(t, body, `data-timeout="3000"`)
	assert.Contains(t, body, "List updated successfully!")
	assert.Contains(t, body, "<dialog open>")
	assert.Contains(t, body, "Edit List")
	assert.Contains(t, body, `action="/lists/5"`)
	assert.Contains(t, body, `name="_method" value="PUT"`)
	assert.Contains(t, body, "2 tasks")
	assert.Contains(t, body, "No description.")
}

func TestRender_TasksEscapesInput(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()

	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	r.Render(w, http.StatusOK, "tasks", TasksPage{
		Page:  Page{Title: "Tasks", Active: "tasks"},
		Lists: []model.List{{ID: 3, Title: "Groceries"}},
		Tasks: []model.Task{
			{ID: 1, ListID: 3, ListTitle: "Groceries", Title: "<script>alert(1)</script>", DueDate: &due, IsCompleted: true},
		},
		Form: NewForm(map[string]string{"list_id": "3"}),
	})

	body := w.Body.String()
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
	assert.Contains(t, body, "Due: 2026-11-01")
	assert.Contains(t, body, "List: Groceries")
	assert.Contains(t, body, `class="done"`)
	assert.Contains(t, body, "Create New Task")
	assert.NotContains(t, body, "<dialog open>")
}

func TestRender_UnknownPage(t *testing.T) {
	r := newRenderer(t)
	w := httptest.NewRecorder()

	r.Render(w, http.StatusOK, "missing", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
