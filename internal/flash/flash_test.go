package flash

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndPop(t *testing.T) {
	w := httptest.NewRecorder()
	Set(w, Error("Title is required.").WithInput("list", 7, map[string]string{"title": ""}), false)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	r := httptest.NewRequest(http.MethodGet, "/lists", nil)
	r.AddCookie(cookies[0])

	w2 := httptest.NewRecorder()
	m := Pop(w2, r)

	assert.Equal(t, KindError, m.Kind)
	assert.Equal(t, "Title is required.", m.Text)
	require.NotNil(t, m.Old)
	assert.Equal(t, int64(7), m.Old.EditID)
	assert.Equal(t, "list", m.Old.Form)

	cleared := w2.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, CookieName, cleared[0].Name)
	assert.Less(t, cleared[0].MaxAge, 0, "cookie should be expired after reading")
}

func TestSet_EmptyMessage(t *testing.T) {
	w := httptest.NewRecorder()
	Set(w, Message{}, false)
	assert.Empty(t, w.Result().Cookies())
}

func TestPop(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
		want   Message
	}{
		{
			name: "no cookie",
			want: Message{},
		},
		{
			name:   "not base64",
			cookie: &http.Cookie{Name: CookieName, Value: "%%%"},
			want:   Message{},
		},
		{
			name:   "unknown kind",
			cookie: &http.Cookie{Name: CookieName, Value: "eyJraW5kIjoid2F0IiwidGV4dCI6ImhpIn0"},
			want:   Message{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				r.AddCookie(tt.cookie)
			}
			got := Pop(httptest.NewRecorder(), r)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Empty())
		})
	}
}

func TestSet_OversizedInputStillDeliversMessage(t *testing.T) {
	w := httptest.NewRecorder()
	fields := map[string]string{
		"title":       "",
		"description": strings.Repeat("x", 3500),
		"due_date":    "2026-11-01",
	}
	Set(w, Error("The title field is required.").WithInput("task", 0, fields), false)

	header := w.Header().Get("Set-Cookie")
	assert.Less(t, len(header), 4096)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	r := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	r.AddCookie(cookies[0])
	m := Pop(httptest.NewRecorder(), r)

	assert.Equal(t, "The title field is required.", m.Text)
	in, ok := m.InputFor("task")
	require.True(t, ok)
	assert.Equal(t, "2026-11-01", in.Fields["due_date"])
	assert.True(t, strings.HasPrefix(strings.Repeat("x", 3500), in.Fields["description"]))
	assert.Less(t, len(in.Fields["description"]), 3500)
	assert.Equal(t, 3500, len(fields["description"]), "caller's fields are not modified")
}

func TestSet_TruncateKeepsRunesWhole(t *testing.T) {
	w := httptest.NewRecorder()
	Set(w, Error("Too long.").WithInput("list", 0, map[string]string{"description": strings.Repeat("é", 3000)}), false)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	r := httptest.NewRequest(http.MethodGet, "/lists", nil)
	r.AddCookie(cookies[0])
	m := Pop(httptest.NewRecorder(), r)

	in, ok := m.InputFor("list")
	require.True(t, ok)
	assert.NotEmpty(t, in.Fields["description"])
	assert.Equal(t, strings.Repeat("é", len([]rune(in.Fields["description"]))), in.Fields["description"])
}

func TestInputFor(t *testing.T) {
	m := Error("The title field is required.").WithInput("list", 3, map[string]string{"title": ""})

	_, ok := m.InputFor("task")
	assert.False(t, ok, "input of another form is ignored")

	in, ok := m.InputFor("list")
	require.True(t, ok)
	assert.Equal(t, int64(3), in.EditID)

	_, ok = Success("List created successfully!").InputFor("list")
	assert.False(t, ok)
}
