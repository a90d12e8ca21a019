package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BuzzLyutic/tasklists/internal/flash"
)

func TestNotification_Transitions(t *testing.T) {
	var n Notification
	assert.False(t, n.Visible(), "starts hidden")

	n = n.Receive(flash.Message{})
	assert.False(t, n.Visible(), "empty flash keeps it hidden")

	n = n.Receive(flash.Success("List created successfully!"))
	assert.True(t, n.Visible())
	assert.False(t, n.IsError())
	assert.Equal(t, "List created successfully!", n.Text)

	n = n.Receive(flash.Error("List not found."))
	assert.True(t, n.IsError())

	n = n.Expire()
	assert.False(t, n.Visible())
	assert.Empty(t, n.Text)

	assert.Equal(t, int64(3000), n.TimeoutMillis())
}

func TestForm_Transitions(t *testing.T) {
	defaults := map[string]string{"title": "", "list_id": "3"}

	f := NewForm(defaults)
	assert.False(t, f.Open)
	assert.False(t, f.Editing())
	assert.Equal(t, "/tasks", f.Action("/tasks"))

	f = f.Begin()
	assert.True(t, f.Open)
	assert.False(t, f.Editing())
	assert.True(t, f.Selected("list_id", 3))

	f = f.Edit(9, map[string]string{"title": "Buy milk", "list_id": "4", "is_completed": "1"})
	assert.True(t, f.Open)
	assert.True(t, f.Editing())
	assert.Equal(t, "/tasks/9", f.Action("/tasks"))
	assert.Equal(t, "Buy milk", f.Value("title"))
	assert.True(t, f.Checked("is_completed"))

	f = f.Fail(9, map[string]string{"title": "", "list_id": "4"})
	assert.True(t, f.Open, "failed submit keeps the dialog open")
	assert.True(t, f.Editing(), "failed update stays in edit mode")
	assert.Equal(t, "4", f.Value("list_id"))

	f = f.Succeed()
	assert.False(t, f.Open)
	assert.False(t, f.Editing())
	assert.Equal(t, "3", f.Value("list_id"), "success resets to defaults")

	f = f.Fail(0, map[string]string{"title": "x"})
	assert.True(t, f.Open)
	assert.False(t, f.Editing(), "failed create stays in create mode")
}

func TestForm_ValuesAreCopied(t *testing.T) {
	values := map[string]string{"title": "a"}
	f := NewForm(nil).Edit(1, values)
	values["title"] = "b"
	assert.Equal(t, "a", f.Value("title"))
}
