package view

import (
	"strconv"
	"time"

	"github.com/BuzzLyutic/tasklists/internal/flash"
)

// NotificationTimeout is how long a toast stays on screen.
const NotificationTimeout = 3 * time.Second

type NotificationState int

const (
	Hidden NotificationState = iota
	Visible
)

// Notification is the toast shown at the top of a page. It only moves
// hidden -> visible on a non-empty flash and visible -> hidden on expiry;
// a fresh page render always starts hidden.
type Notification struct {
	State NotificationState
	Kind  flash.Kind
	Text  string
}

func (n Notification) Receive(m flash.Message) Notification {
	if m.Empty() {
		return n
	}
	return Notification{State: Visible, Kind: m.Kind, Text: m.Text}
}

func (n Notification) Expire() Notification {
	return Notification{State: Hidden}
}

func (n Notification) Visible() bool {
	return n.State == Visible
}

func (n Notification) IsError() bool {
	return n.Kind == flash.KindError
}

func (n Notification) TimeoutMillis() int64 {
	return NotificationTimeout.Milliseconds()
}

type FormMode int

const (
	ModeCreate FormMode = iota
	ModeEdit
)

// Form is the create/edit dialog of a page.
//
//	create --Edit--> edit(record)
//	any    --Fail--> same mode, open, input kept
//	any    --Succeed--> create, closed, defaults
type Form struct {
	Mode     FormMode
	Open     bool
	RecordID int64
	Values   map[string]string

	defaults map[string]string
}

// NewForm returns a closed create form prefilled with defaults.
func NewForm(defaults map[string]string) Form {
	return Form{Mode: ModeCreate, Values: clone(defaults), defaults: defaults}
}

// Begin opens the dialog for a new record.
func (f Form) Begin() Form {
	f = f.Succeed()
	f.Open = true
	return f
}

// Edit loads a record into the form and opens it.
func (f Form) Edit(id int64, values map[string]string) Form {
	return Form{Mode: ModeEdit, Open: true, RecordID: id, Values: clone(values), defaults: f.defaults}
}

// Fail keeps the dialog open with what the user submitted. A non-zero
// editID means the failed submit was an update.
func (f Form) Fail(editID int64, submitted map[string]string) Form {
	mode := ModeCreate
	if editID > 0 {
		mode = ModeEdit
	}
	return Form{Mode: mode, Open: true, RecordID: editID, Values: clone(submitted), defaults: f.defaults}
}

func (f Form) Succeed() Form {
	return NewForm(f.defaults)
}

func (f Form) Editing() bool {
	return f.Mode == ModeEdit
}

func (f Form) Value(key string) string {
	return f.Values[key]
}

func (f Form) Checked(key string) bool {
	switch f.Values[key] {
	case "1", "on", "true":
		return true
	}
	return false
}

func (f Form) Selected(key string, id int64) bool {
	return f.Values[key] == strconv.FormatInt(id, 10)
}

// Action is the URL the form submits to: base for create, base/{id} for edit.
func (f Form) Action(base string) string {
	if f.Editing() {
		return base + "/" + strconv.FormatInt(f.RecordID, 10)
	}
	return base
}

func clone(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
