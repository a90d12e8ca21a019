package model

import "time"

// DateLayout is the wire and form format of due dates.
const DateLayout = "2006-01-02"

type Task struct {
	ID          int64      `json:"id"`
	ListID      int64      `json:"list_id"`
	ListTitle   string     `json:"list_title"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DueDateString formats the due date for forms, or returns "".
func (t Task) DueDateString() string {
	if t.DueDate == nil {
		return ""
	}
	return t.DueDate.Format(DateLayout)
}

type TaskInput struct {
	ListID      int64  `json:"list_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	IsCompleted bool   `json:"is_completed"`
}

// TaskUpdate carries only the fields a caller wants to change.
// An empty DueDate clears the date.
type TaskUpdate struct {
	ListID      *int64  `json:"list_id,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}

type TaskFilter struct {
	ListID    *int64
	Completed *bool
}
