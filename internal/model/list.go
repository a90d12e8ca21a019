package model

import "time"

// List is a named, user-owned collection of tasks.
type List struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TasksCount  int       `json:"tasks_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListInput is what a user submits when creating or editing a list.
type ListInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}
