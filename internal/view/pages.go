package view

import (
	"github.com/BuzzLyutic/tasklists/internal/model"
)

type Page struct {
	Title        string
	Active       string
	Notification Notification
}

type DashboardPage struct {
	Page
	Stats model.Stats
	Lists []model.List
	Tasks []model.Task
}

type ListsPage struct {
	Page
	Lists []model.List
	Form  Form
}

type TasksPage struct {
	Page
	Tasks  []model.Task
	Lists  []model.List
	Form   Form
	Filter TaskFilter
}

// TaskFilter echoes the active filters of the task index.
type TaskFilter struct {
	ListID int64
	Status string
}

type ErrorPage struct {
	Page
	Status  int
	Message string
}
