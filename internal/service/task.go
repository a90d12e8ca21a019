package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklists/internal/flash"
	"github.com/BuzzLyutic/tasklists/internal/model"
	"github.com/BuzzLyutic/tasklists/internal/repo"
)

const (
	taskNotFound = "Task not found."

	defaultTaskLimit = 100
	maxTaskLimit     = 500
)

type TaskService struct {
	tasks  repo.TaskRepository
	lists  repo.ListRepository
	logger *zap.Logger
}

func NewTaskService(tasks repo.TaskRepository, lists repo.ListRepository, logger *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, lists: lists, logger: logger}
}

func (s *TaskService) List(ctx context.Context, userID int64, filter model.TaskFilter, limit int) ([]model.Task, error) {
	if limit <= 0 || limit > maxTaskLimit {
		limit = defaultTaskLimit
	}
	return s.tasks.ListByUser(ctx, userID, filter, limit)
}

func (s *TaskService) Get(ctx context.Context, userID, id int64) (model.Task, error) {
	return s.tasks.Get(ctx, userID, id)
}

func (s *TaskService) Create(ctx context.Context, userID int64, in model.TaskInput) (model.Task, flash.Message, error) {
	t := model.Task{
		ListID:      in.ListID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		IsCompleted: in.IsCompleted,
	}
	due, err := parseDueDate(in.DueDate)
	if err != nil {
		return t, failure(err, taskNotFound), err
	}
	t.DueDate = due

	if err := s.validate(t); err != nil {
		return t, failure(err, taskNotFound), err
	}

	created, err := s.tasks.Create(ctx, userID, t)
	if errors.Is(err, repo.ErrorNotFound) {
		err = invalid("list_id", "The selected list is invalid.")
	}
	if err != nil {
		return t, failure(err, taskNotFound), err
	}

	s.logger.Debug("task created",
		zap.Int64("user_id", userID),
		zap.Int64("task_id", created.ID),
		zap.Int64("list_id", created.ListID),
	)
	return created, flash.Success("Task created successfully!"), nil
}

// Update applies only the fields set in upd. Moving the task is allowed
// between lists of the same owner.
func (s *TaskService) Update(ctx context.Context, userID, id int64, upd model.TaskUpdate) (model.Task, flash.Message, error) {
	t, err := s.tasks.Get(ctx, userID, id)
	if err != nil {
		return t, failure(err, taskNotFound), err
	}

	if upd.Title != nil {
		t.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Description != nil {
		t.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.IsCompleted != nil {
		t.IsCompleted = *upd.IsCompleted
	}
	if upd.DueDate != nil {
		due, err := parseDueDate(*upd.DueDate)
		if err != nil {
			return t, failure(err, taskNotFound), err
		}
		t.DueDate = due
	}
	if upd.ListID != nil && *upd.ListID != t.ListID {
		target, err := s.lists.Get(ctx, userID, *upd.ListID)
		if errors.Is(err, repo.ErrorNotFound) {
			err = invalid("list_id", "The selected list is invalid.")
		}
		if err != nil {
			return t, failure(err, taskNotFound), err
		}
		t.ListID = target.ID
	}

	if err := s.validate(t); err != nil {
		return t, failure(err, taskNotFound), err
	}

	updated, err := s.tasks.Update(ctx, userID, t)
	if err != nil {
		return t, failure(err, taskNotFound), err
	}

	s.logger.Debug("task updated", zap.Int64("user_id", userID), zap.Int64("task_id", id))
	return updated, flash.Success("Task updated successfully!"), nil
}

func (s *TaskService) Delete(ctx context.Context, userID, id int64) (flash.Message, error) {
	if err := s.tasks.Delete(ctx, userID, id); err != nil {
		return failure(err, taskNotFound), err
	}

	s.logger.Debug("task deleted", zap.Int64("user_id", userID), zap.Int64("task_id", id))
	return flash.Success("Task deleted successfully!"), nil
}

func (s *TaskService) validate(t model.Task) error {
	if t.Title == "" {
		return invalid("title", "The title field is required.")
	}
	if t.ListID <= 0 {
		return invalid("list_id", "The list field is required.")
	}
	return checkDescription(t.Description)
}

func parseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(model.DateLayout, raw)
	if err != nil {
		return nil, invalid("due_date", "The due date is not a valid date.")
	}
	return &d, nil
}
