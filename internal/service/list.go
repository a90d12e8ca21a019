package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklists/internal/flash"
	"github.com/BuzzLyutic/tasklists/internal/model"
	"github.com/BuzzLyutic/tasklists/internal/repo"
)

const listNotFound = "List not found."

type ListService struct {
	repo   repo.ListRepository
	logger *zap.Logger
}

func NewListService(repo repo.ListRepository, logger *zap.Logger) *ListService {
	return &ListService{repo: repo, logger: logger}
}

func (s *ListService) List(ctx context.Context, userID int64) ([]model.List, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ListService) Get(ctx context.Context, userID, id int64) (model.List, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *ListService) Create(ctx context.Context, userID int64, in model.ListInput) (model.List, flash.Message, error) {
	l, err := s.build(in)
	if err != nil {
		return l, failure(err, listNotFound), err
	}
	l.UserID = userID

	created, err := s.repo.Create(ctx, l)
	if err != nil {
		return created, failure(err, listNotFound), err
	}

	s.logger.Debug("list created", zap.Int64("user_id", userID), zap.Int64("list_id", created.ID))
	return created, flash.Success("List created successfully!"), nil
}

func (s *ListService) Update(ctx context.Context, userID, id int64, in model.ListInput) (model.List, flash.Message, error) {
	l, err := s.build(in)
	if err != nil {
		return l, failure(err, listNotFound), err
	}
	l.ID = id
	l.UserID = userID

	updated, err := s.repo.Update(ctx, l)
	if err != nil {
		return updated, failure(err, listNotFound), err
	}

	s.logger.Debug("list updated", zap.Int64("user_id", userID), zap.Int64("list_id", id))
	return updated, flash.Success("List updated successfully!"), nil
}

// Delete removes the list together with all of its tasks.
func (s *ListService) Delete(ctx context.Context, userID, id int64) (flash.Message, error) {
	removed, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return failure(err, listNotFound), err
	}

	s.logger.Debug("list deleted",
		zap.Int64("user_id", userID),
		zap.Int64("list_id", id),
		zap.Int64("tasks_removed", removed),
	)
	return flash.Success("List deleted successfully!"), nil
}

func (s *ListService) build(in model.ListInput) (model.List, error) {
	l := model.List{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
	}
	if l.Title == "" {
		return l, invalid("title", "The title field is required.")
	}
	return l, checkDescription(l.Description)
}
