package repo

import (
	"context"

	"github.com/BuzzLyutic/tasklists/internal/model"
)

// ListRepository scopes every query by the owning user.
type ListRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]model.List, error)
	Get(ctx context.Context, userID, id int64) (model.List, error)
	Create(ctx context.Context, l model.List) (model.List, error)
	Update(ctx context.Context, l model.List) (model.List, error)
	Delete(ctx context.Context, userID, id int64) (int64, error)
}

// TaskRepository reaches tasks only through lists owned by userID.
type TaskRepository interface {
	ListByUser(ctx context.Context, userID int64, filter model.TaskFilter, limit int) ([]model.Task, error)
	Get(ctx context.Context, userID, id int64) (model.Task, error)
	Create(ctx context.Context, userID int64, t model.Task) (model.Task, error)
	Update(ctx context.Context, userID int64, t model.Task) (model.Task, error)
	Delete(ctx context.Context, userID, id int64) error
}
