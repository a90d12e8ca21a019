package repo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/tasklists/internal/model"
)

type ListRepo struct {
	pool *pgxpool.Pool
}

func NewListRepo(pool *pgxpool.Pool) *ListRepo {
	return &ListRepo{pool: pool}
}

func (r *ListRepo) ListByUser(ctx context.Context, userID int64) ([]model.List, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT l.id, l.user_id, l.title, l.description, COUNT(t.id), l.created_at, l.updated_at
		FROM lists l
		LEFT JOIN tasks t ON t.list_id = l.id
		WHERE l.user_id = $1
		GROUP BY l.id
		ORDER BY l.created_at DESC, l.id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := make([]model.List, 0)
	for rows.Next() {
		var l model.List
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &l.Description, &l.TasksCount, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (r *ListRepo) Get(ctx context.Context, userID, id int64) (model.List, error) {
	var l model.List
	err := r.pool.QueryRow(ctx, `
		SELECT l.id, l.user_id, l.title, l.description,
		       (SELECT COUNT(*) FROM tasks t WHERE t.list_id = l.id),
		       l.created_at, l.updated_at
		FROM lists l
		WHERE l.id = $1 AND l.user_id = $2
	`, id, userID).Scan(&l.ID, &l.UserID, &l.Title, &l.Description, &l.TasksCount, &l.CreatedAt, &l.UpdatedAt)
	return l, mapError(err)
}

func (r *ListRepo) Create(ctx context.Context, l model.List) (model.List, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO lists (user_id, title, description)
		VALUES ($1, $2, $3)
		RETURNING id, user_id, title, description, created_at, updated_at
	`, l.UserID, l.Title, l.Description).Scan(
		&l.ID, &l.UserID, &l.Title, &l.Description, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, mapError(err)
}

// Update changes title and description of a list owned by l.UserID.
func (r *ListRepo) Update(ctx context.Context, l model.List) (model.List, error) {
	err := r.pool.QueryRow(ctx, `
		UPDATE lists
		SET title = $3, description = $4, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, description,
		          (SELECT COUNT(*) FROM tasks t WHERE t.list_id = lists.id),
		          created_at, updated_at
	`, l.ID, l.UserID, l.Title, l.Description).Scan(
		&l.ID, &l.UserID, &l.Title, &l.Description, &l.TasksCount, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, mapError(err)
}

// Delete removes the list and its tasks in one transaction and reports how
// many tasks went with it.
func (r *ListRepo) Delete(ctx context.Context, userID, id int64) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var locked int64
	err = tx.QueryRow(ctx, `
		SELECT id FROM lists WHERE id = $1 AND user_id = $2 FOR UPDATE
	`, id, userID).Scan(&locked)
	if err != nil {
		return 0, mapError(err)
	}

	tag, err := tx.Exec(ctx, "DELETE FROM tasks WHERE list_id = $1", id)
	if err != nil {
		return 0, err
	}
	removed := tag.RowsAffected()

	if _, err := tx.Exec(ctx, "DELETE FROM lists WHERE id = $1 AND user_id = $2", id, userID); err != nil {
		return 0, err
	}
	return removed, tx.Commit(ctx)
}
