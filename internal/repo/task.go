package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/tasklists/internal/model"
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID, &t.ListID, &t.ListTitle, &t.Title, &t.Description,
		&t.DueDate, &t.IsCompleted, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

// ListByUser returns the user's tasks, newest first. A limit <= 0 means no limit.
func (r *TaskRepo) ListByUser(ctx context.Context, userID int64, filter model.TaskFilter, limit int) ([]model.Task, error) {
	var lim *int
	if limit > 0 {
		lim = &limit
	}

	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.list_id, l.title, t.title, t.description,
		       t.due_date, t.is_completed, t.created_at, t.updated_at
		FROM tasks t
		JOIN lists l ON l.id = t.list_id
		WHERE l.user_id = $1
		  AND ($2::bigint IS NULL OR t.list_id = $2)
		  AND ($3::boolean IS NULL OR t.is_completed = $3)
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $4
	`, userID, filter.ListID, filter.Completed, lim)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) Get(ctx context.Context, userID, id int64) (model.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, `
		SELECT t.id, t.list_id, l.title, t.title, t.description,
		       t.due_date, t.is_completed, t.created_at, t.updated_at
		FROM tasks t
		JOIN lists l ON l.id = t.list_id
		WHERE t.id = $1 AND l.user_id = $2
	`, id, userID))
	return t, mapError(err)
}

// Create inserts the task only if t.ListID belongs to userID; otherwise it
// returns ErrorNotFound and writes nothing.
func (r *TaskRepo) Create(ctx context.Context, userID int64, t model.Task) (model.Task, error) {
	created, err := scanTask(r.pool.QueryRow(ctx, `
		WITH owner AS (
			SELECT id, title FROM lists WHERE id = $1 AND user_id = $2
		), ins AS (
			INSERT INTO tasks (list_id, title, description, due_date, is_completed)
			SELECT owner.id, $3::text, $4::text, $5::date, $6::boolean
			FROM owner
			RETURNING id, list_id, title, description, due_date, is_completed, created_at, updated_at
		)
		SELECT ins.id, ins.list_id, owner.title, ins.title, ins.description,
		       ins.due_date, ins.is_completed, ins.created_at, ins.updated_at
		FROM ins
		JOIN owner ON owner.id = ins.list_id
	`, t.ListID, userID, t.Title, t.Description, t.DueDate, t.IsCompleted))
	return created, mapError(err)
}

// Update rewrites every column of the task. Both the current and the
// target list must belong to userID.
func (r *TaskRepo) Update(ctx context.Context, userID int64, t model.Task) (model.Task, error) {
	updated, err := scanTask(r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET list_id = $3, title = $4, description = $5, due_date = $6,
		    is_completed = $7, updated_at = now()
		FROM lists cur, lists dst
		WHERE tasks.id = $1
		  AND cur.id = tasks.list_id AND cur.user_id = $2
		  AND dst.id = $3 AND dst.user_id = $2
		RETURNING tasks.id, tasks.list_id, dst.title, tasks.title, tasks.description,
		          tasks.due_date, tasks.is_completed, tasks.created_at, tasks.updated_at
	`, t.ID, userID, t.ListID, t.Title, t.Description, t.DueDate, t.IsCompleted))
	return updated, mapError(err)
}

func (r *TaskRepo) Delete(ctx context.Context, userID, id int64) error {
	cmd, err := r.pool.Exec(ctx, `
		DELETE FROM tasks
		USING lists l
		WHERE tasks.id = $1 AND l.id = tasks.list_id AND l.user_id = $2
	`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}
