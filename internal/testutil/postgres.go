// Package testutil starts a disposable PostgreSQL for integration tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklists/migrations"
)

// SetupTestDB starts a postgres container, applies the migrations and
// returns a pool plus a cleanup func. Skipped under -short.
func SetupTestDB(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}
	if _, err := migrations.Apply(ctx, pool, zap.NewNop()); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	cleanup := func() {
		pool.Close()
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Errorf("Failed to terminate container: %v", err)
		}
	}
	return pool, cleanup
}

// TruncateTables empties lists and tasks.
func TruncateTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(context.Background(), "TRUNCATE tasks, lists RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}

// SeedList inserts a list owned by userID and returns its id.
func SeedList(t *testing.T, pool *pgxpool.Pool, userID int64, title string) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		"INSERT INTO lists (user_id, title) VALUES ($1, $2) RETURNING id", userID, title,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed list: %v", err)
	}
	return id
}

// SeedTask inserts a task into listID and returns its id.
func SeedTask(t *testing.T, pool *pgxpool.Pool, listID int64, title string, completed bool) int64 {
	t.Helper()
	var id int64
	err := pool.QueryRow(context.Background(),
		"INSERT INTO tasks (list_id, title, is_completed) VALUES ($1, $2, $3) RETURNING id",
		listID, title, completed,
	).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to seed task: %v", err)
	}
	return id
}

// CountRows runs a COUNT(*) query.
func CountRows(t *testing.T, pool *pgxpool.Pool, query string, args ...any) int {
	t.Helper()
	var n int
	if err := pool.QueryRow(context.Background(), query, args...).Scan(&n); err != nil {
		t.Fatalf("count query failed: %v", err)
	}
	return n
}
