package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/tasklists/internal/model"
)

type MockListRepository struct {
	mock.Mock
}

func (m *MockListRepository) ListByUser(ctx context.Context, userID int64) ([]model.List, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]model.List), args.Error(1)
}

func (m *MockListRepository) Get(ctx context.Context, userID, id int64) (model.List, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(model.List), args.Error(1)
}

func (m *MockListRepository) Create(ctx context.Context, l model.List) (model.List, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(model.List), args.Error(1)
}

func (m *MockListRepository) Update(ctx context.Context, l model.List) (model.List, error) {
	args := m.Called(ctx, l)
	return args.Get(0).(model.List), args.Error(1)
}

func (m *MockListRepository) Delete(ctx context.Context, userID, id int64) (int64, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) ListByUser(ctx context.Context, userID int64, filter model.TaskFilter, limit int) ([]model.Task, error) {
	args := m.Called(ctx, userID, filter, limit)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Get(ctx context.Context, userID, id int64) (model.Task, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Create(ctx context.Context, userID int64, t model.Task) (model.Task, error) {
	args := m.Called(ctx, userID, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, userID int64, t model.Task) (model.Task, error) {
	args := m.Called(ctx, userID, t)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, userID, id int64) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
