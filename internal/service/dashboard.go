package service

import (
	"context"

	"github.com/BuzzLyutic/tasklists/internal/model"
	"github.com/BuzzLyutic/tasklists/internal/repo"
)

type Dashboard struct {
	Lists []model.List `json:"lists"`
	Tasks []model.Task `json:"tasks"`
	Stats model.Stats  `json:"stats"`
}

type DashboardService struct {
	lists repo.ListRepository
	tasks repo.TaskRepository
}

func NewDashboardService(lists repo.ListRepository, tasks repo.TaskRepository) *DashboardService {
	return &DashboardService{lists: lists, tasks: tasks}
}

// Load reads the user's lists and all of their tasks and derives the stats
// from exactly that snapshot.
func (s *DashboardService) Load(ctx context.Context, userID int64) (Dashboard, error) {
	lists, err := s.lists.ListByUser(ctx, userID)
	if err != nil {
		return Dashboard{}, err
	}
	tasks, err := s.tasks.ListByUser(ctx, userID, model.TaskFilter{}, 0)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		Lists: lists,
		Tasks: tasks,
		Stats: ComputeStats(lists, tasks),
	}, nil
}

func (s *DashboardService) Stats(ctx context.Context, userID int64) (model.Stats, error) {
	d, err := s.Load(ctx, userID)
	return d.Stats, err
}

func ComputeStats(lists []model.List, tasks []model.Task) model.Stats {
	st := model.Stats{
		TotalLists: len(lists),
		TotalTasks: len(tasks),
	}
	for _, t := range tasks {
		if t.IsCompleted {
			st.Completed++
		} else {
			st.PendingTasks++
		}
	}
	return st
}
