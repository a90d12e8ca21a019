package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklists/internal/metrics"
	"github.com/BuzzLyutic/tasklists/internal/model"
	"github.com/BuzzLyutic/tasklists/internal/service"
	"github.com/BuzzLyutic/tasklists/pkg/respond"
)

// TaskHandler serves the /api/tasks endpoints.
type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req model.TaskInput
	if !decodeJSON(w, r, &req) {
		return
	}

	task, _, err := h.service.Create(r.Context(), currentUser(r), req)
	metrics.ObserveMutation("task", "create", err)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%d", task.ID))
	respond.JSON(w, r, http.StatusCreated, task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, _ := parseTaskFilter(r.URL.Query())
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	tasks, err := h.service.List(r.Context(), currentUser(r), filter, limit)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	respond.JSON(w, r, http.StatusOK, tasks)
}

// Update applies a partial update; absent fields are left unchanged.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respond.Error(w, r, http.StatusNotFound, "not found")
		return
	}

	var req model.TaskUpdate
	if !decodeJSON(w, r, &req) {
		return
	}

	task, _, err := h.service.Update(r.Context(), currentUser(r), id, req)
	metrics.ObserveMutation("task", "update", err)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respond.Error(w, r, http.StatusNotFound, "not found")
		return
	}

	_, err := h.service.Delete(r.Context(), currentUser(r), id)
	metrics.ObserveMutation("task", "delete", err)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.NoContent(w, r)
}
