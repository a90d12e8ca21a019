package handler

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklists/internal/metrics"
	"github.com/BuzzLyutic/tasklists/internal/model"
	"github.com/BuzzLyutic/tasklists/internal/service"
	"github.com/BuzzLyutic/tasklists/pkg/respond"
)

// ListHandler serves the /api/lists endpoints.
type ListHandler struct {
	service *service.ListService
	logger  *zap.Logger
}

func NewListHandler(srv *service.ListService, logger *zap.Logger) *ListHandler {
	return &ListHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	lists, err := h.service.List(r.Context(), currentUser(r))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	if lists == nil {
		lists = []model.List{}
	}
	respond.JSON(w, r, http.StatusOK, lists)
}

func (h *ListHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "empty request body")
		return
	}

	var req model.ListInput
	if !decodeJSON(w, r, &req) {
		return
	}

	list, _, err := h.service.Create(r.Context(), currentUser(r), req)
	metrics.ObserveMutation("list", "create", err)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/lists/%d", list.ID))
	respond.JSON(w, r, http.StatusCreated, list)
}

func (h *ListHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respond.Error(w, r, http.StatusNotFound, "not found")
		return
	}

	var req model.ListInput
	if !decodeJSON(w, r, &req) {
		return
	}

	list, _, err := h.service.Update(r.Context(), currentUser(r), id, req)
	metrics.ObserveMutation("list", "update", err)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list)
}

func (h *ListHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		respond.Error(w, r, http.StatusNotFound, "not found")
		return
	}

	_, err := h.service.Delete(r.Context(), currentUser(r), id)
	metrics.ObserveMutation("list", "delete", err)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.NoContent(w, r)
}
