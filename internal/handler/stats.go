package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklists/internal/service"
	"github.com/BuzzLyutic/tasklists/pkg/respond"
)

type StatsHandler struct {
	service *service.DashboardService
	logger  *zap.Logger
}

func NewStatsHandler(srv *service.DashboardService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{service: srv, logger: logger}
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context(), currentUser(r))
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, stats)
}
