package handler

import (
	"net/url"
	"strconv"

	"github.com/BuzzLyutic/tasklists/internal/model"
	"github.com/BuzzLyutic/tasklists/internal/view"
)

// parseTaskFilter reads ?list=<id>&status=completed|pending. Unknown values
// are ignored rather than rejected.
func parseTaskFilter(q url.Values) (model.TaskFilter, view.TaskFilter) {
	var (
		filter model.TaskFilter
		echo   view.TaskFilter
	)
	if id, err := strconv.ParseInt(q.Get("list"), 10, 64); err == nil && id > 0 {
		filter.ListID = &id
		echo.ListID = id
	}
	switch status := q.Get("status"); status {
	case "completed", "pending":
		done := status == "completed"
		filter.Completed = &done
		echo.Status = status
	}
	return filter, echo
}
