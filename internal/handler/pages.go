package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/tasklists/internal/flash"
	"github.com/BuzzLyutic/tasklists/internal/metrics"
	"github.com/BuzzLyutic/tasklists/internal/model"
	"github.com/BuzzLyutic/tasklists/internal/repo"
	"github.com/BuzzLyutic/tasklists/internal/service"
	"github.com/BuzzLyutic/tasklists/internal/view"
	"github.com/BuzzLyutic/tasklists/pkg/respond"
)

const (
	listForm = "list"
	taskForm = "task"
)

var (
	listFields = []string{"title", "description"}
	taskFields = []string{"title", "description", "due_date", "list_id", "is_completed"}
)

// PageHandler serves the server-rendered pages and their form posts.
// Every post ends in a redirect back to the page it came from with a flash
// describing the outcome.
type PageHandler struct {
	lists     *service.ListService
	tasks     *service.TaskService
	dashboard *service.DashboardService
	renderer  *view.Renderer
	logger    *zap.Logger
	secure    bool
}

func NewPageHandler(
	lists *service.ListService,
	tasks *service.TaskService,
	dashboard *service.DashboardService,
	renderer *view.Renderer,
	logger *zap.Logger,
	secureCookies bool,
) *PageHandler {
	return &PageHandler{
		lists:     lists,
		tasks:     tasks,
		dashboard: dashboard,
		renderer:  renderer,
		logger:    logger,
		secure:    secureCookies,
	}
}

func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	msg := flash.Pop(w, r)

	d, err := h.dashboard.Load(r.Context(), currentUser(r))
	if err != nil {
		h.fault(w, r, err)
		return
	}

	h.renderer.Render(w, http.StatusOK, "dashboard", view.DashboardPage{
		Page:  page("Dashboard", "dashboard", msg),
		Stats: d.Stats,
		Lists: d.Lists,
		Tasks: d.Tasks,
	})
}

func (h *PageHandler) Lists(w http.ResponseWriter, r *http.Request) {
	msg := flash.Pop(w, r)
	ctx := r.Context()
	userID := currentUser(r)

	lists, err := h.lists.List(ctx, userID)
	if err != nil {
		h.fault(w, r, err)
		return
	}

	form := view.NewForm(nil)
	old, rejected := msg.InputFor(listForm)
	switch {
	case rejected:
		form = form.Fail(old.EditID, old.Fields)
	case r.URL.Query().Has("edit"):
		id, _ := strconv.ParseInt(r.URL.Query().Get("edit"), 10, 64)
		l, err := h.lists.Get(ctx, userID, id)
		if errors.Is(err, repo.ErrorNotFound) {
			msg = flash.Error("List not found.")
			break
		}
		if err != nil {
			h.fault(w, r, err)
			return
		}
		form = form.Edit(l.ID, map[string]string{"title": l.Title, "description": l.Description})
	case r.URL.Query().Get("new") != "":
		form = form.Begin()
	}

	h.renderer.Render(w, http.StatusOK, "lists", view.ListsPage{
		Page:  page("Lists", "lists", msg),
		Lists: lists,
		Form:  form,
	})
}

func (h *PageHandler) StoreList(w http.ResponseWriter, r *http.Request) {
	fields := formFields(r, listFields)
	_, msg, err := h.lists.Create(r.Context(), currentUser(r), listInput(fields))
	h.finish(w, r, listForm, "create", msg, err, 0, fields, "/lists")
}

func (h *PageHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	id, _ := idParam(r)
	fields := formFields(r, listFields)
	_, msg, err := h.lists.Update(r.Context(), currentUser(r), id, listInput(fields))
	h.finish(w, r, listForm, "update", msg, err, id, fields, "/lists")
}

func (h *PageHandler) DestroyList(w http.ResponseWriter, r *http.Request) {
	id, _ := idParam(r)
	msg, err := h.lists.Delete(r.Context(), currentUser(r), id)
	h.finish(w, r, listForm, "delete", msg, err, id, nil, "/lists")
}

func (h *PageHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	msg := flash.Pop(w, r)
	ctx := r.Context()
	userID := currentUser(r)
	q := r.URL.Query()

	filter, echo := parseTaskFilter(q)
	tasks, err := h.tasks.List(ctx, userID, filter, 0)
	if err != nil {
		h.fault(w, r, err)
		return
	}
	lists, err := h.lists.List(ctx, userID)
	if err != nil {
		h.fault(w, r, err)
		return
	}

	defaults := map[string]string{}
	if len(lists) > 0 {
		defaults["list_id"] = strconv.FormatInt(lists[0].ID, 10)
	}
	form := view.NewForm(defaults)
	old, rejected := msg.InputFor(taskForm)
	switch {
	case rejected:
		form = form.Fail(old.EditID, old.Fields)
	case q.Has("edit"):
		id, _ := strconv.ParseInt(q.Get("edit"), 10, 64)
		t, err := h.tasks.Get(ctx, userID, id)
		if errors.Is(err, repo.ErrorNotFound) {
			msg = flash.Error("Task not found.")
			break
		}
		if err != nil {
			h.fault(w, r, err)
			return
		}
		form = form.Edit(t.ID, taskValues(t))
	case q.Get("new") != "":
		form = form.Begin()
	}

	h.renderer.Render(w, http.StatusOK, "tasks", view.TasksPage{
		Page:   page("Tasks", "tasks", msg),
		Tasks:  tasks,
		Lists:  lists,
		Form:   form,
		Filter: echo,
	})
}

func (h *PageHandler) StoreTask(w http.ResponseWriter, r *http.Request) {
	fields := formFields(r, taskFields)
	in := model.TaskInput{
		ListID:      parseID(fields["list_id"]),
		Title:       fields["title"],
		Description: fields["description"],
		DueDate:     fields["due_date"],
		IsCompleted: fields["is_completed"] != "",
	}
	_, msg, err := h.tasks.Create(r.Context(), currentUser(r), in)
	h.finish(w, r, taskForm, "create", msg, err, 0, fields, "/tasks")
}

// UpdateTask takes the whole edit form, so every field is applied; an
// unchecked box marks the task pending.
func (h *PageHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, _ := idParam(r)
	fields := formFields(r, taskFields)
	var (
		listID    = parseID(fields["list_id"])
		title     = fields["title"]
		desc      = fields["description"]
		due       = fields["due_date"]
		completed = fields["is_completed"] != ""
	)
	upd := model.TaskUpdate{
		ListID:      &listID,
		Title:       &title,
		Description: &desc,
		DueDate:     &due,
		IsCompleted: &completed,
	}
	_, msg, err := h.tasks.Update(r.Context(), currentUser(r), id, upd)
	h.finish(w, r, taskForm, "update", msg, err, id, fields, "/tasks")
}

func (h *PageHandler) DestroyTask(w http.ResponseWriter, r *http.Request) {
	id, _ := idParam(r)
	msg, err := h.tasks.Delete(r.Context(), currentUser(r), id)
	h.finish(w, r, taskForm, "delete", msg, err, id, nil, "/tasks")
}

// Unauthorized renders the sign-in notice for page requests.
func (h *PageHandler) Unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	h.renderer.Render(w, http.StatusUnauthorized, "error", view.ErrorPage{
		Page:    view.Page{Title: "Sign in required"},
		Status:  http.StatusUnauthorized,
		Message: "Please sign in to continue.",
	})
}

// finish stores the outcome of a form post and redirects back. Rejected
// input rides along with the flash so the form reopens as it was left.
func (h *PageHandler) finish(w http.ResponseWriter, r *http.Request, entity, op string, msg flash.Message, err error, editID int64, fields map[string]string, base string) {
	metrics.ObserveMutation(entity, op, err)
	if err != nil {
		if !expected(err) {
			h.logger.Error("mutation failed",
				zap.String("entity", entity),
				zap.String("op", op),
				zap.Int64("user_id", currentUser(r)),
				zap.Error(err),
			)
		}
		if fields != nil && errors.Is(err, service.ErrValidation) {
			msg = msg.WithInput(entity, editID, fields)
		}
	}
	flash.Set(w, msg, h.secure)
	respond.SeeOther(w, r, backTo(r, base))
}

// RateLimited rejects a throttled form post. It goes back to the index of
// the section the post targeted, since /lists/{id} has no page of its own.
func (h *PageHandler) RateLimited(w http.ResponseWriter, r *http.Request) {
	flash.Set(w, flash.Error("Too many requests. Please slow down."), h.secure)
	respond.SeeOther(w, r, backTo(r, sectionIndex(r.URL.Path)))
}

func (h *PageHandler) fault(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("page failed", zap.String("path", r.URL.Path), zap.Error(err))
	h.renderer.Render(w, http.StatusInternalServerError, "error", view.ErrorPage{
		Page:    view.Page{Title: "Error"},
		Status:  http.StatusInternalServerError,
		Message: "Something went wrong. Please try again.",
	})
}

func page(title, active string, msg flash.Message) view.Page {
	return view.Page{
		Title:        title,
		Active:       active,
		Notification: view.Notification{}.Receive(msg),
	}
}

// backTo returns the referring page when it is base on this host, keeping
// its filters but dropping the dialog parameters. Anything else yields base.
func backTo(r *http.Request, base string) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path != base || (ref.Host != "" && ref.Host != r.Host) {
		return base
	}
	q := ref.Query()
	q.Del("edit")
	q.Del("new")
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

// sectionIndex maps /lists/5 to /lists. Unknown sections go to the dashboard.
func sectionIndex(path string) string {
	switch {
	case path == "/lists" || strings.HasPrefix(path, "/lists/"):
		return "/lists"
	case path == "/tasks" || strings.HasPrefix(path, "/tasks/"):
		return "/tasks"
	}
	return "/dashboard"
}

func formFields(r *http.Request, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = r.PostFormValue(k)
	}
	return out
}

func listInput(fields map[string]string) model.ListInput {
	return model.ListInput{Title: fields["title"], Description: fields["description"]}
}

func taskValues(t model.Task) map[string]string {
	v := map[string]string{
		"title":       t.Title,
		"description": t.Description,
		"due_date":    t.DueDateString(),
		"list_id":     strconv.FormatInt(t.ListID, 10),
	}
	if t.IsCompleted {
		v["is_completed"] = "1"
	}
	return v
}

func parseID(raw string) int64 {
	id, _ := strconv.ParseInt(raw, 10, 64)
	return id
}
