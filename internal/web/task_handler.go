package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/platform/logger"
	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/phrazzld/taskdeck/internal/web/shared"
)

// ListPage is the data structure the index template consumes.
type ListPage struct {
	Tasks          []*domain.Task
	Summary        store.Summary
	Categories     []string
	CategoryCounts []store.CategoryCount
	PriorityCounts []store.PriorityCount
	Search         string
	Category       string
	Sort           string
	Now            time.Time
	Flash          *shared.Flash
}

// TaskHandler handles the task list and all task mutations.
// Every route here sits behind the session middleware.
type TaskHandler struct {
	taskStore store.TaskStore
	renderer  *Renderer
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskStore store.TaskStore, renderer *Renderer, log *slog.Logger) *TaskHandler {
	if log == nil {
		log = slog.Default()
	}
	return &TaskHandler{
		taskStore: taskStore,
		renderer:  renderer,
		logger:    log.With(slog.String("component", "task_handler")),
	}
}

// List handles GET /.
// Query params: search (title substring, wins over category), category
// (exact match), sort (allow-listed column, default due_date).
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	q := r.URL.Query()

	search := q.Get("search")
	category := q.Get("category")
	sortParam := q.Get("sort")
	if sortParam == "" {
		sortParam = string(store.DefaultTaskSort)
	}

	filter := store.TaskFilter{
		Search:   search,
		Category: category,
		Sort:     store.ResolveTaskSort(sortParam),
	}

	tasks, err := h.taskStore.List(r.Context(), filter)
	if err != nil {
		h.listError(w, r, err, "failed to list tasks")
		return
	}

	categories, err := h.taskStore.Categories(r.Context())
	if err != nil {
		h.listError(w, r, err, "failed to load categories")
		return
	}

	categoryCounts, err := h.taskStore.CountByCategory(r.Context())
	if err != nil {
		h.listError(w, r, err, "failed to count tasks by category")
		return
	}

	priorityCounts, err := h.taskStore.CountByPriority(r.Context())
	if err != nil {
		h.listError(w, r, err, "failed to count tasks by priority")
		return
	}

	summary, err := h.taskStore.Summarize(r.Context())
	if err != nil {
		h.listError(w, r, err, "failed to summarize tasks")
		return
	}

	log.Debug("task list rendered",
		slog.Int("count", len(tasks)),
		slog.String("sort", string(filter.Sort)))

	h.renderer.Render(w, r, "index.html", ListPage{
		Tasks:          tasks,
		Summary:        summary,
		Categories:     categories,
		CategoryCounts: categoryCounts,
		PriorityCounts: priorityCounts,
		Search:         search,
		Category:       category,
		Sort:           string(filter.Sort),
		Now:            time.Now().UTC(),
		Flash:          shared.PopFlash(w, r),
	})
}

// Add handles POST /add.
func (h *TaskHandler) Add(w http.ResponseWriter, r *http.Request) {
	input, msg := parseTaskForm(r)
	if msg != "" {
		redirectWithFlash(w, r, msg, shared.FlashDanger)
		return
	}

	task, err := domain.NewTask(input.Title, input.Description, input.Category, input.Priority, input.DueDate)
	if err != nil {
		redirectWithFlash(w, r, "Title is required", shared.FlashDanger)
		return
	}

	if err := h.taskStore.Create(r.Context(), task); err != nil {
		serverError(w, r, err, "failed to create task")
		return
	}

	redirectWithFlash(w, r, "Task added successfully", shared.FlashSuccess)
}

// Edit handles POST /edit/{taskID}.
// Full replace of all mutable fields; a missing ID is a no-op success.
func (h *TaskHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		redirectWithFlash(w, r, "Invalid task ID", shared.FlashDanger)
		return
	}

	input, msg := parseTaskForm(r)
	if msg != "" {
		redirectWithFlash(w, r, msg, shared.FlashDanger)
		return
	}

	task := &domain.Task{
		ID:          id,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Priority:    input.Priority,
		DueDate:     input.DueDate,
	}

	if err := h.taskStore.Update(r.Context(), task); err != nil {
		serverError(w, r, err, "failed to update task")
		return
	}

	redirectWithFlash(w, r, "Task updated successfully", shared.FlashSuccess)
}

// Toggle handles POST /toggle/{taskID}.
// Flips the completion flag; a missing ID is a no-op success.
func (h *TaskHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		redirectWithFlash(w, r, "Invalid task ID", shared.FlashDanger)
		return
	}

	if err := h.taskStore.Toggle(r.Context(), id); err != nil {
		serverError(w, r, err, "failed to toggle task")
		return
	}

	redirectWithFlash(w, r, "Task updated", shared.FlashInfo)
}

// Delete handles POST /delete/{taskID}.
// A missing ID is a no-op success.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		redirectWithFlash(w, r, "Invalid task ID", shared.FlashDanger)
		return
	}

	if err := h.taskStore.Delete(r.Context(), id); err != nil {
		serverError(w, r, err, "failed to delete task")
		return
	}

	redirectWithFlash(w, r, "Task deleted", shared.FlashWarning)
}

// listError logs the real error and serves a generic page-level failure;
// the list view has no redirect target to flash to.
func (h *TaskHandler) listError(w http.ResponseWriter, r *http.Request, err error, context string) {
	logger.FromContextOrDefault(r.Context(), h.logger).Error(context, slog.String("error", err.Error()))
	http.Error(w, "Something went wrong", http.StatusInternalServerError)
}
