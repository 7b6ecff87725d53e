package store

import (
	"context"

	"github.com/phrazzld/taskdeck/internal/domain"
)

// TaskSort identifies a column tasks may be ordered by. Values are
// resolved from external input through ResolveTaskSort, never taken
// verbatim, so user text can never reach the ORDER BY clause.
type TaskSort string

// Columns permitted as the primary sort key of the task list.
const (
	TaskSortDueDate   TaskSort = "due_date"
	TaskSortPriority  TaskSort = "priority"
	TaskSortTitle     TaskSort = "title"
	TaskSortCategory  TaskSort = "category"
	TaskSortCreatedAt TaskSort = "created_at"
)

// DefaultTaskSort is used for the default list view and whenever the
// requested sort column is not in the allow-list.
const DefaultTaskSort = TaskSortDueDate

// Column returns the SQL column name for the sort key.
func (s TaskSort) Column() string {
	return string(s)
}

// ResolveTaskSort maps an externally supplied sort parameter to a
// TaskSort. Unknown or empty values fall back to DefaultTaskSort.
func ResolveTaskSort(param string) TaskSort {
	switch TaskSort(param) {
	case TaskSortDueDate, TaskSortPriority, TaskSortTitle, TaskSortCategory, TaskSortCreatedAt:
		return TaskSort(param)
	default:
		return DefaultTaskSort
	}
}

// TaskFilter describes the list-view query. Search takes precedence over
// the category filter: when Search is non-empty the category is ignored.
type TaskFilter struct {
	Search   string
	Category string
	Sort     TaskSort
}

// CategoryCount is a task count grouped by category label.
// Tasks without a category are reported under the "Uncategorized" label.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// PriorityCount is a task count grouped by priority value.
type PriorityCount struct {
	Priority int `json:"priority"`
	Count    int `json:"count"`
}

// Summary holds the aggregate completion counts for the whole task set.
// All fields are zero on an empty table.
type Summary struct {
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// List returns tasks matching the filter, ordered by the filter's sort
	// column (nulls last) with priority descending as the tiebreak.
	List(ctx context.Context, filter TaskFilter) ([]*domain.Task, error)

	// Create saves a new task and fills in its generated ID.
	// Returns validation errors from the domain Task if data is invalid.
	Create(ctx context.Context, task *domain.Task) error

	// Update replaces all mutable fields of the task with the given ID.
	// Updating a nonexistent ID is a no-op reported as success.
	Update(ctx context.Context, task *domain.Task) error

	// Toggle flips the completion flag of the task with the given ID.
	// Toggling a nonexistent ID is a no-op reported as success.
	Toggle(ctx context.Context, id int64) error

	// Delete removes the task with the given ID.
	// Deleting a nonexistent ID is a no-op reported as success.
	Delete(ctx context.Context, id int64) error

	// Categories returns the distinct categories currently in use,
	// alphabetically ordered, for the filter dropdown.
	Categories(ctx context.Context) ([]string, error)

	// CountByCategory returns task counts grouped by category, with
	// empty categories labeled "Uncategorized".
	CountByCategory(ctx context.Context) ([]CategoryCount, error)

	// CountByPriority returns task counts grouped by priority.
	CountByPriority(ctx context.Context) ([]PriorityCount, error)

	// Summarize returns pending/completed/total counts for all tasks.
	Summarize(ctx context.Context) (Summary, error)
}
