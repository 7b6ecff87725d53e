package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/platform/logger"
	"github.com/phrazzld/taskdeck/internal/store"
)

// taskColumns is the column list shared by every task SELECT.
const taskColumns = "id, title, description, category, priority, due_date, is_completed, created_at, updated_at"

// TaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore
// interface. It accepts a database connection or transaction that should be
// initialized and managed by the caller. If logger is nil, a default logger
// will be used.
func NewTaskStore(db store.DBTX, logger *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// buildListQuery assembles the single SELECT for the list view.
// Search takes precedence over the category filter; the sort key comes
// from the TaskSort allow-list, so no external text ever reaches the
// ORDER BY clause. Rows order by the sort column (nulls last), then by
// priority descending as the tiebreak.
func buildListQuery(filter store.TaskFilter) (string, []any) {
	sort := filter.Sort
	if sort == "" {
		sort = store.DefaultTaskSort
	}

	where := ""
	var args []any
	switch {
	case filter.Search != "":
		where = "WHERE title ILIKE $1"
		args = []any{"%" + filter.Search + "%"}
	case filter.Category != "":
		where = "WHERE category = $1"
		args = []any{filter.Category}
	}

	query := fmt.Sprintf(
		"SELECT %s FROM tasks %s ORDER BY %s ASC NULLS LAST, priority DESC, id ASC",
		taskColumns, where, sort.Column(),
	)
	return query, args
}

// List implements store.TaskStore.List
func (s *TaskStore) List(ctx context.Context, filter store.TaskFilter) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query, args := buildListQuery(filter)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.String("sort", string(filter.Sort)))
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	// Return empty slice instead of nil if no tasks found
	if tasks == nil {
		tasks = []*domain.Task{}
	}

	return tasks, nil
}

// scanTask reads one task row, converting the nullable due date.
func scanTask(rows *sql.Rows) (*domain.Task, error) {
	var task domain.Task
	var dueDate sql.NullTime

	err := rows.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Category,
		&task.Priority,
		&dueDate,
		&task.IsCompleted,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dueDate.Valid {
		d := dueDate.Time.UTC()
		task.DueDate = &d
	}

	return &task, nil
}

// Create implements store.TaskStore.Create
// The generated ID is written back onto the task.
func (s *TaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()))
		return err
	}

	query := `
		INSERT INTO tasks (title, description, category, priority, due_date, is_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Category,
		task.Priority,
		nullDueDate(task.DueDate),
		task.IsCompleted,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("title", task.Title))
		return fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.String("title", task.Title))
	return nil
}

// Update implements store.TaskStore.Update
// A missing ID affects zero rows and is treated as a no-op success.
func (s *TaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, category = $3, priority = $4, due_date = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.Category,
		task.Priority,
		nullDueDate(task.DueDate),
		time.Now().UTC(),
		task.ID,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return fmt.Errorf("failed to update task: %w", err)
	}

	n, err := RowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Warn("no task found with ID to update", slog.Int64("task_id", task.ID))
		return nil // Task not found, treat as no-op
	}

	log.Info("task updated successfully", slog.Int64("task_id", task.ID))
	return nil
}

// Toggle implements store.TaskStore.Toggle
// A missing ID affects zero rows and is treated as a no-op success.
func (s *TaskStore) Toggle(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET is_completed = NOT is_completed, updated_at = $1
		WHERE id = $2
	`
	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to toggle task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return fmt.Errorf("failed to toggle task: %w", err)
	}

	n, err := RowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Warn("no task found with ID to toggle", slog.Int64("task_id", id))
		return nil // Task not found, treat as no-op
	}

	return nil
}

// Delete implements store.TaskStore.Delete
// A missing ID affects zero rows and is treated as a no-op success.
func (s *TaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return fmt.Errorf("failed to delete task: %w", err)
	}

	n, err := RowsAffected(result)
	if err != nil {
		return err
	}
	if n == 0 {
		log.Warn("no task found with ID to delete", slog.Int64("task_id", id))
		return nil // Task not found, treat as no-op
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return nil
}

// Categories implements store.TaskStore.Categories
func (s *TaskStore) Categories(ctx context.Context) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT DISTINCT category
		FROM tasks
		WHERE category <> ''
		ORDER BY category
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query categories", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			log.Error("failed to scan category row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating category rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	if categories == nil {
		categories = []string{}
	}

	return categories, nil
}

// CountByCategory implements store.TaskStore.CountByCategory
// Empty categories are reported under the "Uncategorized" label.
func (s *TaskStore) CountByCategory(ctx context.Context) ([]store.CategoryCount, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COALESCE(NULLIF(category, ''), 'Uncategorized') AS label, COUNT(*) AS count
		FROM tasks
		GROUP BY label
		ORDER BY label
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to count tasks by category", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to count tasks by category: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var counts []store.CategoryCount
	for rows.Next() {
		var c store.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			log.Error("failed to scan category count row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan category count row: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating category count rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("error iterating category count rows: %w", err)
	}

	if counts == nil {
		counts = []store.CategoryCount{}
	}

	return counts, nil
}

// CountByPriority implements store.TaskStore.CountByPriority
func (s *TaskStore) CountByPriority(ctx context.Context) ([]store.PriorityCount, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT priority, COUNT(*) AS count
		FROM tasks
		GROUP BY priority
		ORDER BY priority
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to count tasks by priority", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to count tasks by priority: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var counts []store.PriorityCount
	for rows.Next() {
		var c store.PriorityCount
		if err := rows.Scan(&c.Priority, &c.Count); err != nil {
			log.Error("failed to scan priority count row", slog.String("error", err.Error()))
			return nil, fmt.Errorf("failed to scan priority count row: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating priority count rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("error iterating priority count rows: %w", err)
	}

	if counts == nil {
		counts = []store.PriorityCount{}
	}

	return counts, nil
}

// Summarize implements store.TaskStore.Summarize
// COUNT aggregates yield zeros on an empty table, never NULL.
func (s *TaskStore) Summarize(ctx context.Context) (store.Summary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT
			COUNT(*) FILTER (WHERE NOT is_completed) AS pending,
			COUNT(*) FILTER (WHERE is_completed) AS completed,
			COUNT(*) AS total
		FROM tasks
	`

	var summary store.Summary
	err := s.db.QueryRowContext(ctx, query).Scan(
		&summary.Pending,
		&summary.Completed,
		&summary.Total,
	)
	if err != nil {
		log.Error("failed to summarize tasks", slog.String("error", err.Error()))
		return store.Summary{}, fmt.Errorf("failed to summarize tasks: %w", err)
	}

	return summary, nil
}

// nullDueDate converts an optional due date to its SQL representation.
func nullDueDate(d *time.Time) sql.NullTime {
	if d == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *d, Valid: true}
}
