package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Task validation errors
var (
	ErrEmptyTitle = errors.New("title cannot be empty")
)

// DueDateLayout is the wire format for task due dates.
const DueDateLayout = "2006-01-02"

// Task represents a to-do item in the shared task list.
// Tasks are not owned by a user; every authenticated user sees and
// mutates the same list.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Priority    int        `json:"priority"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	IsCompleted bool       `json:"is_completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task with the given fields and sets the
// creation/update timestamps. The completion flag always starts false.
// Returns an error if validation fails.
func NewTask(title, description, category string, priority int, dueDate *time.Time) (*Task, error) {
	task := &Task{
		Title:       strings.TrimSpace(title),
		Description: description,
		Category:    strings.TrimSpace(category),
		Priority:    priority,
		DueDate:     dueDate,
		IsCompleted: false,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// Overdue reports whether the task is past due relative to now.
// Completed tasks and tasks without a due date are never overdue.
func (t *Task) Overdue(now time.Time) bool {
	if t.IsCompleted || t.DueDate == nil {
		return false
	}
	y, m, d := now.UTC().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return t.DueDate.Before(today)
}

// ParsePriority parses an optional priority form value.
// An empty string yields priority zero. Anything else that is not an
// integer returns ErrInvalidPriority.
func ParsePriority(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	p, err := strconv.Atoi(s)
	if err != nil {
		return 0, ErrInvalidPriority
	}
	return p, nil
}

// ParseDueDate parses an optional YYYY-MM-DD form value.
// An empty string yields a nil due date. Anything that does not parse as
// a real calendar date returns ErrInvalidDueDate.
func ParseDueDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(DueDateLayout, s)
	if err != nil {
		return nil, ErrInvalidDueDate
	}
	d = d.UTC()
	return &d, nil
}
