package domain_test

import (
	"testing"
	"time"

	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDueDate(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectedErr error
		expectedNil bool
		expected    time.Time
	}{
		{
			name:        "valid_date",
			input:       "2025-01-10",
			expected:    time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
			expectedNil: false,
		},
		{
			name:        "empty_is_nil",
			input:       "",
			expectedNil: true,
		},
		{
			name:        "whitespace_is_nil",
			input:       "  ",
			expectedNil: true,
		},
		{
			name:        "impossible_calendar_date",
			input:       "2024-13-40",
			expectedErr: domain.ErrInvalidDueDate,
		},
		{
			name:        "wrong_format",
			input:       "10/01/2025",
			expectedErr: domain.ErrInvalidDueDate,
		},
		{
			name:        "not_a_date",
			input:       "soon",
			expectedErr: domain.ErrInvalidDueDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseDueDate(tt.input)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, got)
				return
			}

			require.NoError(t, err)
			if tt.expectedNil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, tt.expected, *got)
			}
		})
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    int
		expectedErr error
	}{
		{
			name:     "integer",
			input:    "3",
			expected: 3,
		},
		{
			name:     "negative_integer",
			input:    "-1",
			expected: -1,
		},
		{
			name:     "empty_defaults_to_zero",
			input:    "",
			expected: 0,
		},
		{
			name:     "whitespace_defaults_to_zero",
			input:    "  ",
			expected: 0,
		},
		{
			name:        "non_integer",
			input:       "high",
			expectedErr: domain.ErrInvalidPriority,
		},
		{
			name:        "decimal",
			input:       "1.5",
			expectedErr: domain.ErrInvalidPriority,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParsePriority(tt.input)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewTask(t *testing.T) {
	t.Run("valid_task_starts_incomplete", func(t *testing.T) {
		due := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
		task, err := domain.NewTask("Ship report", "quarterly numbers", "work", 3, &due)
		require.NoError(t, err)

		assert.Equal(t, "Ship report", task.Title)
		assert.Equal(t, "work", task.Category)
		assert.Equal(t, 3, task.Priority)
		assert.False(t, task.IsCompleted)
		require.NotNil(t, task.DueDate)
		assert.Equal(t, due, *task.DueDate)
		assert.False(t, task.CreatedAt.IsZero())
	})

	t.Run("empty_title_rejected", func(t *testing.T) {
		task, err := domain.NewTask("", "", "", 0, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
		assert.Nil(t, task)
	})

	t.Run("whitespace_title_rejected", func(t *testing.T) {
		task, err := domain.NewTask("   ", "", "", 0, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)
		assert.Nil(t, task)
	})

	t.Run("title_is_trimmed", func(t *testing.T) {
		task, err := domain.NewTask("  Ship report  ", "", "", 0, nil)
		require.NoError(t, err)
		assert.Equal(t, "Ship report", task.Title)
	})
}

func TestTaskOverdue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC)
	yesterday := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		task     domain.Task
		expected bool
	}{
		{
			name:     "past_due_and_pending",
			task:     domain.Task{Title: "t", DueDate: &yesterday},
			expected: true,
		},
		{
			name:     "past_due_but_completed",
			task:     domain.Task{Title: "t", DueDate: &yesterday, IsCompleted: true},
			expected: false,
		},
		{
			name:     "due_in_future",
			task:     domain.Task{Title: "t", DueDate: &tomorrow},
			expected: false,
		},
		{
			name:     "due_today_is_not_overdue",
			task:     domain.Task{Title: "t", DueDate: timePtr(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))},
			expected: false,
		},
		{
			name:     "no_due_date",
			task:     domain.Task{Title: "t"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.task.Overdue(now))
		})
	}
}

func timePtr(t time.Time) *time.Time {
	return &t
}
