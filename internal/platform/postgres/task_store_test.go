package postgres

import (
	"testing"

	"github.com/phrazzld/taskdeck/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestBuildListQuery(t *testing.T) {
	tests := []struct {
		name          string
		filter        store.TaskFilter
		expectedQuery string
		expectedArgs  []any
	}{
		{
			name:   "no_filter_default_sort",
			filter: store.TaskFilter{Sort: store.DefaultTaskSort},
			expectedQuery: "SELECT " + taskColumns +
				" FROM tasks  ORDER BY due_date ASC NULLS LAST, priority DESC, id ASC",
			expectedArgs: nil,
		},
		{
			name:   "empty_sort_falls_back_to_default",
			filter: store.TaskFilter{},
			expectedQuery: "SELECT " + taskColumns +
				" FROM tasks  ORDER BY due_date ASC NULLS LAST, priority DESC, id ASC",
			expectedArgs: nil,
		},
		{
			name:   "search_filter",
			filter: store.TaskFilter{Search: "report", Sort: store.TaskSortTitle},
			expectedQuery: "SELECT " + taskColumns +
				" FROM tasks WHERE title ILIKE $1 ORDER BY title ASC NULLS LAST, priority DESC, id ASC",
			expectedArgs: []any{"%report%"},
		},
		{
			name:   "category_filter",
			filter: store.TaskFilter{Category: "work", Sort: store.TaskSortPriority},
			expectedQuery: "SELECT " + taskColumns +
				" FROM tasks WHERE category = $1 ORDER BY priority ASC NULLS LAST, priority DESC, id ASC",
			expectedArgs: []any{"work"},
		},
		{
			name:   "search_wins_over_category",
			filter: store.TaskFilter{Search: "report", Category: "work", Sort: store.TaskSortDueDate},
			expectedQuery: "SELECT " + taskColumns +
				" FROM tasks WHERE title ILIKE $1 ORDER BY due_date ASC NULLS LAST, priority DESC, id ASC",
			expectedArgs: []any{"%report%"},
		},
		{
			name: "hostile_sort_param_never_reaches_the_query",
			filter: store.TaskFilter{
				Sort: store.ResolveTaskSort("due_date; DROP TABLE tasks; --"),
			},
			expectedQuery: "SELECT " + taskColumns +
				" FROM tasks  ORDER BY due_date ASC NULLS LAST, priority DESC, id ASC",
			expectedArgs: nil,
		},
		{
			name: "search_text_is_parameterized_not_spliced",
			filter: store.TaskFilter{
				Search: "'; DELETE FROM tasks; --",
				Sort:   store.DefaultTaskSort,
			},
			expectedQuery: "SELECT " + taskColumns +
				" FROM tasks WHERE title ILIKE $1 ORDER BY due_date ASC NULLS LAST, priority DESC, id ASC",
			expectedArgs: []any{"%'; DELETE FROM tasks; --%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListQuery(tt.filter)
			assert.Equal(t, tt.expectedQuery, query)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}
