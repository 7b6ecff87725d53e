package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/taskdeck/internal/domain"
)

// taskInput holds the parsed and validated fields of the add/edit forms.
type taskInput struct {
	Title       string
	Description string
	Category    string
	Priority    int
	DueDate     *time.Time
}

// credentialsForm is the register/login form payload.
// The password cap is bcrypt's input limit, not a policy choice.
type credentialsForm struct {
	Username string `validate:"required,max=50"`
	Password string `validate:"required,max=72"`
}

// parseTaskForm reads the add/edit form fields from the request.
// The second return value is a user-visible validation message; when it is
// non-empty the input must be discarded and no statement executed.
func parseTaskForm(r *http.Request) (taskInput, string) {
	if err := r.ParseForm(); err != nil {
		return taskInput{}, "Invalid form submission"
	}

	input := taskInput{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Description: r.PostFormValue("description"),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
	}

	if input.Title == "" {
		return taskInput{}, "Title is required"
	}

	priority, err := domain.ParsePriority(r.PostFormValue("priority"))
	if err != nil {
		return taskInput{}, "Invalid priority"
	}
	input.Priority = priority

	dueDate, err := domain.ParseDueDate(r.PostFormValue("due_date"))
	if err != nil {
		return taskInput{}, "Invalid date format"
	}
	input.DueDate = dueDate

	return input, ""
}

// parseCredentialsForm reads the username/password fields from the request.
func parseCredentialsForm(r *http.Request) (credentialsForm, error) {
	if err := r.ParseForm(); err != nil {
		return credentialsForm{}, err
	}
	return credentialsForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}, nil
}
