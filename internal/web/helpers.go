package web

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/taskdeck/internal/domain"
	"github.com/phrazzld/taskdeck/internal/platform/logger"
	"github.com/phrazzld/taskdeck/internal/web/shared"
)

// redirectWithFlash sets a one-shot flash message and redirects to the
// task list. Every mutation route finishes through here.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, message, category string) {
	shared.SetFlash(w, message, category)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// getPathTaskID extracts the integer task ID from the URL path.
func getPathTaskID(r *http.Request) (int64, error) {
	pathParam := chi.URLParam(r, "taskID")
	if pathParam == "" {
		return 0, domain.NewValidationError("taskID", "is required", domain.ErrInvalidID)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil {
		return 0, domain.NewValidationError("taskID", "must be an integer", domain.ErrInvalidID)
	}

	return id, nil
}

// serverError logs the real error and sends the browser a generic flash.
// Raw store diagnostics never reach the response.
func serverError(w http.ResponseWriter, r *http.Request, err error, context string) {
	logger.FromContext(r.Context()).Error(context, "error", err.Error())
	redirectWithFlash(w, r, "Something went wrong", shared.FlashDanger)
}
