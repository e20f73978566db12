package handlers

import (
	"errors"
	"net/http"

	"creditdesk/internal/views"
	"creditdesk/internal/workflow"
	"creditdesk/pkg/utils"
)

// WriteWorkflowError maps the workflow error taxonomy onto HTTP status codes
// and writes the error envelope.
func WriteWorkflowError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, workflow.ErrNonPositiveAmount), errors.Is(err, workflow.ErrBelowMinimum):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, workflow.ErrForbidden):
		utils.WriteError(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, workflow.ErrNotFound):
		utils.WriteError(w, "transaction not found", http.StatusNotFound)
	case errors.Is(err, workflow.ErrInvalidTransition):
		utils.WriteError(w, "transaction is no longer pending", http.StatusConflict)
	default:
		utils.Logger.Errorf("unexpected workflow error: %v", err)
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
	}
}

// SortParams reads optional sortBy/sortOrder query parameters. ok is false
// when a parameter is present but not a sortable field or direction.
func SortParams(r *http.Request) (key views.SortKey, dir views.Direction, ok bool) {
	key = views.SortKey(r.URL.Query().Get("sortBy"))
	dir = views.Direction(r.URL.Query().Get("sortOrder"))

	if key == "" {
		return "", "", true
	}
	if !key.Valid() {
		return "", "", false
	}
	if dir == "" {
		dir = views.Ascending
	}
	if !dir.Valid() {
		return "", "", false
	}
	return key, dir, true
}
