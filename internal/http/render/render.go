// Package render writes JSON responses and is the single place where errors
// are turned into HTTP status codes.
package render

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/biztime/internal/errs"
	"github.com/MrJamesThe3rd/biztime/internal/http/requestid"
)

type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// JSON writes v with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err as {"error": {"message", "status"}}. Unclassified errors
// are logged and reported as a generic 500.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	var e *errs.Error
	if !errors.As(err, &e) || e.Kind == errs.KindInternal {
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestid.FromContext(r.Context()),
			"error", err,
		)

		e = &errs.Error{Kind: errs.KindInternal, Message: http.StatusText(http.StatusInternalServerError)}
	}

	status := e.Kind.Status()
	JSON(w, status, errorResponse{Error: errorDetail{Message: e.Message, Status: status}})
}

// StatusResponse is the body of endpoints that only acknowledge an action.
type StatusResponse struct {
	Status string `json:"status"`
}

// Deleted writes {"status": "deleted"}.
func Deleted(w http.ResponseWriter) {
	JSON(w, http.StatusOK, StatusResponse{Status: "deleted"})
}
