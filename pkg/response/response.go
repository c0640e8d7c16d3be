// Package response writes the JSON envelope every endpoint speaks:
// {"status": ..., "message": ..., "data": ..., "errors": ...}.
package response

import (
	"encoding/json"
	"net/http"

	"github.com/Duvhier/jylclean-back/app/errs"
	"github.com/Duvhier/jylclean-back/config"
	"github.com/Duvhier/jylclean-back/pkg/logger"
)

type envelope struct {
	Status  int         `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func write(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Data: data})
}

// SuccessMessage sends a 200 with a message and optional data.
func SuccessMessage(w http.ResponseWriter, message string, data interface{}) {
	write(w, http.StatusOK, envelope{Status: http.StatusOK, Message: message, Data: data})
}

// Created sends a 201 JSON response with data.
func Created(w http.ResponseWriter, data interface{}) {
	write(w, http.StatusCreated, envelope{Status: http.StatusCreated, Data: data})
}

// Error sends a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	write(w, status, envelope{Status: status, Message: message})
}

// ValidationError sends a 400 with field-level error map, matching the
// status FromError assigns to validation failures.
func ValidationError(w http.ResponseWriter, fields map[string]string) {
	write(w, http.StatusBadRequest, envelope{
		Status:  http.StatusBadRequest,
		Message: "Validation failed",
		Errors:  fields,
	})
}

// Unauthorized sends a 401.
func Unauthorized(w http.ResponseWriter) {
	Error(w, http.StatusUnauthorized, "Unauthorized")
}

// Forbidden sends a 403.
func Forbidden(w http.ResponseWriter) {
	Error(w, http.StatusForbidden, "Forbidden")
}

// NotFound sends a 404.
func NotFound(w http.ResponseWriter) {
	Error(w, http.StatusNotFound, "Not found")
}

// FromError maps a service error to its HTTP status. Internal errors are
// logged and their detail suppressed outside development.
func FromError(w http.ResponseWriter, err error) {
	kind := errs.KindOf(err)
	msg := errs.MessageOf(err)

	status := http.StatusInternalServerError
	switch kind {
	case errs.KindValidation, errs.KindInsufficientStock:
		status = http.StatusBadRequest
	case errs.KindAuthentication:
		status = http.StatusUnauthorized
	case errs.KindPermission:
		status = http.StatusForbidden
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindConflict:
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.Error("internal error", "error", err)
		switch config.AppEnv() {
		case "production", "prod":
			msg = "Internal Server Error"
		default:
			msg = err.Error() // full detail helps local debugging
		}
	}

	Error(w, status, msg)
}
