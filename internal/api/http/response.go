package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"campusbooks-backend/internal/domain"
)

// envelope is the common JSON response wrapper.
type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// pagedData wraps list responses with a total count.
type pagedData struct {
	Items interface{} `json:"items"`
	Total int32       `json:"total"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: status < 400, Message: message})
}

// writeError maps the domain error taxonomy onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrStaleStatus):
		writeMessage(w, http.StatusConflict, "the request was modified by another operator; reload and retry")
	default:
		writeMessage(w, http.StatusInternalServerError, "internal error")
	}
}
