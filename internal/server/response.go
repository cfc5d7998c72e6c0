package server

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Error codes returned in the body of failed requests.
const (
	codeNotFound      = "NOT_FOUND"
	codeUnknownTarget = "UNKNOWN_TARGET"
	codeValidation    = "VALIDATION_ERROR"
	codeCoachDisabled = "COACH_DISABLED"
	codeCoachFailed   = "COACH_FAILED"
	codeInternal      = "INTERNAL_ERROR"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, `{"code":"INTERNAL_ERROR","message":"encoding response"}`, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
