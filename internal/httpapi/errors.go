package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"leafd/internal/classifier"
	"leafd/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, types.ErrorResponse{Error: msg, Code: status})
}

// predictFailure builds the client-visible body for a failed classification.
func predictFailure(err error) types.PredictError {
	if classifier.IsModelUnavailable(err) {
		return types.PredictError{Error: classifier.ModelUnavailableMessage}
	}
	return types.PredictError{Error: "Prediction failed: " + err.Error()}
}

// predictStatus maps a classification error to a status code. Without strict
// mode every logical failure is reported as 200.
func predictStatus(err error, strict bool) int {
	if !strict {
		return http.StatusOK
	}
	var he HTTPError
	if errors.As(err, &he) {
		return he.StatusCode()
	}
	return http.StatusInternalServerError
}
