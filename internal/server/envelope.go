package server

import (
	"net/http"

	"github.com/goccy/go-json"
)

// Failure labels carried in the "error" field of a failure envelope.
const (
	errInvalidPayload    = "Invalid request payload"
	errPayloadTooLarge   = "Request payload too large"
	errCalculationFailed = "Error calculating carbon footprint"
	errInternal          = "Internal server error"
	errNotFound          = "Not found"
	errMethodNotAllowed  = "Method not allowed"
)

// SuccessEnvelope wraps a successful response body.
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// FailureEnvelope wraps a failed response body.
type FailureEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// HealthStatus is the liveness payload.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// writeJSON encodes v as the response body. If v cannot be encoded the
// response becomes a 500 failure envelope instead.
func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(FailureEnvelope{
			Success: false,
			Error:   errInternal,
			Message: "encoding response: " + err.Error(),
		})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeSuccess(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, SuccessEnvelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, label, message string) {
	writeJSON(w, status, FailureEnvelope{Success: false, Error: label, Message: message})
}
