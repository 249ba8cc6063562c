package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gdlkit/pkg/errors"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps an error code to an HTTP status.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeCycle:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeStatus(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// writeError renders err with the status for its code. Server-side failures
// are logged with their cause; only the message reaches the client.
func writeError(w http.ResponseWriter, logger *log.Logger, err error) {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		writeStatus(w, http.StatusRequestEntityTooLarge, string(errors.ErrCodeInvalidInput), "request body too large")
		return
	}

	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if !code.CallerFault() {
		logger.Error("request failed", "code", code, "err", err)
	}
	writeStatus(w, status, string(code), errors.UserMessage(err))
}

func notFoundError(r *http.Request) error {
	return errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path)
}
