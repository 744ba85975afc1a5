package stub

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/gameapi-e2e/internal/model"
)

// httpError pairs an HTTP status with the envelope message
type httpError struct {
	status  int
	message string
}

func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error envelope for err
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	writeEnvelope(w, he.status, model.ErrorResponse(he.message))
}

// WriteOK writes a success envelope; a nil result omits data
func WriteOK(w http.ResponseWriter, result model.Result) {
	writeEnvelope(w, http.StatusOK, model.OKResponse(result))
}

func writeEnvelope(w http.ResponseWriter, status int, resp model.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrInvalidPlatform):
		return &httpError{http.StatusBadRequest, model.MessageInvalidPlatform}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, "Player not found"}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, "Session not found"}
	case errors.Is(err, model.ErrSessionClosed):
		return &httpError{http.StatusConflict, "Session already closed"}
	case errors.Is(err, model.ErrTournamentNotFound):
		return &httpError{http.StatusNotFound, "Tournament not found"}
	case errors.Is(err, model.ErrTournamentActive):
		return &httpError{http.StatusConflict, "Tournament already active"}
	default:
		return &httpError{http.StatusInternalServerError, "Internal server error"}
	}
}

// NewInvalidRequestError creates a 400 error with the given message
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates a 401 error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, "Authentication required"}
}

// NewInternalError creates a 500 error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, "Internal server error"}
}
