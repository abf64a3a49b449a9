package httpserver

import (
	"errors"
	"net/http"

	"github.com/blackmichael/instaapp/internal/domain"
)

var errorCodes = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrNotFound, http.StatusNotFound, "NotFound"},
	{domain.ErrAlreadyLiked, http.StatusConflict, "AlreadyLiked"},
	{domain.ErrNotLiked, http.StatusConflict, "NotLiked"},
	{domain.ErrSelfFollow, http.StatusBadRequest, "SelfFollow"},
	{domain.ErrInvalidMedia, http.StatusBadRequest, "InvalidMedia"},
	{domain.ErrInvalidInput, http.StatusBadRequest, "InvalidRequest"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "Unauthenticated"},
	{domain.ErrUnauthorized, http.StatusForbidden, "Forbidden"},
	{domain.ErrAlreadyExists, http.StatusConflict, "AlreadyExists"},
}

// classify maps an error to its HTTP status and stable error code.
func classify(err error) (int, string) {
	for _, e := range errorCodes {
		if errors.Is(err, e.err) {
			return e.status, e.code
		}
	}
	return http.StatusInternalServerError, "InternalError"
}

// fail writes err as a JSON error response. Unexpected errors are logged and their
// details withheld from the client.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestID(r.Context()),
			"error", err,
		)
		writeError(w, status, code, "internal error")
		return
	}
	writeError(w, status, code, err.Error())
}
