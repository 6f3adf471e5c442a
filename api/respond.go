package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jonwraymond/coursecms/auth"
	"github.com/jonwraymond/coursecms/cache"
	"github.com/jonwraymond/coursecms/catalog"
	"github.com/jonwraymond/coursecms/observe"
)

// failure is the body of every error response.
type failure struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error"`
	Fields  []catalog.FieldError `json:"fields,omitempty"`
}

// writeRaw writes an already encoded envelope.
func writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeOK(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, cache.OK(data, -1))
}

// writeError maps err to a status code. Internal details are logged, not
// returned.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, body := s.classify(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed",
			observe.Field{Key: "method", Value: r.Method},
			observe.Field{Key: "path", Value: r.URL.Path},
			observe.Field{Key: "request_id", Value: middleware.GetReqID(r.Context())},
			observe.Field{Key: "error", Value: err},
		)
	}
	writeJSON(w, status, body)
}

func (s *Server) classify(err error) (int, failure) {
	var validation *catalog.ValidationError
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest, failure{Error: "invalid input", Fields: validation.Fields}
	case errors.Is(err, errBadBody):
		return http.StatusBadRequest, failure{Error: err.Error()}
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound, failure{Error: notFoundMessage(err)}
	case errors.Is(err, catalog.ErrInUse):
		return http.StatusConflict, failure{Error: "record is referenced by other records"}
	case errors.Is(err, catalog.ErrConflict):
		return http.StatusConflict, failure{Error: "could not allocate a unique id, retry the request"}
	case auth.IsUnauthenticated(err):
		return http.StatusUnauthorized, failure{Error: "authentication required"}
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, failure{Error: "access denied"}
	default:
		return http.StatusInternalServerError, failure{Error: "internal server error"}
	}
}

// notFoundError carries the entity and id for the 404 message.
type notFoundError struct {
	entity string
	id     string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.entity, e.id)
}

func (e *notFoundError) Unwrap() error { return catalog.ErrNotFound }

func notFoundMessage(err error) string {
	var nf *notFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	return "not found"
}

var errBadBody = errors.New("request body is not valid JSON")
