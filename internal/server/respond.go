package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/kokodio/tdd/pkg/errors"
	"github.com/kokodio/tdd/pkg/observability"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeBytes(w http.ResponseWriter, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// writeError maps coded errors onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" && status == http.StatusInternalServerError {
		code = errors.ErrCodeInternal
	}
	if status >= 500 {
		observability.HTTP().OnError(r.Context(), r.Method, routePattern(r), err)
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorBody{Error: errors.UserMessage(err), Code: code})
}

func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err), errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeExhaustedFrontier):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// decodeJSON reads a size-limited JSON body into v. An empty body leaves v
// untouched when allowEmpty is set.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any, allowEmpty bool) error {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if err == io.EOF && allowEmpty {
			return nil
		}
		return errors.New(errors.ErrCodeInvalidInput, "invalid request body: %v", err)
	}
	if dec.More() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid request body: trailing data")
	}
	return nil
}
