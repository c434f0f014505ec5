package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aria-lang/seqdiff-go/internal/alignment"
	"github.com/aria-lang/seqdiff-go/internal/quality"
	"github.com/aria-lang/seqdiff-go/internal/sequence"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// requestError is a malformed or invalid request body.
type requestError struct {
	msg string
	err error
}

func (e *requestError) Error() string {
	if e.err == nil {
		return e.msg
	}
	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *requestError) Unwrap() error { return e.err }

// statusOf maps err to an HTTP status and an optional error kind.
func statusOf(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return http.StatusRequestEntityTooLarge, "request too large"
	}

	var tooLong *sequence.TooLongError
	if errors.As(err, &tooLong) {
		return http.StatusRequestEntityTooLarge, "sequence too long"
	}

	if kind, ok := alignment.KindOf(err); ok {
		switch kind {
		case alignment.AlphabetViolation:
			return http.StatusBadRequest, kind.String()
		case alignment.AllocationFailure, alignment.AlignmentOverflow:
			return http.StatusRequestEntityTooLarge, kind.String()
		default:
			return http.StatusInternalServerError, kind.String()
		}
	}

	var seqErr sequence.SequenceError
	var qualErr quality.QualityError
	var validationErrs validator.ValidationErrors
	var reqErr *requestError
	switch {
	case errors.As(err, &seqErr), errors.As(err, &qualErr),
		errors.As(err, &validationErrs), errors.As(err, &reqErr):
		return http.StatusBadRequest, ""
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "timeout"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "canceled"
	}
	return http.StatusInternalServerError, ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := statusOf(err)
	reqID := chimiddleware.GetReqID(r.Context())

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", "request_id", reqID, "path", r.URL.Path, "error", err)
	} else {
		h.logger.Debug("request rejected", "request_id", reqID, "path", r.URL.Path, "status", status, "error", err)
	}

	writeJSON(w, status, ErrorResponse{Error: err.Error(), Kind: kind, RequestID: reqID})
}
