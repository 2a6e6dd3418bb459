package api

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/mastviz/mastfig/pkg/errors"
)

type errorBody struct {
	Error     errorDetail `json:"error"`
	RequestID string      `json:"request_id,omitempty"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// StatusFor maps an error code to an HTTP status.
func StatusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidWeights,
		errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPreset:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidDistribution, errors.ErrCodeLayoutOverflow:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := StatusFor(code)
	if stderrors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err, "request_id", RequestID(r.Context()))
	}

	writeJSON(w, status, errorBody{
		Error:     errorDetail{Code: code, Message: errors.UserMessage(err)},
		RequestID: RequestID(r.Context()),
	})
}
