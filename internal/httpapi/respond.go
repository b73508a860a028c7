package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), errorBody{Error: types.UserMessage(err)})
}

// StatusFor maps an error from the store onto an HTTP status.
func StatusFor(err error) int {
	var ve *types.ValidationError
	var be *types.BackendError
	switch {
	case errors.As(err, &ve), errors.Is(err, types.ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, types.ErrNotFound):
		return http.StatusNotFound
	case errors.As(err, &be):
		switch be.Kind {
		case types.KindPermissionDenied:
			return http.StatusForbidden
		case types.KindSchemaMissing:
			return http.StatusServiceUnavailable
		}
		return http.StatusInternalServerError
	case errors.Is(err, types.ErrDetached):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// decode reads a JSON body into v. Decoding failures are reported as
// validation errors.
func decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &types.ValidationError{Message: "invalid request payload"}
	}
	return nil
}
