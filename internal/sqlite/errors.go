package sqlite

import (
	"context"
	"errors"
	"strings"

	"github.com/mesh-intelligence/taskdesk/pkg/types"
)

// classify converts a driver error into the taskdesk error taxonomy.
// Errors that already carry a meaning (not found, validation, context,
// lifecycle) pass through unchanged.
func classify(op, table string, err error) error {
	if err == nil {
		return nil
	}
	var ve *types.ValidationError
	var be *types.BackendError
	switch {
	case errors.As(err, &ve), errors.As(err, &be):
		return err
	case errors.Is(err, types.ErrNotFound), errors.Is(err, types.ErrDetached):
		return err
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "no such table"):
		return types.NewSchemaMissingError(op, table, err)
	case strings.Contains(msg, "readonly"),
		strings.Contains(msg, "read-only"),
		strings.Contains(msg, "permission denied"),
		strings.Contains(msg, "not authorized"),
		strings.Contains(msg, "access denied"):
		return types.NewPermissionDeniedError(op, table, err)
	default:
		return types.NewFaultError(op, table, err)
	}
}
