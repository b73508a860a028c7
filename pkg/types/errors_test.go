package types

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	cause := errors.New("disk I/O error")

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "validation", err: &ValidationError{Field: "title", Message: "too short"}, want: "too short"},
		{name: "schema missing", err: NewSchemaMissingError("list", TasksTable, cause), want: `table "tasks" does not exist; run "taskdesk init" to set up the schema`},
		{name: "permission denied", err: NewPermissionDeniedError("create", NotesTable, cause), want: "permission denied by the store; check the access policy"},
		{name: "fault keeps cause text", err: NewFaultError("update", TasksTable, cause), want: "disk I/O error"},
		{name: "fault without cause", err: NewFaultError("update", TasksTable, nil), want: "failed to update tasks"},
		{name: "wrapped not found", err: fmt.Errorf("remove: %w", ErrNotFound), want: "record not found"},
		{name: "deadline", err: context.DeadlineExceeded, want: "the backend did not respond in time"},
		{name: "other", err: cause, want: "disk I/O error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestBackendErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", NewFaultError("list", TasksTable, ErrNotFound))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsBackendKind(err, KindFault))
	assert.False(t, IsBackendKind(err, KindSchemaMissing))
	assert.Equal(t, "outer: list tasks: record not found", err.Error())
}

func TestHealthFromError(t *testing.T) {
	assert.Equal(t, HealthOK, HealthFromError(nil).Status)
	assert.Equal(t, HealthMissingTable, HealthFromError(NewSchemaMissingError("probe", TasksTable, nil)).Status)
	assert.Equal(t, HealthPermissionDenied, HealthFromError(NewPermissionDeniedError("probe", TasksTable, nil)).Status)
	assert.Equal(t, HealthError, HealthFromError(errors.New("boom")).Status)
}
