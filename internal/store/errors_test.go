package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		notFound  bool
		duplicate bool
	}{
		{name: "nil", err: nil},
		{name: "generic", err: errors.New("boom")},
		{name: "not found", err: ErrNotFound, notFound: true},
		{name: "user not found", err: ErrUserNotFound, notFound: true},
		{name: "task not found", err: ErrTaskNotFound, notFound: true},
		{name: "wrapped task not found", err: fmt.Errorf("get task: %w", ErrTaskNotFound), notFound: true},
		{name: "duplicate", err: ErrDuplicate, duplicate: true},
		{name: "email exists", err: ErrEmailExists, duplicate: true},
		{
			name:      "store error wrapping email exists",
			err:       NewStoreError("user", "create", "insert failed", ErrEmailExists),
			duplicate: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFoundError(tt.err))
			assert.Equal(t, tt.duplicate, IsDuplicateError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection reset")

	withCause := NewStoreError("task", "query", "count failed", cause)
	assert.Equal(t, "query operation on task failed: count failed: connection reset", withCause.Error())
	assert.ErrorIs(t, withCause, cause)

	var se *StoreError
	assert.True(t, errors.As(fmt.Errorf("outer: %w", withCause), &se))
	assert.Equal(t, "task", se.Entity)

	bare := NewStoreError("user", "update", "no rows", nil)
	assert.Equal(t, "update operation on user failed: no rows", bare.Error())
	assert.Nil(t, bare.Unwrap())
}
