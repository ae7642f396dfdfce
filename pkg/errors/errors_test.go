package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Wrap(cause, ErrInternal.Code, "failed to save")

	assert.EqualError(t, err, "failed to save: disk full")
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestCloneMatchesOriginal(t *testing.T) {
	err := Clone(ErrValidation, "student id already exists")

	assert.ErrorIs(t, err, ErrValidation)
	assert.EqualError(t, err, "student id already exists")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestFromError(t *testing.T) {
	typed := FromError(Clone(ErrNotFound, "student not found"))
	require.NotNil(t, typed)
	assert.Equal(t, ErrNotFound.Code, typed.Code)

	plain := FromError(stderrors.New("plain"))
	require.NotNil(t, plain)
	assert.Equal(t, ErrInternal.Code, plain.Code)
}
