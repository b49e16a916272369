package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(CodeInvalidArgument, "unknown mode %q", "area")
	assert.Equal(t, `INVALID_ARGUMENT: unknown mode "area"`, err.Error())
	assert.True(t, Is(err, CodeInvalidArgument))
	assert.False(t, Is(err, CodeOutOfBounds))
}

func TestWrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeOutOfBounds, cause, "rectangle R3")

	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, CodeOutOfBounds))
	assert.Equal(t, CodeOutOfBounds, CodeOf(err))
	assert.Nil(t, Wrap(CodeInternal, nil, "ignored"))
}

func TestIs_NestedCodes(t *testing.T) {
	inner := New(CodeOutOfBounds, "mask")
	outer := Wrap(CodeInvalidArgument, inner, "connect")
	wrapped := fmt.Errorf("invocation: %w", outer)

	assert.True(t, Is(wrapped, CodeInvalidArgument))
	assert.True(t, Is(wrapped, CodeOutOfBounds))
	assert.Equal(t, CodeInvalidArgument, CodeOf(wrapped))
}

func TestCodeOf_PlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.False(t, Is(errors.New("plain"), CodeInternal))
}
