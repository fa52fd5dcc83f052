package errext

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithExitCodeIfNone(t *testing.T) {
	t.Parallel()

	assert.NoError(t, WithExitCodeIfNone(nil, InvalidConfig))

	base := errors.New("boom")
	err := WithExitCodeIfNone(base, InvalidConfig)
	require.Error(t, err)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, InvalidConfig, Code(err))
	assert.Equal(t, "boom", err.Error())

	wrapped := fmt.Errorf("outer: %w", err)
	again := WithExitCodeIfNone(wrapped, SyntaxErrors)
	assert.Equal(t, InvalidConfig, Code(again), "an existing code wins")
}

func TestCode_Default(t *testing.T) {
	t.Parallel()
	assert.Equal(t, Generic, Code(errors.New("plain")))
}

func TestSilent(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Silent(nil))

	err := Silent(WithExitCodeIfNone(errors.New("reported"), SyntaxErrors))
	assert.True(t, IsSilent(err))
	assert.True(t, IsSilent(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, SyntaxErrors, Code(err))
	assert.False(t, IsSilent(errors.New("loud")))
}
