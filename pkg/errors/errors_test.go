package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientDisconnectedIsCancellation(t *testing.T) {
	err := fmt.Errorf("write chunk: %w", ErrClientDisconnected)

	assert.True(t, errors.Is(err, ErrClientDisconnected))
	assert.True(t, IsCancellation(err))
	assert.Equal(t, "write chunk: client disconnected", err.Error())
}

func TestIsCancellation(t *testing.T) {
	assert.True(t, IsCancellation(fmt.Errorf("%w: %w", ErrStreamCancelled, context.Canceled)))
	assert.False(t, IsCancellation(ErrArchiverStart))
	assert.False(t, IsCancellation(ErrArchiveNotFound))
	assert.False(t, IsCancellation(nil))
}
