package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectionError_JoinsReasons(t *testing.T) {
	err := &RejectionError{Reasons: []string{
		"missing required field: price",
		"invalid platform: unknownshop",
	}}
	assert.Equal(t,
		"validation failed: missing required field: price; invalid platform: unknownshop",
		err.Error(),
	)
}

func TestDuplicateError_NamesURL(t *testing.T) {
	err := &DuplicateError{Key: "abc123", URL: "https://jumia.co.ke/test"}
	assert.Equal(t, "duplicate item: https://jumia.co.ke/test", err.Error())
}

func TestPersistenceError_Unwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := &PersistenceError{Op: "acquire", Err: cause}

	assert.Equal(t, "persist acquire: connection refused", err.Error())
	assert.True(t, errors.Is(err, cause))

	wrapped := fmt.Errorf("record dropped: %w", err)
	var perr *PersistenceError
	require.True(t, errors.As(wrapped, &perr))
	assert.Equal(t, "acquire", perr.Op)
}
