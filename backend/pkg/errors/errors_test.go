package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseError_WrapsAndUnwraps(t *testing.T) {
	cause := fmt.Errorf("socket closed")
	err := NewGraphConnectionFailed("bolt://localhost:7687", cause)

	assert.Contains(t, err.Error(), "bolt://localhost:7687")
	assert.Equal(t, cause, err.Unwrap())
}

func TestIsRetryable(t *testing.T) {
	connErr := NewGraphConnectionFailed("bolt://localhost:7687", fmt.Errorf("refused"))
	assert.True(t, IsRetryable(connErr))

	queryErr := NewGraphQueryFailed("upsert user", fmt.Errorf("syntax error"))
	assert.False(t, IsRetryable(queryErr))

	recomputeErr := NewRecomputeFailed("write", fmt.Errorf("timeout"))
	assert.False(t, IsRetryable(recomputeErr))
}

func TestIsErrorType(t *testing.T) {
	err := NewBaseError(ErrorTypeRecompute, "rebuild failed", nil)
	assert.True(t, IsErrorType(err, ErrorTypeRecompute))
	assert.False(t, IsErrorType(err, ErrorTypeGraph))
}
