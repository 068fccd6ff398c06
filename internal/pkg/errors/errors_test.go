package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/family-spots/internal/pkg/errors"
)

func TestAppError_Error(t *testing.T) {
	err := apperrors.New("SOME_CODE", "something broke", 500)
	assert.Equal(t, "SOME_CODE: something broke", err.Error())
}

func TestAppError_WithDetails(t *testing.T) {
	t.Run("carries the extra context", func(t *testing.T) {
		err := apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"limit": 101,
		})

		assert.Equal(t, apperrors.ErrInvalidRequest.Code, err.Code)
		assert.Equal(t, 101, err.Details["limit"])
	})

	t.Run("never mutates the shared sentinel", func(t *testing.T) {
		before := len(apperrors.ErrInvalidRequest.Details)

		derived := apperrors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"offset": -1,
		})

		require.NotSame(t, apperrors.ErrInvalidRequest, derived)
		assert.Len(t, apperrors.ErrInvalidRequest.Details, before)
	})
}

func TestSentinels(t *testing.T) {
	assert.Equal(t, 404, apperrors.ErrSpotNotFound.StatusCode)
	assert.Equal(t, 400, apperrors.ErrInvalidRadius.StatusCode)
	assert.Equal(t, 401, apperrors.ErrUnauthorized.StatusCode)
	assert.Equal(t, 503, apperrors.ErrDataUnavailable.StatusCode)
	assert.True(t, apperrors.ErrDataUnavailable.Retryable)
	assert.False(t, apperrors.ErrSpotNotFound.Retryable)
}
