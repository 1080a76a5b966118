package darkcrawl_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/darkcrawl"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := darkcrawl.Errorf(darkcrawl.ENOTFOUND, "entry %q not found", "test")

	assert.Equal(t, darkcrawl.ENOTFOUND, darkcrawl.ErrorCode(err))
	assert.Equal(t, "entry \"test\" not found", darkcrawl.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, darkcrawl.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, darkcrawl.EINTERNAL, darkcrawl.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, darkcrawl.ErrorMessage(nil))
}

func TestAnalysisFailedError_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection reset")
	err := &darkcrawl.AnalysisFailedError{
		Address:  "https://example.com/a",
		Attempts: 3,
		Err:      cause,
	}

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "https://example.com/a")
	assert.Contains(t, err.Error(), "3 attempts")
}
