package printwatch_test

import (
	"testing"

	"github.com/fwojciec/printwatch"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := printwatch.Errorf(printwatch.ENOTFOUND, "result %q not found", "test")

	assert.Equal(t, printwatch.ENOTFOUND, printwatch.ErrorCode(err))
	assert.Equal(t, "result \"test\" not found", printwatch.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, printwatch.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, printwatch.EINTERNAL, printwatch.ErrorCode(assert.AnError))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, printwatch.ErrorMessage(nil))
}
