package regchat_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/regchat"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := regchat.Errorf(regchat.EFETCH, "failed to retrieve %s: status code %d", "https://example.com", 404)

	assert.Equal(t, regchat.EFETCH, regchat.ErrorCode(err))
	assert.Equal(t, "failed to retrieve https://example.com: status code 404", regchat.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, regchat.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, regchat.ErrorMessage(nil))
}

func TestErrorCode_UnwrapsWrappedErrors(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("scrape: %w", regchat.Errorf(regchat.ESTREAM, "connection reset"))

	assert.Equal(t, regchat.ESTREAM, regchat.ErrorCode(err))
	assert.Equal(t, "connection reset", regchat.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, regchat.EINTERNAL, regchat.ErrorCode(err))
	assert.Equal(t, "Internal error.", regchat.ErrorMessage(err))
}
