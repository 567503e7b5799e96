package global

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("ESHOP_TEST_KEY", "from-env")
	assert.Equal(t, "from-env", GetEnvOrDefault("ESHOP_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnvOrDefault("ESHOP_TEST_KEY_UNSET", "fallback"))
}

func TestResponseEnvelopes(t *testing.T) {
	success := SuccessResponse(map[string]string{"status": "OK"})
	assert.True(t, success.Success)
	assert.Empty(t, success.Message)

	failure := ErrorResponse("Item not found", []ValidationError{
		{Field: "id", Message: "No item exists with this ID", Code: "not_found"},
	})
	assert.False(t, failure.Success)
	assert.Equal(t, "Item not found", failure.Message)
	assert.Len(t, failure.Errors, 1)
}
