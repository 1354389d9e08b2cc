package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApiErrorMessage(t *testing.T) {
	t.Run("provider error message", func(t *testing.T) {
		msg := apiErrorMessage([]byte(`{"error":{"message":"model overloaded"}}`))
		assert.Equal(t, "model overloaded", msg)
	})

	t.Run("raw body is truncated", func(t *testing.T) {
		msg := apiErrorMessage([]byte(strings.Repeat("x", 500)))
		assert.Len(t, msg, 200)
	})

	t.Run("empty body", func(t *testing.T) {
		assert.Equal(t, "", apiErrorMessage(nil))
	})
}

func TestContentFromResponse(t *testing.T) {
	content, err := contentFromResponse([]byte(`{"choices":[{"message":{"content":"first"}},{"message":{"content":"second"}}]}`))

	assert.NoError(t, err)
	assert.Equal(t, "first", content)
}
