package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Run("Falls Back To Default When Unset", func(t *testing.T) {
		assert.Equal(t, 3, GetEnvInt("TAWJIH_TEST_UNSET_INT", 3))
		assert.Equal(t, "embedded", GetEnvString("TAWJIH_TEST_UNSET_STRING", "embedded"))
	})

	t.Run("Parses Typed Values", func(t *testing.T) {
		t.Setenv("TAWJIH_TEST_INT", "7")
		t.Setenv("TAWJIH_TEST_BOOL", "true")
		t.Setenv("TAWJIH_TEST_SECONDS", "15")

		assert.Equal(t, 7, GetEnvInt("TAWJIH_TEST_INT", 3))
		assert.True(t, GetEnvBool("TAWJIH_TEST_BOOL", false))
		assert.Equal(t, 15*time.Second, GetEnvSeconds("TAWJIH_TEST_SECONDS", 5))
	})

	t.Run("Keeps Default On Malformed Value", func(t *testing.T) {
		t.Setenv("TAWJIH_TEST_BAD_INT", "three")

		assert.Equal(t, 3, GetEnvInt("TAWJIH_TEST_BAD_INT", 3))
	})

	t.Run("Splits Comma Separated Values", func(t *testing.T) {
		t.Setenv("TAWJIH_TEST_LIST", "fr, ar,,en ")

		assert.Equal(t, []string{"fr", "ar", "en"}, GetEnvStringSlice("TAWJIH_TEST_LIST", nil))
	})
}
