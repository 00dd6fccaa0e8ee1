package lib

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^ORC-\d{8}-\d{3}$`)

	t.Run("matches the expected format", func(t *testing.T) {
		assert.Regexp(t, pattern, GenerateOrderNumber())
	})

	t.Run("embeds today's date", func(t *testing.T) {
		assert.Contains(t, GenerateOrderNumber(), time.Now().Format("20060102"))
	})

	t.Run("suffix stays in range", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			number := GenerateOrderNumber()

			var suffix int
			_, err := fmt.Sscanf(number[len(number)-3:], "%d", &suffix)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, suffix, 100)
			assert.LessOrEqual(t, suffix, 999)
		}
	})
}

func TestGenerateOauthState(t *testing.T) {
	t.Run("is 32 hex characters", func(t *testing.T) {
		state, err := GenerateOauthState()
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9a-f]{32}$`, state)
	})

	t.Run("does not repeat", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			state, err := GenerateOauthState()
			require.NoError(t, err)
			assert.False(t, seen[state], "state %s generated twice", state)
			seen[state] = true
		}
	})
}

func TestToCents(t *testing.T) {
	assert.Equal(t, uint64(1999), ToCents(19.99))
	assert.Equal(t, uint64(10), ToCents(0.1))
	// classic float pitfall: 1.15 is stored as 1.14999...
	assert.Equal(t, uint64(115), ToCents(1.15))
	assert.Equal(t, uint64(0), ToCents(0))
}

func TestNormalizeDocument(t *testing.T) {
	assert.Equal(t, "12345678000199", NormalizeDocument("12.345.678/0001-99"))
	assert.Equal(t, "12345678901", NormalizeDocument("123.456.789-01"))
	assert.Equal(t, "", NormalizeDocument(""))
	assert.Equal(t, "", NormalizeDocument("abc"))
}
