package booking

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflakeOrderNumbersUnique(t *testing.T) {
	gen, err := NewSnowflakeOrderNumbers("LB", 1)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		n := gen.Next()
		assert.True(t, strings.HasPrefix(n, "LB-"))
		require.False(t, seen[n], "duplicate order number %s", n)
		seen[n] = true
	}
}

func TestSnowflakeOrderNumbersRejectsBadNode(t *testing.T) {
	_, err := NewSnowflakeOrderNumbers("LB", -1)
	assert.Error(t, err)
}
