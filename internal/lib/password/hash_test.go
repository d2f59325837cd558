package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, Compare(hash, "secret123"))
	assert.Error(t, Compare(hash, "secret124"))
	assert.Error(t, Compare(hash, ""))
}

func TestHash_Salted(t *testing.T) {
	first, err := Hash("secret123", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := Hash("secret123", bcrypt.MinCost)
	require.NoError(t, err)

	// одинаковый пароль даёт разные хэши из-за соли
	assert.NotEqual(t, first, second)
}

func TestHash_InvalidCostFallsBackToDefault(t *testing.T) {
	hash, err := Hash("secret123", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
