package password

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	raw, hash, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, raw, 64) // 32 случайных байта в hex
	_, err = hex.DecodeString(raw)
	assert.NoError(t, err)

	assert.Len(t, hash, 64) // sha256 в hex
	assert.Equal(t, HashResetToken(raw), hash)
	assert.NotEqual(t, raw, hash)
}

func TestNewResetToken_Unique(t *testing.T) {
	first, _, err := NewResetToken()
	require.NoError(t, err)
	second, _, err := NewResetToken()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashResetToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashResetToken("abc"), HashResetToken("abc"))
	assert.NotEqual(t, HashResetToken("abc"), HashResetToken("abd"))
}
