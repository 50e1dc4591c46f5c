package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordAndCheck(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, CheckPasswordHash("Sup3rSecret", hash))
	assert.False(t, CheckPasswordHash("wrong-password", hash))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestHashPassword_DistinctSalts(t *testing.T) {
	first, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	second, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
