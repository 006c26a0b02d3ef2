package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager(t *testing.T) {
	_, err := NewManager("")
	assert.Error(t, err)

	m, err := NewManager("signing-key")
	require.NoError(t, err)

	_, err = m.NewJWT("", "", "", time.Hour)
	assert.Error(t, err)

	token, err := m.NewJWT("uid-1", "a@example.com", "Ada Lovelace", time.Hour)
	require.NoError(t, err)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "Ada Lovelace", claims.Name)

	expired, err := m.NewJWT("uid-1", "", "", -time.Minute)
	require.NoError(t, err)
	_, err = m.Parse(expired)
	assert.Error(t, err)

	_, err = m.Parse("not-a-token")
	assert.Error(t, err)
}
