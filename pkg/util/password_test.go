package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_UsesConfiguredCost(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcryptCost, cost)
	assert.NotContains(t, hash, "password123")
}

func TestHashPassword_Salted(t *testing.T) {
	first, err := HashPassword("same-secret")
	require.NoError(t, err)
	second, err := HashPassword("same-secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword(first, "same-secret"))
	assert.True(t, VerifyPassword(second, "same-secret"))
}

func TestHashPassword_TooLong(t *testing.T) {
	_, err := HashPassword(strings.Repeat("x", 73))

	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
}

func TestVerifyPassword(t *testing.T) {
	hash, err := HashPassword("open-sesame")
	require.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		password string
		want     bool
	}{
		{name: "match", hash: hash, password: "open-sesame", want: true},
		{name: "case differs", hash: hash, password: "Open-Sesame", want: false},
		{name: "empty password", hash: hash, password: "", want: false},
		{name: "not a bcrypt hash", hash: "open-sesame", password: "open-sesame", want: false},
		{name: "empty hash", hash: "", password: "open-sesame", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyPassword(tt.hash, tt.password))
		})
	}
}
