package util

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "fodz-jwt-test-secret"

func issue(t *testing.T, id uint, name, role string) *TokenPair {
	t.Helper()
	pair, err := GenerateTokenPair(id, name, role, testSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	return pair
}

func TestGenerateTokenPair_CarriesIdentityPerKind(t *testing.T) {
	kinds := []struct {
		role string
		id   uint
		name string
	}{
		{role: "customer", id: 11, name: "Sam"},
		{role: "restaurant", id: 3, name: "Pizza Place"},
		{role: "delivery", id: 40, name: "Rider"},
		{role: "admin", id: 1, name: "root"},
	}

	for _, k := range kinds {
		t.Run(k.role, func(t *testing.T) {
			pair := issue(t, k.id, k.name, k.role)
			require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

			for subject, token := range map[string]string{"access": pair.AccessToken, "refresh": pair.RefreshToken} {
				claims, err := ValidateToken(token, testSecret)
				require.NoError(t, err)
				assert.Equal(t, subject, claims.Subject)
				assert.Equal(t, k.id, claims.UserID)
				assert.Equal(t, k.name, claims.Name)
				assert.Equal(t, k.role, claims.Role)
			}
		})
	}
}

func TestGenerateTokenPair_RefreshOutlivesAccess(t *testing.T) {
	pair := issue(t, 5, "Burger Hut", "restaurant")

	access, err := ValidateToken(pair.AccessToken, testSecret)
	require.NoError(t, err)
	refresh, err := ValidateToken(pair.RefreshToken, testSecret)
	require.NoError(t, err)

	assert.True(t, refresh.ExpiresAt.After(access.ExpiresAt.Time))
	assert.False(t, access.IssuedAt.After(access.ExpiresAt.Time))
}

func TestValidateToken_Rejections(t *testing.T) {
	pair := issue(t, 9, "Sam", "customer")

	expired, err := signToken(9, "Sam", "customer", "access", testSecret, -time.Minute)
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 9, Role: "admin"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	parts := strings.Split(pair.AccessToken, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	tests := []struct {
		name    string
		token   string
		secret  string
		wantErr error
	}{
		{name: "empty", token: "", secret: testSecret, wantErr: ErrInvalidToken},
		{name: "garbage", token: "not.a.jwt", secret: testSecret, wantErr: ErrInvalidToken},
		{name: "other secret", token: pair.AccessToken, secret: "another-secret", wantErr: ErrInvalidToken},
		{name: "bad signature", token: tampered, secret: testSecret, wantErr: ErrInvalidToken},
		{name: "alg none", token: unsigned, secret: testSecret, wantErr: ErrInvalidToken},
		{name: "expired", token: expired, secret: testSecret, wantErr: ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, claims)
		})
	}
}

func TestClaims_RemainingLifetime(t *testing.T) {
	pair := issue(t, 7, "Drinks Bar", "restaurant")
	claims, err := ValidateToken(pair.AccessToken, testSecret)
	require.NoError(t, err)

	now := time.Now()
	remaining := claims.RemainingLifetime(now)
	assert.Greater(t, remaining, 14*time.Minute)
	assert.LessOrEqual(t, remaining, 15*time.Minute)

	assert.Zero(t, claims.RemainingLifetime(now.Add(time.Hour)))
	assert.Zero(t, (&Claims{}).RemainingLifetime(now))
}
