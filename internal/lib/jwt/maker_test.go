package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParse(t *testing.T) {
	maker := NewJWTMaker("test-secret", 30*time.Minute)

	token, err := maker.GenerateToken(42, "pilot@airline.com", "crew")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := maker.ParseToken(token)
	require.NoError(t, err)

	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "pilot@airline.com", claims.Email())
	assert.Equal(t, "crew", claims.UserType)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestMaker_UniqueTokenID(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Minute)

	first, err := maker.GenerateToken(1, "admin@airline.com", "admin")
	require.NoError(t, err)
	second, err := maker.GenerateToken(1, "admin@airline.com", "admin")
	require.NoError(t, err)

	firstClaims, err := maker.ParseToken(first)
	require.NoError(t, err)
	secondClaims, err := maker.ParseToken(second)
	require.NoError(t, err)

	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestMaker_ExpiredToken(t *testing.T) {
	maker := NewJWTMaker("test-secret", -time.Minute)

	token, err := maker.GenerateToken(7, "eng@airline.com", "engineer")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, ErrTokenExpired))
}

func TestMaker_ParseErrors(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Minute)
	otherMaker := NewJWTMaker("other-secret", time.Minute)

	validToken, err := maker.GenerateToken(3, "ops@airline.com", "scheduler")
	require.NoError(t, err)

	foreignToken, err := otherMaker.GenerateToken(3, "ops@airline.com", "scheduler")
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name:    "malformed token",
			token:   "not.a.jwt",
			wantErr: ErrTokenMalformed,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: ErrTokenMalformed,
		},
		{
			name:    "wrong signing key",
			token:   foreignToken,
			wantErr: ErrTokenInvalid,
		},
		{
			name:    "tampered payload",
			token:   validToken[:len(validToken)-4] + "xxxx",
			wantErr: ErrTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
		})
	}
}

func TestMaker_MissingClaims(t *testing.T) {
	maker := NewJWTMaker("test-secret", time.Minute)

	token, err := maker.GenerateToken(5, "", "crew")
	require.NoError(t, err)

	claims, err := maker.ParseToken(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, ErrTokenMalformed))
}
