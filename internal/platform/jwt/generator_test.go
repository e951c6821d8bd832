package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", time.Hour)

	assert.NotNil(t, gen)
	assert.Equal(t, []byte("test-secret"), gen.secret)
	assert.Equal(t, time.Hour, gen.expiration)
}

// TestGenerator_GenerateToken は発行されたトークンが同じシークレットで検証でき、
// 標準クレームが正しく設定されていることを検証します。
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", time.Hour)

	signed, err := gen.GenerateToken("ops@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "ops@example.com", claims["sub"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	iat, ok := claims["iat"].(float64)
	require.True(t, ok)
	assert.InDelta(t, time.Hour.Seconds(), exp-iat, 1)
}

func TestGenerator_GenerateToken_WrongSecretFailsVerification(t *testing.T) {
	t.Parallel()

	gen := NewGenerator("test-secret", time.Hour)

	signed, err := gen.GenerateToken("ops@example.com")
	require.NoError(t, err)

	_, err = jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("other-secret"), nil
	})
	assert.Error(t, err)
}
