package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHMACService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-for-unit-tests",
		Issuer:     "motorlend-test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newHMACService(t)

	token, err := svc.GenerateToken("user-123", []string{RoleUnderwriter})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "motorlend-test", claims.Issuer)
	assert.True(t, claims.HasRole(RoleUnderwriter))
	assert.False(t, claims.HasRole(RoleAdmin))
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := newHMACService(t)

	token, err := svc.GenerateToken("user-123", nil)
	require.NoError(t, err)

	other, err := NewJWTService(JWTConfig{
		Secret:     "a-different-secret",
		Issuer:     "motorlend-test",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_WrongIssuer(t *testing.T) {
	svc := newHMACService(t)

	token, err := svc.GenerateToken("user-123", nil)
	require.NoError(t, err)

	other, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-for-unit-tests",
		Issuer:     "someone-else",
		Expiration: time.Hour,
	})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-for-unit-tests",
		Issuer:     "motorlend-test",
		Expiration: -time.Minute,
	})
	require.NoError(t, err)

	token, err := svc.GenerateToken("user-123", nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	svc := newHMACService(t)

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestNewJWTService_NoKeys(t *testing.T) {
	_, err := NewJWTService(JWTConfig{Issuer: "motorlend-test"})
	assert.Error(t, err)
}
