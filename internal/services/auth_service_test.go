package services_test

import (
	"testing"
	"time"

	"katalog/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticKeyVerifier(t *testing.T) {
	v := services.NewStaticKeyVerifier("your-secret-api-key")

	assert.True(t, v.Verify("your-secret-api-key"))
	assert.False(t, v.Verify(""))
	assert.False(t, v.Verify("your-secret-api-key "))
	assert.False(t, v.Verify("YOUR-SECRET-API-KEY"))
	assert.False(t, services.NewStaticKeyVerifier("").Verify(""))
}

func TestHashedKeyVerifier(t *testing.T) {
	hash, err := services.HashAPIKey("s3cret")
	require.NoError(t, err)

	v, err := services.NewHashedKeyVerifier(hash)
	require.NoError(t, err)
	assert.True(t, v.Verify("s3cret"))
	assert.False(t, v.Verify("wrong"))
	assert.False(t, v.Verify(""))

	_, err = services.NewHashedKeyVerifier("not-a-hash")
	assert.Error(t, err)
}

func TestTokenVerifier(t *testing.T) {
	v := services.NewTokenVerifier("signing-secret")

	token, err := v.IssueToken(time.Hour)
	require.NoError(t, err)
	assert.True(t, v.Verify(token))

	expired, err := v.IssueToken(-time.Hour)
	require.NoError(t, err)
	assert.False(t, v.Verify(expired))

	other, err := services.NewTokenVerifier("other-secret").IssueToken(time.Hour)
	require.NoError(t, err)
	assert.False(t, v.Verify(other))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	assert.False(t, v.Verify(unsigned))

	assert.False(t, v.Verify("invalid.token.string"))
}

func TestNewCredentialVerifier(t *testing.T) {
	v, err := services.NewCredentialVerifier(services.AuthModeStatic, "key")
	require.NoError(t, err)
	assert.IsType(t, &services.StaticKeyVerifier{}, v)

	hash, err := services.HashAPIKey("key")
	require.NoError(t, err)
	v, err = services.NewCredentialVerifier(services.AuthModeBcrypt, hash)
	require.NoError(t, err)
	assert.True(t, v.Verify("key"))

	v, err = services.NewCredentialVerifier(services.AuthModeJWT, "secret")
	require.NoError(t, err)
	assert.IsType(t, &services.TokenVerifier{}, v)

	_, err = services.NewCredentialVerifier("oauth", "key")
	assert.Error(t, err)

	_, err = services.NewCredentialVerifier(services.AuthModeStatic, "")
	assert.Error(t, err)
}
