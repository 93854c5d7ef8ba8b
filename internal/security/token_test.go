package security_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"karrirconnect-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_AccessTokenRoundTrip(t *testing.T) {
	tm := security.NewTokenManager(testSecret, 15, 60)

	token, err := tm.GenerateAccessToken(7, 1, "hr@acme.test")
	assert.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), claims.UserID)
	assert.Equal(t, int32(1), claims.CompanyID)
	assert.Equal(t, "hr@acme.test", claims.Email)
	assert.Equal(t, security.TokenTypeAccess, claims.Type)
}

func TestTokenManager_RefreshTokenHasNoCompany(t *testing.T) {
	tm := security.NewTokenManager(testSecret, 15, 60)

	token, err := tm.GenerateRefreshToken(7, "hr@acme.test")
	assert.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, security.TokenTypeRefresh, claims.Type)
	assert.Equal(t, int32(0), claims.CompanyID)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	tm := security.NewTokenManager(testSecret, 15, 60)
	other := security.NewTokenManager("ffffffffffffffffffffffffffffffff", 15, 60)

	token, err := other.GenerateAccessToken(7, 1, "hr@acme.test")
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrInvalidToken)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	tm := security.NewTokenManager(testSecret, -1, 60)

	token, err := tm.GenerateAccessToken(7, 1, "hr@acme.test")
	assert.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, security.ErrExpiredToken)
}

func TestVerifyWebhookSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("gateway-secret"), bcrypt.MinCost)
	assert.NoError(t, err)

	assert.True(t, security.VerifyWebhookSecret(string(hash), "gateway-secret"))
	assert.False(t, security.VerifyWebhookSecret(string(hash), "wrong-secret"))
	assert.False(t, security.VerifyWebhookSecret("", "gateway-secret"))
	assert.False(t, security.VerifyWebhookSecret(string(hash), ""))
}
