package provider

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"friend-scheduler-backend/pkg/appleauth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appleTestClientID = "com.example.app"

func testSigningKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func staticKeyfunc(key *rsa.PrivateKey) jwt.Keyfunc {
	return func(*jwt.Token) (interface{}, error) {
		return &key.PublicKey, nil
	}
}

func signedIDToken(t *testing.T, key *rsa.PrivateKey, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["iss"]; !ok {
		claims["iss"] = appleIssuer
	}
	if _, ok := claims["aud"]; !ok {
		claims["aud"] = appleTestClientID
	}
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}

	raw, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return raw
}

func TestParseAppleIDToken(t *testing.T) {
	key := testSigningKey(t)
	raw := signedIDToken(t, key, jwt.MapClaims{
		"sub":   "000123.abc",
		"email": "new.user@example.com",
	})

	claims, err := parseAppleIDToken(raw, staticKeyfunc(key), appleTestClientID)
	require.NoError(t, err)
	assert.Equal(t, "000123.abc", claims.Subject)
	assert.Equal(t, "new.user@example.com", claims.Email)
}

func TestParseAppleIDTokenMissingSub(t *testing.T) {
	key := testSigningKey(t)
	raw := signedIDToken(t, key, jwt.MapClaims{
		"email": "new.user@example.com",
	})

	_, err := parseAppleIDToken(raw, staticKeyfunc(key), appleTestClientID)
	assert.Error(t, err)
}

func TestParseAppleIDTokenRejectsWrongAudience(t *testing.T) {
	key := testSigningKey(t)
	raw := signedIDToken(t, key, jwt.MapClaims{
		"sub": "000123.abc",
		"aud": "com.example.other-app",
	})

	_, err := parseAppleIDToken(raw, staticKeyfunc(key), appleTestClientID)
	assert.Error(t, err)
}

func TestParseAppleIDTokenRejectsWrongIssuer(t *testing.T) {
	key := testSigningKey(t)
	raw := signedIDToken(t, key, jwt.MapClaims{
		"sub": "000123.abc",
		"iss": "https://evil.example.com",
	})

	_, err := parseAppleIDToken(raw, staticKeyfunc(key), appleTestClientID)
	assert.Error(t, err)
}

func TestParseAppleIDTokenRejectsWrongSigner(t *testing.T) {
	signer := testSigningKey(t)
	raw := signedIDToken(t, signer, jwt.MapClaims{
		"sub": "000123.abc",
	})

	_, err := parseAppleIDToken(raw, staticKeyfunc(testSigningKey(t)), appleTestClientID)
	assert.Error(t, err)
}

func TestParseAppleIDTokenRejectsExpired(t *testing.T) {
	key := testSigningKey(t)
	raw := signedIDToken(t, key, jwt.MapClaims{
		"sub": "000123.abc",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	_, err := parseAppleIDToken(raw, staticKeyfunc(key), appleTestClientID)
	assert.Error(t, err)
}

func TestParseAppleIDTokenMalformed(t *testing.T) {
	key := testSigningKey(t)
	_, err := parseAppleIDToken("not.a.jwt", staticKeyfunc(key), appleTestClientID)
	assert.Error(t, err)
}

func TestAppleAuthCodeURLUsesFormPost(t *testing.T) {
	apple := NewApple(appleauth.Config{
		TeamID:     "TEAM123456",
		KeyID:      "KEY1234567",
		ClientID:   appleTestClientID,
		PrivateKey: testPrivateKey,
	}, "https://app.example.com/api/auth/apple/callback")

	url := apple.AuthCodeURL("state-token")
	assert.Contains(t, url, "appleid.apple.com/auth/authorize")
	assert.Contains(t, url, "response_mode=form_post")
	assert.Contains(t, url, "state=state-token")
	assert.Contains(t, url, "client_id=com.example.app")
}
