package token

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCredential(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestIsExpired_FutureExpiry(t *testing.T) {
	cred := makeCredential(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	assert.False(t, IsExpired(cred))
}

func TestIsExpired_PastExpiry(t *testing.T) {
	cred := makeCredential(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	assert.True(t, IsExpired(cred))
}

func TestIsExpired_FailsSafe(t *testing.T) {
	cases := []struct {
		name       string
		credential string
	}{
		{"empty", ""},
		{"not a token", "not-a-token"},
		{"two segments", "aGVhZGVy.cGF5bG9hZA"},
		{"garbage payload segment", "aGVhZGVy.!!!!.c2ln"},
		{"missing expiry claim", makeCredential(t, jwt.MapClaims{"sub": "42"})},
		{"non-numeric expiry", makeCredential(t, jwt.MapClaims{"exp": "soon"})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, IsExpired(tc.credential))
		})
	}
}

func TestIsExpired_BoundaryUsesProvidedClock(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	cred := makeCredential(t, jwt.MapClaims{"exp": now.Add(time.Second).Unix()})
	assert.False(t, isExpiredAt(cred, now))
	assert.True(t, isExpiredAt(cred, now.Add(2*time.Second)))
}

// A signature the portal cannot check must not matter: expiry inspection is
// unverified by design and the signing key is unknown here.
func TestIsExpired_IgnoresSignature(t *testing.T) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)
	assert.False(t, IsExpired(signed))
}
