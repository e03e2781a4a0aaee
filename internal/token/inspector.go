package token

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// IsExpired reports whether the bearer credential carries an expiry claim in
// the past. The claims segment is decoded without verifying the signature, so
// the answer is only good for discarding stale credentials, never for trusting
// them. Fails safe: anything that cannot be decoded, or that carries no expiry
// claim, counts as expired.
func IsExpired(credential string) bool {
	return isExpiredAt(credential, time.Now())
}

func isExpiredAt(credential string, now time.Time) bool {
	if credential == "" {
		return true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(credential, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.Before(now)
}
