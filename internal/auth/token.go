package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether tok is a JWT whose exp claim has passed.
// Opaque tokens and JWTs without an exp claim are never reported as
// expired; the upstream is the authority on those.
func tokenExpired(tok string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
