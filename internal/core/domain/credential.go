package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Credential is the opaque bearer token paired with an Identity.
type Credential string

// Empty reports whether no token is present.
func (c Credential) Empty() bool { return c == "" }

// AuthorizationHeader returns the value for the Authorization header.
func (c Credential) AuthorizationHeader() string {
	return "Bearer " + string(c)
}

// ExpiresAt reads the exp claim when the token happens to be a JWT. The
// signature is not verified; the backend remains the authority on validity.
func (c Credential) ExpiresAt() (time.Time, bool) {
	if c.Empty() {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(string(c), claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time.UTC(), true
}
