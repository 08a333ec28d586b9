package auth

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrVerification marks every failure to establish a token's authenticity:
// bad signature, expiry, wrong audience, malformed input, or a timed-out check.
var ErrVerification = errors.New("identity token verification failed")

// Claims are the verified identity attributes extracted from an ID token.
type Claims struct {
	Subject       string
	Email         string
	EmailVerified bool
	Name          string
	Picture       string
}

// Verifier validates an identity token against the expected audience.
type Verifier interface {
	Verify(ctx context.Context, token, audience string) (*Claims, error)
}

// DevTokenClaims is the JWT body accepted by the HS256 verifier. Field names
// mirror Google's ID token so clients can switch verifiers transparently.
type DevTokenClaims struct {
	Email         string `json:"email,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

func stringClaim(values map[string]any, key string) string {
	if values == nil {
		return ""
	}
	if v, ok := values[key].(string); ok {
		return v
	}
	return ""
}

func boolClaim(values map[string]any, key string) bool {
	if values == nil {
		return false
	}
	switch v := values[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	}
	return false
}
