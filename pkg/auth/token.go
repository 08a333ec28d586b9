package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var jwtSigningMethod = jwt.SigningMethodHS256

// HS256Verifier accepts locally minted tokens signed with a shared secret.
// It exists for local development and tests; config refuses it in prod.
type HS256Verifier struct {
	secret []byte
	issuer string
}

func NewHS256Verifier(secret, issuer string) (*HS256Verifier, error) {
	if secret == "" {
		return nil, fmt.Errorf("hs256 secret is required")
	}
	return &HS256Verifier{secret: []byte(secret), issuer: issuer}, nil
}

func (h *HS256Verifier) Verify(ctx context.Context, token, audience string) (*Claims, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwtSigningMethod.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	}
	if h.issuer != "" {
		opts = append(opts, jwt.WithIssuer(h.issuer))
	}

	claims := &DevTokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return h.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("%w: token invalid", ErrVerification)
	}

	return &Claims{
		Subject:       claims.Subject,
		Email:         claims.Email,
		EmailVerified: claims.EmailVerified,
		Name:          claims.Name,
		Picture:       claims.Picture,
	}, nil
}

// DevTokenInput describes a token minted by MintDevToken.
type DevTokenInput struct {
	Email    string
	Name     string
	Picture  string
	Audience string
	Issuer   string
	TTL      time.Duration
}

// MintDevToken signs a Google-shaped ID token with the shared secret.
func MintDevToken(secret string, now time.Time, in DevTokenInput) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("hs256 secret is required")
	}
	ttl := in.TTL
	if ttl == 0 {
		ttl = time.Hour
	}

	claims := DevTokenClaims{
		Email:         in.Email,
		EmailVerified: in.Email != "",
		Name:          in.Name,
		Picture:       in.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    in.Issuer,
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}
	if in.Audience != "" {
		claims.Audience = jwt.ClaimStrings{in.Audience}
	}

	signed, err := jwt.NewWithClaims(jwtSigningMethod, claims).SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing dev token: %w", err)
	}
	return signed, nil
}
