package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"
)

// GoogleVerifier checks Google-issued ID tokens (signature, expiry, issuer, audience).
type GoogleVerifier struct {
	validator *idtoken.Validator
}

// NewGoogleVerifier builds a verifier that caches Google's signing certificates.
func NewGoogleVerifier(ctx context.Context, opts ...option.ClientOption) (*GoogleVerifier, error) {
	v, err := idtoken.NewValidator(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating google id token validator: %w", err)
	}
	return &GoogleVerifier{validator: v}, nil
}

func (g *GoogleVerifier) Verify(ctx context.Context, token, audience string) (*Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrVerification)
	}
	payload, err := g.validator.Validate(ctx, token, audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrVerification, err)
	}
	return &Claims{
		Subject:       payload.Subject,
		Email:         stringClaim(payload.Claims, "email"),
		EmailVerified: boolClaim(payload.Claims, "email_verified"),
		Name:          stringClaim(payload.Claims, "name"),
		Picture:       stringClaim(payload.Claims, "picture"),
	}, nil
}
