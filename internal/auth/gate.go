package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgauth "github.com/boltfit/catalog-backend/pkg/auth"
	pkgerrors "github.com/boltfit/catalog-backend/pkg/errors"
	"github.com/boltfit/catalog-backend/pkg/logger"
	"github.com/boltfit/catalog-backend/pkg/metrics"
)

const (
	invalidTokenMessage = "invalid or expired google token"
	forbiddenMessage    = "access denied: not an authorized admin"
)

var (
	// ErrInvalidToken is wrapped by every verification failure.
	ErrInvalidToken = errors.New("invalid token")
	// ErrForbidden is wrapped when a verified email is not on the allow-list.
	ErrForbidden = errors.New("email not on admin allow-list")
)

// Authorizer turns a raw bearer token into an admin identity.
type Authorizer interface {
	Authorize(ctx context.Context, rawToken string) (Identity, error)
}

type outcomeRecorder interface {
	IncOutcome(outcome string)
}

// GateParams bundles the dependencies required to build a gate.
type GateParams struct {
	Verifier      pkgauth.Verifier
	Audience      string
	AllowList     AllowList
	VerifyTimeout time.Duration
	Logger        *logger.Logger
	Metrics       outcomeRecorder
}

// Gate combines token verification with the allow-list check.
type Gate struct {
	verifier pkgauth.Verifier
	audience string
	allow    AllowList
	timeout  time.Duration
	logg     *logger.Logger
	metrics  outcomeRecorder
}

func NewGate(params GateParams) (*Gate, error) {
	if params.Verifier == nil {
		return nil, fmt.Errorf("verifier is required")
	}
	if params.Audience == "" {
		return nil, fmt.Errorf("audience is required")
	}
	if params.AllowList.Len() == 0 {
		return nil, fmt.Errorf("allow-list must not be empty")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	return &Gate{
		verifier: params.Verifier,
		audience: params.Audience,
		allow:    params.AllowList,
		timeout:  params.VerifyTimeout,
		logg:     logg,
		metrics:  params.Metrics,
	}, nil
}

// Authorize verifies the token and then checks allow-list membership.
// Verification failures are UNAUTHORIZED; a verified non-member is FORBIDDEN.
func (g *Gate) Authorize(ctx context.Context, rawToken string) (Identity, error) {
	verifyCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		verifyCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	claims, err := g.verifier.Verify(verifyCtx, rawToken, g.audience)
	if err == nil && claims == nil {
		err = errors.New("verifier returned no claims")
	}
	if err != nil {
		g.record(metrics.OutcomeInvalidToken)
		g.logg.Warn(g.logg.WithField(ctx, "reason", err.Error()), "auth.token.invalid")
		return Identity{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, fmt.Errorf("%w: %v", ErrInvalidToken, err), invalidTokenMessage)
	}

	email := NormalizeEmail(claims.Email)
	auditCtx := g.logg.WithAdminEmail(ctx, email)
	if !g.allow.Contains(email) {
		g.record(metrics.OutcomeForbidden)
		g.logg.Warn(auditCtx, "auth.admin.forbidden")
		return Identity{}, pkgerrors.Wrap(pkgerrors.CodeForbidden, ErrForbidden, forbiddenMessage)
	}

	g.record(metrics.OutcomeAuthorized)
	g.logg.Info(auditCtx, "auth.admin.authorized")
	return NewIdentity(email, claims.Name, claims.Picture), nil
}

func (g *Gate) record(outcome string) {
	if g.metrics != nil {
		g.metrics.IncOutcome(outcome)
	}
}
