package service

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/hidori-app/hidori-api/internal/domain"
	"github.com/hidori-app/hidori-api/internal/pkg/jwthelper"
)

// ErrUnauthorized carries a deliberately generic message; the gate never
// reveals whether a password is set or what failed.
var ErrUnauthorized = errors.New("password required")

// AccessRequest is the credential material extracted from one request.
// Password resolution precedence (body field, header, query parameter)
// happens at the transport layer.
type AccessRequest struct {
	Password    string
	BearerToken string
}

// AccessGate makes the allow/deny decision for every request that
// mutates an event or its responses. Rate limiting runs before the gate
// in the middleware chain; the gate itself has no side effects.
type AccessGate struct {
	creds      *CredentialService
	signingKey []byte
	adminToken string
}

func NewAccessGate(creds *CredentialService, signingKey []byte, adminToken string) *AccessGate {
	return &AccessGate{
		creds:      creds,
		signingKey: signingKey,
		adminToken: adminToken,
	}
}

// Authorize returns nil when the request may proceed:
// admin override, passwordless event, verified password, or a valid
// bearer token for this event. Anything else is ErrUnauthorized.
func (g *AccessGate) Authorize(ctx context.Context, event domain.Event, req AccessRequest) error {
	if g.isAdmin(req.BearerToken) {
		return nil
	}

	if !g.creds.RequiresPassword(event) {
		return nil
	}

	if req.Password != "" && g.creds.VerifyPassword(ctx, event, req.Password) {
		return nil
	}

	if req.BearerToken != "" && jwthelper.VerifyEventToken(g.signingKey, req.BearerToken, event.ID) {
		return nil
	}

	return ErrUnauthorized
}

// isAdmin is never true when no admin token is configured.
func (g *AccessGate) isAdmin(bearerToken string) bool {
	if g.adminToken == "" || bearerToken == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(bearerToken), []byte(g.adminToken)) == 1
}
