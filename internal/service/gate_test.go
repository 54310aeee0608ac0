package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hidori-app/hidori-api/internal/domain"
	"github.com/hidori-app/hidori-api/internal/pkg/jwthelper"
)

var gateSigningKey = []byte("gate-test-signing-key")

func protectedEvent(t *testing.T) domain.Event {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	return domain.Event{ID: "E1", PasswordHash: string(hash)}
}

func newGate(adminToken string) *AccessGate {
	return NewAccessGate(NewCredentialService(newStubCredentialStore()), gateSigningKey, adminToken)
}

func TestGateAllowsPasswordlessEvent(t *testing.T) {
	gate := newGate("")
	err := gate.Authorize(context.Background(), domain.Event{ID: "E1"}, AccessRequest{})
	assert.NoError(t, err)
}

func TestGateAllowsCorrectPassword(t *testing.T) {
	gate := newGate("")
	err := gate.Authorize(context.Background(), protectedEvent(t), AccessRequest{Password: "secret123"})
	assert.NoError(t, err)
}

func TestGateRejectsWrongPassword(t *testing.T) {
	gate := newGate("")
	err := gate.Authorize(context.Background(), protectedEvent(t), AccessRequest{Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGateRejectsMissingCredentials(t *testing.T) {
	gate := newGate("")
	err := gate.Authorize(context.Background(), protectedEvent(t), AccessRequest{})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGateAllowsEventToken(t *testing.T) {
	gate := newGate("")
	token, err := jwthelper.GenerateEventToken(gateSigningKey, "E1")
	require.NoError(t, err)

	err = gate.Authorize(context.Background(), protectedEvent(t), AccessRequest{BearerToken: token})
	assert.NoError(t, err)
}

func TestGateRejectsTokenForOtherEvent(t *testing.T) {
	gate := newGate("")
	token, err := jwthelper.GenerateEventToken(gateSigningKey, "E2")
	require.NoError(t, err)

	err = gate.Authorize(context.Background(), protectedEvent(t), AccessRequest{BearerToken: token})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestGateAdminOverride(t *testing.T) {
	gate := newGate("admin-secret")
	err := gate.Authorize(context.Background(), protectedEvent(t), AccessRequest{BearerToken: "admin-secret"})
	assert.NoError(t, err)
}

func TestGateAdminOverrideUnavailableWhenUnconfigured(t *testing.T) {
	// No admin token configured: the override never matches, not even
	// an empty bearer against an empty configuration value.
	gate := newGate("")
	err := gate.Authorize(context.Background(), protectedEvent(t), AccessRequest{BearerToken: "admin-secret"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
