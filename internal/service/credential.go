package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hidori-app/hidori-api/internal/domain"
)

// CredentialStore persists the outcome of a legacy password migration.
type CredentialStore interface {
	UpdateCredential(ctx context.Context, eventID, passwordHash string) error
}

// CredentialService owns an event's password credential. Events created
// before hashing was introduced carry a plaintext password; it is
// upgraded to a bcrypt hash on first read and the plaintext dropped.
type CredentialService struct {
	store CredentialStore
}

func NewCredentialService(store CredentialStore) *CredentialService {
	return &CredentialService{
		store: store,
	}
}

func (s *CredentialService) RequiresPassword(event domain.Event) bool {
	return event.RequiresPassword()
}

// ResolvePasswordHash returns the event's current password hash,
// migrating a legacy plaintext password as a side effect. The migration
// write is best-effort: on failure the in-memory hash still serves the
// current request and the next read re-attempts the migration.
// Returns "" when the event has no password.
func (s *CredentialService) ResolvePasswordHash(ctx context.Context, event domain.Event) string {
	if event.PasswordHash != "" {
		return event.PasswordHash
	}
	if event.LegacyPassword == "" {
		return ""
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(event.LegacyPassword), bcrypt.DefaultCost)
	if err != nil {
		zap.L().Error("hashing legacy event password failed",
			zap.String("eventID", event.ID),
			zap.Error(err))

		return ""
	}

	if err := s.store.UpdateCredential(ctx, event.ID, string(hash)); err != nil {
		zap.L().Warn("persisting migrated password hash failed",
			zap.String("eventID", event.ID),
			zap.Error(err))
	}

	return string(hash)
}

// VerifyPassword checks candidate against the event's credential.
// Passwordless events accept any candidate; protected events reject an
// empty candidate; comparison errors fail closed.
func (s *CredentialService) VerifyPassword(ctx context.Context, event domain.Event, candidate string) bool {
	if !s.RequiresPassword(event) {
		return true
	}
	if candidate == "" {
		return false
	}

	hash := s.ResolvePasswordHash(ctx, event)
	if hash == "" {
		return false
	}

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}
