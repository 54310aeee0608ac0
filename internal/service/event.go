package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hidori-app/hidori-api/internal/domain"
	"github.com/hidori-app/hidori-api/internal/pkg/jwthelper"
	"github.com/hidori-app/hidori-api/internal/repository"
)

var (
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrWrongPassword     = errors.New("wrong password")
	ErrTokenUnavailable  = jwthelper.ErrMissingSigningKey
	ErrNoAvailableType   = errors.New("at least one schedule type must be marked available")
	ErrDuplicateTypeID   = errors.New("schedule type ids must be unique within an event")
	ErrMissingAxes       = errors.New("recurring events need both axes")
	ErrMissingDateTimes  = errors.New("one-time events need at least one date-time option")
	ErrUnknownGradeOrder = errors.New("grade order references a label missing from grade options")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id string) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id string) error
}

type EventParticipantRepository interface {
	DeleteByEventID(ctx context.Context, eventID string) error
}

type EventService struct {
	repo         EventRepository
	participants EventParticipantRepository
	creds        *CredentialService
	signingKey   []byte
}

func NewEventService(repo EventRepository, participants EventParticipantRepository, creds *CredentialService, signingKey []byte) *EventService {
	return &EventService{
		repo:         repo,
		participants: participants,
		creds:        creds,
		signingKey:   signingKey,
	}
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event, password string) (domain.Event, error) {
	if err := validateEventConfig(event); err != nil {
		return domain.Event{}, err
	}

	event.ID = uuid.NewString()
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return domain.Event{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
		}
		event.PasswordHash = string(hash)
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

// UpdateEvent replaces the event's configuration. Credential fields and
// creation time are carried over from the stored record; the organizer
// changes the password through its own flow, not here.
func (s *EventService) UpdateEvent(ctx context.Context, event domain.Event) (domain.Event, error) {
	if err := validateEventConfig(event); err != nil {
		return domain.Event{}, err
	}

	existing, err := s.GetEvent(ctx, event.ID)
	if err != nil {
		return domain.Event{}, err
	}

	event.PasswordHash = existing.PasswordHash
	event.LegacyPassword = existing.LegacyPassword
	event.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.participants.DeleteByEventID(ctx, id); err != nil {
		return fmt.Errorf("s.participants.DeleteByEventID -> %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// IssueAccessToken exchanges a correct event password for a bearer
// token that asserts the holder authenticated against this event.
func (s *EventService) IssueAccessToken(ctx context.Context, eventID, password string) (string, error) {
	event, err := s.GetEvent(ctx, eventID)
	if err != nil {
		return "", err
	}

	if !s.creds.VerifyPassword(ctx, event, password) {
		return "", ErrWrongPassword
	}

	token, err := jwthelper.GenerateEventToken(s.signingKey, event.ID)
	if err != nil {
		if errors.Is(err, jwthelper.ErrMissingSigningKey) {
			return "", ErrTokenUnavailable
		}

		return "", fmt.Errorf("jwthelper.GenerateEventToken -> %w", err)
	}

	return token, nil
}

func validateEventConfig(event domain.Event) error {
	seen := make(map[string]struct{}, len(event.ScheduleTypes))
	available := false
	for _, st := range event.ScheduleTypes {
		if _, dup := seen[st.ID]; dup {
			return ErrDuplicateTypeID
		}
		seen[st.ID] = struct{}{}
		if st.IsAvailable {
			available = true
		}
	}
	if !available {
		return ErrNoAvailableType
	}

	switch event.EventType {
	case domain.EventTypeRecurring:
		if len(event.XAxis) == 0 || len(event.YAxis) == 0 {
			return ErrMissingAxes
		}
	case domain.EventTypeOnetime:
		if len(event.DateTimeOptions) == 0 {
			return ErrMissingDateTimes
		}
	}

	for label := range event.GradeOrder {
		if !event.HasGradeOption(label) {
			return ErrUnknownGradeOrder
		}
	}

	return nil
}
