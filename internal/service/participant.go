package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hidori-app/hidori-api/internal/domain"
	"github.com/hidori-app/hidori-api/internal/repository"
)

const noComment = "no comment"

var (
	ErrParticipantNotFound = repository.ErrParticipantNotFound
	ErrUnknownGrade        = errors.New("grade is not one of the event's options")
	ErrUnknownScheduleType = errors.New("schedule references an unknown type")
	ErrUnknownSlot         = errors.New("schedule references an unknown slot")
	ErrWrongEditToken      = errors.New("edit token mismatch")
)

type ParticipantRepository interface {
	Create(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	FindByID(ctx context.Context, eventID, id string) (domain.Participant, error)
	ListByEventID(ctx context.Context, eventID string) ([]domain.Participant, error)
	Update(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	Delete(ctx context.Context, eventID, id string) error
}

type ParticipantService struct {
	repo ParticipantRepository
}

func NewParticipantService(repo ParticipantRepository) *ParticipantService {
	return &ParticipantService{
		repo: repo,
	}
}

// CreateParticipant stores a new response. For password-protected
// events an edit token is minted and attached; the caller must return
// it to the client exactly once; losing it locks the response forever.
func (s *ParticipantService) CreateParticipant(ctx context.Context, event domain.Event, participant domain.Participant) (domain.Participant, error) {
	if err := validateResponse(event, &participant); err != nil {
		return domain.Participant{}, err
	}

	participant.ID = uuid.NewString()
	participant.EventID = event.ID
	if event.RequiresPassword() {
		participant.EditToken = uuid.NewString()
	}

	created, err := s.repo.Create(ctx, participant)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ParticipantService) ListParticipants(ctx context.Context, eventID string) ([]domain.Participant, error) {
	participants, err := s.repo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByEventID -> %w", err)
	}

	return participants, nil
}

func (s *ParticipantService) UpdateParticipant(ctx context.Context, event domain.Event, participantID, editToken string, participant domain.Participant) (domain.Participant, error) {
	existing, err := s.findForEdit(ctx, event, participantID, editToken)
	if err != nil {
		return domain.Participant{}, err
	}

	if err := validateResponse(event, &participant); err != nil {
		return domain.Participant{}, err
	}

	participant.ID = existing.ID
	participant.EventID = existing.EventID
	participant.EditToken = existing.EditToken
	participant.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, participant)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ParticipantService) DeleteParticipant(ctx context.Context, event domain.Event, participantID, editToken string) error {
	if _, err := s.findForEdit(ctx, event, participantID, editToken); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, event.ID, participantID); err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *ParticipantService) findForEdit(ctx context.Context, event domain.Event, participantID, editToken string) (domain.Participant, error) {
	existing, err := s.repo.FindByID(ctx, event.ID, participantID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.Participant{}, ErrParticipantNotFound
		}

		return domain.Participant{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	// Constant-time compare as defense in depth; there is no recovery
	// path for a lost token.
	if existing.EditToken != "" &&
		subtle.ConstantTimeCompare([]byte(editToken), []byte(existing.EditToken)) != 1 {
		return domain.Participant{}, ErrWrongEditToken
	}

	return existing, nil
}

// validateResponse checks a response against the event's current
// configuration and normalizes its comment. Stale references in already
// stored responses are tolerated at read time; new writes are not
// allowed to introduce them.
func validateResponse(event domain.Event, participant *domain.Participant) error {
	if participant.Grade != "" && !event.HasGradeOption(participant.Grade) {
		return ErrUnknownGrade
	}

	participant.Comment = strings.TrimSpace(participant.Comment)
	if participant.Comment == "" {
		participant.Comment = noComment
	}

	switch event.EventType {
	case domain.EventTypeOnetime:
		participant.Schedule = nil
		for _, entry := range participant.Entries {
			if !event.HasDateTimeOption(entry.DateTime) {
				return ErrUnknownSlot
			}
			if !event.HasScheduleType(entry.TypeID) {
				return ErrUnknownScheduleType
			}
		}
	default:
		participant.Entries = nil
		slots := make(map[string]struct{})
		for _, key := range event.SlotKeys() {
			slots[key] = struct{}{}
		}
		for key, typeID := range participant.Schedule {
			if _, ok := slots[key]; !ok {
				return ErrUnknownSlot
			}
			if !event.HasScheduleType(typeID) {
				return ErrUnknownScheduleType
			}
		}
	}

	return nil
}
