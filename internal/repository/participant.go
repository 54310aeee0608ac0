package repository

import (
	"context"
	"fmt"

	"github.com/hidori-app/hidori-api/internal/domain"
	"github.com/hidori-app/hidori-api/internal/repository/dao"
)

var ErrParticipantNotFound = dao.ErrParticipantNotFound

type ParticipantRepository struct {
	dao *dao.ParticipantDAO
}

func NewParticipantRepository(dao *dao.ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) domainToDao(p domain.Participant) dao.Participant {
	entries := make([]dao.SlotEntry, len(p.Entries))
	for i, e := range p.Entries {
		entries[i] = dao.SlotEntry(e)
	}

	return dao.Participant{
		ID:        p.ID,
		EventID:   p.EventID,
		Name:      p.Name,
		Grade:     p.Grade,
		Comment:   p.Comment,
		Schedule:  p.Schedule,
		Entries:   entries,
		EditToken: p.EditToken,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *ParticipantRepository) daoToDomain(p dao.Participant) domain.Participant {
	entries := make([]domain.SlotEntry, len(p.Entries))
	for i, e := range p.Entries {
		entries[i] = domain.SlotEntry(e)
	}

	return domain.Participant{
		ID:        p.ID,
		EventID:   p.EventID,
		Name:      p.Name,
		Grade:     p.Grade,
		Comment:   p.Comment,
		Schedule:  p.Schedule,
		Entries:   entries,
		EditToken: p.EditToken,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *ParticipantRepository) Create(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(participant))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ParticipantRepository) FindByID(ctx context.Context, eventID, id string) (domain.Participant, error) {
	participant, err := r.dao.FindByID(ctx, eventID, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(participant), nil
}

func (r *ParticipantRepository) ListByEventID(ctx context.Context, eventID string) ([]domain.Participant, error) {
	participants, err := r.dao.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByEventID -> %w", err)
	}

	out := make([]domain.Participant, len(participants))
	for i, p := range participants {
		out[i] = r.daoToDomain(p)
	}

	return out, nil
}

func (r *ParticipantRepository) Update(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(participant))
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, eventID, id string) error {
	if err := r.dao.Delete(ctx, eventID, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	if err := r.dao.DeleteByEventID(ctx, eventID); err != nil {
		return fmt.Errorf("r.dao.DeleteByEventID -> %w", err)
	}

	return nil
}
