package repository

import (
	"context"
	"fmt"

	"github.com/hidori-app/hidori-api/internal/domain"
	"github.com/hidori-app/hidori-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventRepository struct {
	dao *dao.EventDAO
}

func NewEventRepository(dao *dao.EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	types := make([]dao.ScheduleType, len(e.ScheduleTypes))
	for i, st := range e.ScheduleTypes {
		types[i] = dao.ScheduleType(st)
	}

	return dao.Event{
		ID:              e.ID,
		Name:            e.Name,
		Description:     e.Description,
		EventType:       string(e.EventType),
		XAxis:           e.XAxis,
		YAxis:           e.YAxis,
		DateTimeOptions: e.DateTimeOptions,
		ScheduleTypes:   types,
		GradeOptions:    e.GradeOptions,
		GradeOrder:      e.GradeOrder,
		PasswordHash:    e.PasswordHash,
		LegacyPassword:  e.LegacyPassword,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	types := make([]domain.ScheduleType, len(e.ScheduleTypes))
	for i, st := range e.ScheduleTypes {
		types[i] = domain.ScheduleType(st)
	}

	return domain.Event{
		ID:              e.ID,
		Name:            e.Name,
		Description:     e.Description,
		EventType:       domain.EventType(e.EventType),
		XAxis:           e.XAxis,
		YAxis:           e.YAxis,
		DateTimeOptions: e.DateTimeOptions,
		ScheduleTypes:   types,
		GradeOptions:    e.GradeOptions,
		GradeOrder:      e.GradeOrder,
		PasswordHash:    e.PasswordHash,
		LegacyPassword:  e.LegacyPassword,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (domain.Event, error) {
	event, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(event), nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) UpdateCredential(ctx context.Context, id, passwordHash string) error {
	if err := r.dao.UpdateCredential(ctx, id, passwordHash); err != nil {
		return fmt.Errorf("r.dao.UpdateCredential -> %w", err)
	}

	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}
