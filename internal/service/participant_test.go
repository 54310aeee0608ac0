package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidori-app/hidori-api/internal/domain"
	"github.com/hidori-app/hidori-api/internal/repository"
)

type stubParticipantRepo struct {
	byID map[string]domain.Participant
}

func newStubParticipantRepo() *stubParticipantRepo {
	return &stubParticipantRepo{byID: make(map[string]domain.Participant)}
}

func (r *stubParticipantRepo) Create(_ context.Context, p domain.Participant) (domain.Participant, error) {
	r.byID[p.ID] = p
	return p, nil
}

func (r *stubParticipantRepo) FindByID(_ context.Context, eventID, id string) (domain.Participant, error) {
	p, ok := r.byID[id]
	if !ok || p.EventID != eventID {
		return domain.Participant{}, repository.ErrParticipantNotFound
	}
	return p, nil
}

func (r *stubParticipantRepo) ListByEventID(_ context.Context, eventID string) ([]domain.Participant, error) {
	var out []domain.Participant
	for _, p := range r.byID {
		if p.EventID == eventID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubParticipantRepo) Update(_ context.Context, p domain.Participant) (domain.Participant, error) {
	r.byID[p.ID] = p
	return p, nil
}

func (r *stubParticipantRepo) Delete(_ context.Context, eventID, id string) error {
	p, ok := r.byID[id]
	if !ok || p.EventID != eventID {
		return repository.ErrParticipantNotFound
	}
	delete(r.byID, id)
	return nil
}

func TestCreateParticipantRecurring(t *testing.T) {
	svc := NewParticipantService(newStubParticipantRepo())
	event := weeklyEvent()

	created, err := svc.CreateParticipant(context.Background(), event, domain.Participant{
		Name:     "Alice",
		Comment:  "  ",
		Schedule: map[string]string{"Mon-1": "ok"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "E1", created.EventID)
	assert.Equal(t, "no comment", created.Comment)
	// Passwordless event: no edit token.
	assert.Empty(t, created.EditToken)
}

func TestCreateParticipantMintsEditTokenWhenProtected(t *testing.T) {
	svc := NewParticipantService(newStubParticipantRepo())
	event := weeklyEvent()
	event.PasswordHash = "$2a$10$notarealhashbutnotempty"

	created, err := svc.CreateParticipant(context.Background(), event, domain.Participant{
		Name:     "Alice",
		Schedule: map[string]string{"Mon-1": "ok"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.EditToken)
}

func TestCreateParticipantRejectsUnknownReferences(t *testing.T) {
	svc := NewParticipantService(newStubParticipantRepo())
	event := weeklyEvent()
	event.GradeOptions = []string{"freshman"}

	_, err := svc.CreateParticipant(context.Background(), event, domain.Participant{
		Name:     "Alice",
		Grade:    "senior",
		Schedule: map[string]string{"Mon-1": "ok"},
	})
	assert.ErrorIs(t, err, ErrUnknownGrade)

	_, err = svc.CreateParticipant(context.Background(), event, domain.Participant{
		Name:     "Alice",
		Schedule: map[string]string{"Mon-1": "ghost"},
	})
	assert.ErrorIs(t, err, ErrUnknownScheduleType)

	_, err = svc.CreateParticipant(context.Background(), event, domain.Participant{
		Name:     "Alice",
		Schedule: map[string]string{"Fri-1": "ok"},
	})
	assert.ErrorIs(t, err, ErrUnknownSlot)
}

func TestCreateParticipantOnetimeValidation(t *testing.T) {
	svc := NewParticipantService(newStubParticipantRepo())
	event := domain.Event{
		ID:              "E2",
		EventType:       domain.EventTypeOnetime,
		DateTimeOptions: []string{"5/1 19:00"},
		ScheduleTypes:   []domain.ScheduleType{{ID: "ok", IsAvailable: true}},
	}

	_, err := svc.CreateParticipant(context.Background(), event, domain.Participant{
		Name:    "Alice",
		Entries: []domain.SlotEntry{{DateTime: "5/9 19:00", TypeID: "ok"}},
	})
	assert.ErrorIs(t, err, ErrUnknownSlot)

	created, err := svc.CreateParticipant(context.Background(), event, domain.Participant{
		Name:    "Alice",
		Entries: []domain.SlotEntry{{DateTime: "5/1 19:00", TypeID: "ok"}},
	})
	require.NoError(t, err)
	assert.Len(t, created.Entries, 1)
}

func TestUpdateParticipantEditToken(t *testing.T) {
	repo := newStubParticipantRepo()
	svc := NewParticipantService(repo)
	event := weeklyEvent()
	event.PasswordHash = "$2a$10$notarealhashbutnotempty"

	created, err := svc.CreateParticipant(context.Background(), event, domain.Participant{
		Name:     "Alice",
		Schedule: map[string]string{"Mon-1": "ok"},
	})
	require.NoError(t, err)

	_, err = svc.UpdateParticipant(context.Background(), event, created.ID, "wrong-token", domain.Participant{
		Name:     "Alice",
		Schedule: map[string]string{"Tue-1": "ok"},
	})
	assert.ErrorIs(t, err, ErrWrongEditToken)

	updated, err := svc.UpdateParticipant(context.Background(), event, created.ID, created.EditToken, domain.Participant{
		Name:     "Alice",
		Schedule: map[string]string{"Tue-1": "ok"},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, created.EditToken, updated.EditToken)
	assert.Equal(t, map[string]string{"Tue-1": "ok"}, updated.Schedule)
}

func TestDeleteParticipant(t *testing.T) {
	repo := newStubParticipantRepo()
	svc := NewParticipantService(repo)
	event := weeklyEvent()
	event.PasswordHash = "$2a$10$notarealhashbutnotempty"

	created, err := svc.CreateParticipant(context.Background(), event, domain.Participant{
		Name:     "Alice",
		Schedule: map[string]string{"Mon-1": "ok"},
	})
	require.NoError(t, err)

	err = svc.DeleteParticipant(context.Background(), event, created.ID, "wrong-token")
	assert.ErrorIs(t, err, ErrWrongEditToken)

	err = svc.DeleteParticipant(context.Background(), event, created.ID, created.EditToken)
	require.NoError(t, err)

	err = svc.DeleteParticipant(context.Background(), event, created.ID, created.EditToken)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}
