package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hidori-app/hidori-api/internal/domain"
	"github.com/hidori-app/hidori-api/internal/pkg/jwthelper"
	"github.com/hidori-app/hidori-api/internal/repository"
)

type stubEventRepo struct {
	byID map[string]domain.Event
}

func newStubEventRepo() *stubEventRepo {
	return &stubEventRepo{byID: make(map[string]domain.Event)}
}

func (r *stubEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	r.byID[event.ID] = event
	return event, nil
}

func (r *stubEventRepo) FindByID(_ context.Context, id string) (domain.Event, error) {
	event, ok := r.byID[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	return event, nil
}

func (r *stubEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	r.byID[event.ID] = event
	return event, nil
}

func (r *stubEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubEventParticipants struct {
	deletedEventIDs []string
}

func (r *stubEventParticipants) DeleteByEventID(_ context.Context, eventID string) error {
	r.deletedEventIDs = append(r.deletedEventIDs, eventID)
	return nil
}

func newEventService(repo *stubEventRepo, signingKey []byte) (*EventService, *stubEventParticipants) {
	participants := &stubEventParticipants{}
	store := newStubCredentialStore()
	svc := NewEventService(repo, participants, NewCredentialService(store), signingKey)

	return svc, participants
}

func TestCreateEventHashesPassword(t *testing.T) {
	repo := newStubEventRepo()
	svc, _ := newEventService(repo, gateSigningKey)

	created, err := svc.CreateEvent(context.Background(), weeklyEvent(), "secret123")
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	require.NotEmpty(t, created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secret123")))
	assert.Empty(t, created.LegacyPassword)
}

func TestCreateEventPasswordless(t *testing.T) {
	svc, _ := newEventService(newStubEventRepo(), gateSigningKey)

	created, err := svc.CreateEvent(context.Background(), weeklyEvent(), "")
	require.NoError(t, err)
	assert.False(t, created.RequiresPassword())
}

func TestCreateEventValidatesConfig(t *testing.T) {
	svc, _ := newEventService(newStubEventRepo(), gateSigningKey)
	ctx := context.Background()

	event := weeklyEvent()
	event.ScheduleTypes = append(event.ScheduleTypes, domain.ScheduleType{ID: "ok", Label: "dup"})
	_, err := svc.CreateEvent(ctx, event, "")
	assert.ErrorIs(t, err, ErrDuplicateTypeID)

	event = weeklyEvent()
	for i := range event.ScheduleTypes {
		event.ScheduleTypes[i].IsAvailable = false
	}
	_, err = svc.CreateEvent(ctx, event, "")
	assert.ErrorIs(t, err, ErrNoAvailableType)

	event = weeklyEvent()
	event.YAxis = nil
	_, err = svc.CreateEvent(ctx, event, "")
	assert.ErrorIs(t, err, ErrMissingAxes)

	event = weeklyEvent()
	event.EventType = domain.EventTypeOnetime
	_, err = svc.CreateEvent(ctx, event, "")
	assert.ErrorIs(t, err, ErrMissingDateTimes)

	event = weeklyEvent()
	event.GradeOrder = map[string]int{"ghost": 1}
	_, err = svc.CreateEvent(ctx, event, "")
	assert.ErrorIs(t, err, ErrUnknownGradeOrder)
}

func TestUpdateEventPreservesCredentials(t *testing.T) {
	repo := newStubEventRepo()
	svc, _ := newEventService(repo, gateSigningKey)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, weeklyEvent(), "secret123")
	require.NoError(t, err)

	replacement := weeklyEvent()
	replacement.ID = created.ID
	replacement.Name = "renamed"

	updated, err := svc.UpdateEvent(ctx, replacement)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	assert.Equal(t, created.PasswordHash, updated.PasswordHash)
}

func TestDeleteEventRemovesParticipantsFirst(t *testing.T) {
	repo := newStubEventRepo()
	svc, participants := newEventService(repo, gateSigningKey)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, weeklyEvent(), "")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEvent(ctx, created.ID))
	assert.Equal(t, []string{created.ID}, participants.deletedEventIDs)

	assert.ErrorIs(t, svc.DeleteEvent(ctx, created.ID), ErrEventNotFound)
}

func TestIssueAccessToken(t *testing.T) {
	repo := newStubEventRepo()
	svc, _ := newEventService(repo, gateSigningKey)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, weeklyEvent(), "secret123")
	require.NoError(t, err)

	_, err = svc.IssueAccessToken(ctx, created.ID, "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	token, err := svc.IssueAccessToken(ctx, created.ID, "secret123")
	require.NoError(t, err)
	assert.True(t, jwthelper.VerifyEventToken(gateSigningKey, token, created.ID))

	_, err = svc.IssueAccessToken(ctx, "missing", "secret123")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestIssueAccessTokenWithoutSigningKey(t *testing.T) {
	repo := newStubEventRepo()
	svc, _ := newEventService(repo, nil)
	ctx := context.Background()

	created, err := svc.CreateEvent(ctx, weeklyEvent(), "secret123")
	require.NoError(t, err)

	_, err = svc.IssueAccessToken(ctx, created.ID, "secret123")
	assert.ErrorIs(t, err, ErrTokenUnavailable)
}
