package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hidori-app/hidori-api/internal/domain"
)

func validCreateRequest() CreateEventRequest {
	return CreateEventRequest{
		SaveEventRequest: SaveEventRequest{
			Name:      "band practice",
			EventType: "recurring",
			XAxis:     []string{"Mon", "Tue"},
			YAxis:     []string{"1", "2"},
			ScheduleTypes: []ScheduleTypePayload{
				{ID: "ok", Label: "available", IsAvailable: true},
			},
		},
	}
}

func TestCreateEventRequestValid(t *testing.T) {
	req := validCreateRequest()
	assert.NoError(t, req.Validate())
}

func TestCreateEventRequestRequiresName(t *testing.T) {
	req := validCreateRequest()
	req.Name = ""
	assert.Error(t, req.Validate())
}

func TestCreateEventRequestRejectsBadEventType(t *testing.T) {
	req := validCreateRequest()
	req.EventType = "monthly"
	assert.Error(t, req.Validate())
}

func TestCreateEventRequestRequiresAxesForRecurring(t *testing.T) {
	req := validCreateRequest()
	req.YAxis = nil
	assert.Error(t, req.Validate())
}

func TestCreateEventRequestRequiresDateTimesForOnetime(t *testing.T) {
	req := validCreateRequest()
	req.EventType = "onetime"
	req.XAxis = nil
	req.YAxis = nil
	assert.Error(t, req.Validate())

	req.DateTimeOptions = []string{"5/1 19:00"}
	assert.NoError(t, req.Validate())
}

func TestCreateEventRequestRejectsTypeWithoutLabel(t *testing.T) {
	req := validCreateRequest()
	req.ScheduleTypes = append(req.ScheduleTypes, ScheduleTypePayload{ID: "no"})
	assert.Error(t, req.Validate())
}

func TestCreateEventRequestRequiresAvailableType(t *testing.T) {
	req := validCreateRequest()
	req.ScheduleTypes = []ScheduleTypePayload{
		{ID: "no", Label: "unavailable", IsAvailable: false},
	}
	assert.ErrorIs(t, req.Validate(), errNoAvailableType)
}

func TestCreateEventRequestPasswordPolicy(t *testing.T) {
	cases := []struct {
		password string
		valid    bool
	}{
		{"", true}, // passwordless events are allowed
		{"secret123", true},
		{"1234abcd", true},
		{"short1a", false},     // under 8 characters
		{"onlyletters", false}, // no digit
		{"12345678", false},    // no letter
	}

	for _, tc := range cases {
		req := validCreateRequest()
		req.Password = tc.password
		err := req.Validate()
		if tc.valid {
			assert.NoError(t, err, "password %q", tc.password)
		} else {
			assert.ErrorIs(t, err, errInvalidPassword, "password %q", tc.password)
		}
	}
}

func TestSaveEventRequestToDomain(t *testing.T) {
	req := validCreateRequest()
	req.GradeOptions = []string{"freshman"}
	req.GradeOrder = map[string]int{"freshman": 1}

	event := req.ToDomain()

	assert.Equal(t, domain.EventTypeRecurring, event.EventType)
	assert.Equal(t, []string{"Mon", "Tue"}, event.XAxis)
	assert.Equal(t, []domain.ScheduleType{{ID: "ok", Label: "available", IsAvailable: true}}, event.ScheduleTypes)
	assert.Equal(t, map[string]int{"freshman": 1}, event.GradeOrder)
}
