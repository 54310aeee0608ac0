package request

import (
	"errors"
	"fmt"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/hidori-app/hidori-api/internal/domain"
)

const passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`

var (
	errInvalidPassword = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errNoAvailableType = errors.New("at least one schedule type must be marked available")
	errBadEventType    = errors.New("eventType must be recurring or onetime")
)

type ScheduleTypePayload struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	IsAvailable bool   `json:"isAvailable"`
}

type SaveEventRequest struct {
	Name            string                `json:"name"`
	Description     string                `json:"description"`
	EventType       string                `json:"eventType"`
	XAxis           []string              `json:"xAxis"`
	YAxis           []string              `json:"yAxis"`
	DateTimeOptions []string              `json:"dateTimeOptions"`
	ScheduleTypes   []ScheduleTypePayload `json:"scheduleTypes"`
	GradeOptions    []string              `json:"gradeOptions"`
	GradeOrder      map[string]int        `json:"gradeOrder"`
}

type CreateEventRequest struct {
	SaveEventRequest
	Password string `json:"password"`
}

type UpdateEventRequest struct {
	SaveEventRequest
	EventPassword string `json:"eventPassword"`
}

type IssueTokenRequest struct {
	Password string `json:"password"`
}

func (req *SaveEventRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Length(0, 1000)),
		validation.Field(&req.EventType, validation.Required, validation.In("recurring", "onetime").Error(errBadEventType.Error())),
		validation.Field(&req.ScheduleTypes, validation.Required),
	)
	if err != nil {
		return err
	}

	for i, st := range req.ScheduleTypes {
		if st.ID == "" || st.Label == "" {
			return fmt.Errorf("scheduleTypes[%v] needs both id and label", i)
		}
	}
	if !hasAvailableType(req.ScheduleTypes) {
		return errNoAvailableType
	}

	switch req.EventType {
	case "recurring":
		return validation.ValidateStruct(
			req,
			validation.Field(&req.XAxis, validation.Required),
			validation.Field(&req.YAxis, validation.Required),
		)
	default:
		return validation.ValidateStruct(
			req,
			validation.Field(&req.DateTimeOptions, validation.Required),
		)
	}
}

func (req *CreateEventRequest) Validate() error {
	if err := req.SaveEventRequest.Validate(); err != nil {
		return err
	}

	if req.Password != "" {
		passwordExp := regexp2.MustCompile(passwordRegexPattern, regexp2.None)
		ok, err := passwordExp.MatchString(req.Password)
		if err != nil || !ok {
			return errInvalidPassword
		}
	}

	return nil
}

func (req *SaveEventRequest) ToDomain() domain.Event {
	types := make([]domain.ScheduleType, len(req.ScheduleTypes))
	for i, st := range req.ScheduleTypes {
		types[i] = domain.ScheduleType(st)
	}

	return domain.Event{
		Name:            req.Name,
		Description:     req.Description,
		EventType:       domain.EventType(req.EventType),
		XAxis:           req.XAxis,
		YAxis:           req.YAxis,
		DateTimeOptions: req.DateTimeOptions,
		ScheduleTypes:   types,
		GradeOptions:    req.GradeOptions,
		GradeOrder:      req.GradeOrder,
	}
}

func hasAvailableType(types []ScheduleTypePayload) bool {
	for _, st := range types {
		if st.IsAvailable {
			return true
		}
	}

	return false
}
