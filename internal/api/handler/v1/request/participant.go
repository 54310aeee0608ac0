package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/hidori-app/hidori-api/internal/domain"
)

type SlotEntryPayload struct {
	DateTime string `json:"dateTime"`
	TypeID   string `json:"typeId"`
	Comment  string `json:"comment"`
}

type SaveParticipantRequest struct {
	Name          string             `json:"name"`
	Grade         string             `json:"grade"`
	Comment       string             `json:"comment"`
	Schedule      map[string]string  `json:"schedule"`
	Entries       []SlotEntryPayload `json:"entries"`
	EventPassword string             `json:"eventPassword"`
}

func (req *SaveParticipantRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 50)),
		validation.Field(&req.Grade, validation.Length(0, 50)),
		validation.Field(&req.Comment, validation.Length(0, 500)),
	)
}

func (req *SaveParticipantRequest) ToDomain() domain.Participant {
	entries := make([]domain.SlotEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = domain.SlotEntry(e)
	}

	return domain.Participant{
		Name:     req.Name,
		Grade:    req.Grade,
		Comment:  req.Comment,
		Schedule: req.Schedule,
		Entries:  entries,
	}
}
