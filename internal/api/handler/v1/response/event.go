package response

import "github.com/hidori-app/hidori-api/internal/domain"

type EventDetail struct {
	Event            domain.Event         `json:"event"`
	RequiresPassword bool                 `json:"requiresPassword"`
	Participants     []domain.Participant `json:"participants"`
}

type IDResponse struct {
	ID string `json:"id"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// ParticipantCreated carries the edit token exactly once, at creation.
// There is no way to retrieve it again.
type ParticipantCreated struct {
	Participant domain.Participant `json:"participant"`
	EditToken   string             `json:"editToken,omitempty"`
}
