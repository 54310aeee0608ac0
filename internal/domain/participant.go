package domain

import "time"

// SlotEntry is one answer of a one-time event's response.
type SlotEntry struct {
	DateTime string `json:"dateTime"`
	TypeID   string `json:"typeId"`
	Comment  string `json:"comment,omitempty"`
}

// Participant is one submitted response to an event. Recurring events use
// Schedule (slot key -> schedule type id), one-time events use Entries.
type Participant struct {
	ID        string            `json:"id"`
	EventID   string            `json:"eventId"`
	Name      string            `json:"name"`
	Grade     string            `json:"grade,omitempty"`
	Comment   string            `json:"comment"`
	Schedule  map[string]string `json:"schedule,omitempty"`
	Entries   []SlotEntry       `json:"entries,omitempty"`
	EditToken string            `json:"-"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
