package domain

import "time"

type EventType string

const (
	EventTypeRecurring EventType = "recurring"
	EventTypeOnetime   EventType = "onetime"
)

// DefaultGradePriority is used for grade labels missing from GradeOrder.
const DefaultGradePriority = 999

type ScheduleType struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	IsAvailable bool   `json:"isAvailable"`
}

type Event struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Description     string         `json:"description"`
	EventType       EventType      `json:"eventType"`
	XAxis           []string       `json:"xAxis,omitempty"`
	YAxis           []string       `json:"yAxis,omitempty"`
	DateTimeOptions []string       `json:"dateTimeOptions,omitempty"`
	ScheduleTypes   []ScheduleType `json:"scheduleTypes"`
	GradeOptions    []string       `json:"gradeOptions,omitempty"`
	GradeOrder      map[string]int `json:"gradeOrder,omitempty"`
	PasswordHash    string         `json:"-"`
	LegacyPassword  string         `json:"-"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// SlotKey builds the schedule key for one cell of a recurring grid.
func SlotKey(x, y string) string {
	return x + "-" + y
}

func (e Event) RequiresPassword() bool {
	return e.PasswordHash != "" || e.LegacyPassword != ""
}

// AvailableTypeIDs returns the ids of all schedule types marked available.
// The set may legitimately be empty; aggregation then yields all zeros.
func (e Event) AvailableTypeIDs() map[string]struct{} {
	ids := make(map[string]struct{})
	for _, st := range e.ScheduleTypes {
		if st.IsAvailable {
			ids[st.ID] = struct{}{}
		}
	}
	return ids
}

func (e Event) HasScheduleType(id string) bool {
	for _, st := range e.ScheduleTypes {
		if st.ID == id {
			return true
		}
	}
	return false
}

func (e Event) HasDateTimeOption(dateTime string) bool {
	for _, opt := range e.DateTimeOptions {
		if opt == dateTime {
			return true
		}
	}
	return false
}

func (e Event) HasGradeOption(grade string) bool {
	for _, g := range e.GradeOptions {
		if g == grade {
			return true
		}
	}
	return false
}

// GradePriority returns the display priority for a grade label,
// lower sorting first. Unknown labels default to DefaultGradePriority.
func (e Event) GradePriority(grade string) int {
	if p, ok := e.GradeOrder[grade]; ok {
		return p
	}
	return DefaultGradePriority
}

// SlotKeys lists every slot of the event in display order:
// the x-by-y cartesian product for recurring events,
// the configured date-time options for one-time events.
func (e Event) SlotKeys() []string {
	if e.EventType == EventTypeOnetime {
		keys := make([]string, len(e.DateTimeOptions))
		copy(keys, e.DateTimeOptions)
		return keys
	}
	keys := make([]string, 0, len(e.XAxis)*len(e.YAxis))
	for _, x := range e.XAxis {
		for _, y := range e.YAxis {
			keys = append(keys, SlotKey(x, y))
		}
	}
	return keys
}
