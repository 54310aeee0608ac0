package domain

// TypeCount is the per-type detail of one slot, for detail-on-hover displays.
type TypeCount struct {
	TypeID string   `json:"typeId"`
	Count  int      `json:"count"`
	Names  []string `json:"names"`
}

type SlotSummary struct {
	Key            string      `json:"key"`
	AvailableCount int         `json:"availableCount"`
	Total          int         `json:"total"`
	Breakdown      []TypeCount `json:"breakdown,omitempty"`
}

// ColumnCount counts the distinct participants available somewhere
// in one x-axis column of a recurring grid.
type ColumnCount struct {
	Column string `json:"column"`
	Count  int    `json:"count"`
}

type GradeSummary struct {
	Grade        string         `json:"grade"`
	Slots        []SlotSummary  `json:"slots"`
	Distribution map[string]int `json:"distribution"`
}

type BestDateTime struct {
	DateTime string `json:"dateTime"`
	Count    int    `json:"count"`
}

// EventSummary is recomputed from the full response list on every read.
type EventSummary struct {
	EventID      string         `json:"eventId"`
	Participants int            `json:"participants"`
	Slots        []SlotSummary  `json:"slots"`
	BestSlots    []SlotSummary  `json:"bestSlots"`
	ColumnCounts []ColumnCount  `json:"columnCounts,omitempty"`
	Grades       []GradeSummary `json:"grades,omitempty"`
	BestDateTime *BestDateTime  `json:"bestDateTime,omitempty"`
}
