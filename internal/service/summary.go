package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/hidori-app/hidori-api/internal/domain"
	"github.com/hidori-app/hidori-api/internal/repository"
)

const bestSlotCount = 3

// SummaryService recomputes an event's aggregates from the full
// response list on every call; nothing is cached or persisted.
type SummaryService struct {
	events       EventRepository
	participants ParticipantRepository
}

func NewSummaryService(events EventRepository, participants ParticipantRepository) *SummaryService {
	return &SummaryService{
		events:       events,
		participants: participants,
	}
}

func (s *SummaryService) Summarize(ctx context.Context, eventID string) (domain.EventSummary, error) {
	event, err := s.events.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.EventSummary{}, ErrEventNotFound
		}

		return domain.EventSummary{}, fmt.Errorf("s.events.FindByID -> %w", err)
	}

	responses, err := s.participants.ListByEventID(ctx, eventID)
	if err != nil {
		return domain.EventSummary{}, fmt.Errorf("s.participants.ListByEventID -> %w", err)
	}

	return BuildSummary(event, responses), nil
}

// BuildSummary aggregates responses into per-slot counts, a ranked
// best-slot list and per-grade breakdowns. Schedule entries referencing
// types or slots missing from the event's current configuration are
// skipped, never an error: configurations change after responses exist.
func BuildSummary(event domain.Event, responses []domain.Participant) domain.EventSummary {
	available := event.AvailableTypeIDs()
	slots := slotSummaries(event, responses, available)

	summary := domain.EventSummary{
		EventID:      event.ID,
		Participants: len(responses),
		Slots:        slots,
		BestSlots:    BestSlots(slots, bestSlotCount),
		Grades:       gradeSummaries(event, responses, available),
	}

	switch event.EventType {
	case domain.EventTypeOnetime:
		summary.BestDateTime = BestDateTime(event, responses)
	default:
		summary.ColumnCounts = columnCounts(event, responses, available)
	}

	return summary
}

// BestSlots ranks slots descending by available count and returns the
// top n. The sort is stable: ties keep their grid order, repeated calls
// return the same list. No slots in, empty list out; distinct from
// "slots exist but nobody responded", which yields n slots of zero.
func BestSlots(slots []domain.SlotSummary, n int) []domain.SlotSummary {
	if len(slots) == 0 {
		return []domain.SlotSummary{}
	}

	ranked := make([]domain.SlotSummary, len(slots))
	copy(ranked, slots)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].AvailableCount > ranked[j].AvailableCount
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}

// BestDateTime is the headline pick for one-time events: the option
// with the highest available count, first-occurring on ties, or nil
// when the event has no date-time options configured.
func BestDateTime(event domain.Event, responses []domain.Participant) *domain.BestDateTime {
	if len(event.DateTimeOptions) == 0 {
		return nil
	}

	available := event.AvailableTypeIDs()
	best := domain.BestDateTime{DateTime: event.DateTimeOptions[0], Count: -1}
	for _, option := range event.DateTimeOptions {
		count := 0
		for _, p := range responses {
			if typeID, ok := responseTypeAt(event, p, option); ok {
				if _, avail := available[typeID]; avail {
					count++
				}
			}
		}
		if count > best.Count {
			best = domain.BestDateTime{DateTime: option, Count: count}
		}
	}

	return &best
}

func slotSummaries(event domain.Event, responses []domain.Participant, available map[string]struct{}) []domain.SlotSummary {
	keys := event.SlotKeys()
	summaries := make([]domain.SlotSummary, 0, len(keys))
	for _, key := range keys {
		summary := domain.SlotSummary{Key: key, Total: len(responses)}

		counts := make(map[string]int)
		names := make(map[string][]string)
		for _, p := range responses {
			typeID, ok := responseTypeAt(event, p, key)
			if !ok {
				continue
			}
			if _, avail := available[typeID]; avail {
				summary.AvailableCount++
			}
			counts[typeID]++
			names[typeID] = append(names[typeID], p.Name)
		}

		for _, st := range event.ScheduleTypes {
			if counts[st.ID] == 0 {
				continue
			}
			summary.Breakdown = append(summary.Breakdown, domain.TypeCount{
				TypeID: st.ID,
				Count:  counts[st.ID],
				Names:  names[st.ID],
			})
		}

		summaries = append(summaries, summary)
	}

	return summaries
}

// responseTypeAt looks one slot up in a response, dispatching on the
// event's shape: keyed map for recurring, entry list for one-time.
func responseTypeAt(event domain.Event, p domain.Participant, key string) (string, bool) {
	if event.EventType == domain.EventTypeOnetime {
		for _, entry := range p.Entries {
			if entry.DateTime == key {
				return entry.TypeID, true
			}
		}

		return "", false
	}

	typeID, ok := p.Schedule[key]

	return typeID, ok
}

// columnCounts counts, per x-axis label, the distinct participants
// available in at least one slot of that column. A participant present
// in several rows of the same column counts once.
func columnCounts(event domain.Event, responses []domain.Participant, available map[string]struct{}) []domain.ColumnCount {
	counts := make([]domain.ColumnCount, 0, len(event.XAxis))
	for _, x := range event.XAxis {
		count := 0
		for _, p := range responses {
			for _, y := range event.YAxis {
				typeID, ok := p.Schedule[domain.SlotKey(x, y)]
				if !ok {
					continue
				}
				if _, avail := available[typeID]; avail {
					count++
					break
				}
			}
		}
		counts = append(counts, domain.ColumnCount{Column: x, Count: count})
	}

	return counts
}

// gradeSummaries groups responses by grade label, ordered by the
// event's grade priorities. Groups without members are omitted.
func gradeSummaries(event domain.Event, responses []domain.Participant, available map[string]struct{}) []domain.GradeSummary {
	groups := make(map[string][]domain.Participant)
	for _, p := range responses {
		if p.Grade == "" {
			continue
		}
		groups[p.Grade] = append(groups[p.Grade], p)
	}

	grades := make([]string, len(event.GradeOptions))
	copy(grades, event.GradeOptions)
	sort.SliceStable(grades, func(i, j int) bool {
		return event.GradePriority(grades[i]) < event.GradePriority(grades[j])
	})

	summaries := make([]domain.GradeSummary, 0, len(grades))
	for _, grade := range grades {
		members := groups[grade]
		if len(members) == 0 {
			continue
		}
		summaries = append(summaries, domain.GradeSummary{
			Grade:        grade,
			Slots:        slotSummaries(event, members, available),
			Distribution: typeDistribution(event, members),
		})
	}

	return summaries
}

// typeDistribution counts schedule type occurrences across a group's
// responses, one per filled slot. Entries at slots no longer in the
// event's configuration are skipped, like everywhere else in
// aggregation. Every configured type id is present in the result, so
// the key set is stable regardless of data sparsity.
func typeDistribution(event domain.Event, responses []domain.Participant) map[string]int {
	dist := make(map[string]int, len(event.ScheduleTypes))
	for _, st := range event.ScheduleTypes {
		dist[st.ID] = 0
	}

	slots := make(map[string]struct{})
	for _, key := range event.SlotKeys() {
		slots[key] = struct{}{}
	}

	bump := func(key, typeID string) {
		if _, live := slots[key]; !live {
			return
		}
		if _, known := dist[typeID]; known {
			dist[typeID]++
		}
	}

	for _, p := range responses {
		if event.EventType == domain.EventTypeOnetime {
			for _, entry := range p.Entries {
				bump(entry.DateTime, entry.TypeID)
			}

			continue
		}
		for key, typeID := range p.Schedule {
			bump(key, typeID)
		}
	}

	return dist
}
