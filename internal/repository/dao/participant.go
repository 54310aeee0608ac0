package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrParticipantNotFound = errors.New("participant not found")

type SlotEntry struct {
	DateTime string `json:"dateTime"`
	TypeID   string `json:"typeId"`
	Comment  string `json:"comment,omitempty"`
}

type Participant struct {
	ID      string `gorm:"primaryKey;type:varchar(36)"`
	EventID string `gorm:"not null;type:varchar(36);index"`

	Name    string `gorm:"not null"`
	Grade   string
	Comment string

	Schedule map[string]string `gorm:"serializer:json"`
	Entries  []SlotEntry       `gorm:"serializer:json"`

	EditToken string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ParticipantDAO struct {
	db *gorm.DB
}

func NewParticipantDAO(db *gorm.DB) *ParticipantDAO {
	return &ParticipantDAO{
		db: db,
	}
}

func (d *ParticipantDAO) Insert(ctx context.Context, participant Participant) (Participant, error) {
	result := d.db.WithContext(ctx).Create(&participant)
	if result.Error != nil {
		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) FindByID(ctx context.Context, eventID, id string) (Participant, error) {
	var participant Participant
	result := d.db.WithContext(ctx).First(&participant, "event_id = ? AND id = ?", eventID, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

// ListByEventID returns an event's responses in creation order.
func (d *ParticipantDAO) ListByEventID(ctx context.Context, eventID string) ([]Participant, error) {
	var participants []Participant
	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *ParticipantDAO) Update(ctx context.Context, participant Participant) (Participant, error) {
	result := d.db.WithContext(ctx).Save(&participant)
	if result.Error != nil {
		return Participant{}, result.Error
	}

	return participant, nil
}

func (d *ParticipantDAO) Delete(ctx context.Context, eventID, id string) error {
	result := d.db.WithContext(ctx).Delete(&Participant{}, "event_id = ? AND id = ?", eventID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

func (d *ParticipantDAO) DeleteByEventID(ctx context.Context, eventID string) error {
	result := d.db.WithContext(ctx).Delete(&Participant{}, "event_id = ?", eventID)

	return result.Error
}
