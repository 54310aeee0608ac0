package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrEventExists   = errors.New("event already exists")
	ErrEventNotFound = errors.New("event not found")
)

type ScheduleType struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Color       string `json:"color"`
	IsAvailable bool   `json:"isAvailable"`
}

type Event struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Name        string `gorm:"not null"`
	Description string

	EventType       string         `gorm:"not null"`
	XAxis           []string       `gorm:"serializer:json"`
	YAxis           []string       `gorm:"serializer:json"`
	DateTimeOptions []string       `gorm:"serializer:json"`
	ScheduleTypes   []ScheduleType `gorm:"serializer:json"`
	GradeOptions    []string       `gorm:"serializer:json"`
	GradeOrder      map[string]int `gorm:"serializer:json"`

	PasswordHash   string
	LegacyPassword string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Event{}, ErrEventExists
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id string) (Event, error) {
	var event Event
	result := d.db.WithContext(ctx).First(&event, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Save(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return event, nil
}

// UpdateCredential persists a migrated password hash and clears the
// legacy plaintext field in a single statement.
func (d *EventDAO) UpdateCredential(ctx context.Context, id, passwordHash string) error {
	result := d.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":   passwordHash,
			"legacy_password": "",
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}

func (d *EventDAO) Delete(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
