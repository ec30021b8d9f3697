package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	InspectionStatusValid     = "valid"
	InspectionStatusInvalid   = "invalid"
	InspectionStatusDuplicate = "duplicate"
	InspectionStatusOffline   = "offline"
)

// InspectionRecord is an append-only audit row. Corrections are new
// records, never updates, so there is no UpdatedAt or DeletedAt.
type InspectionRecord struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TicketID    uuid.UUID `gorm:"type:uuid;not null;index" json:"ticket_id"`
	InspectorID uuid.UUID `gorm:"type:uuid;not null" json:"inspector_id"`
	Status      string    `gorm:"not null" json:"status"`
	InspectedAt time.Time `gorm:"not null" json:"inspected_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (record *InspectionRecord) BeforeCreate(tx *gorm.DB) (err error) {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	return
}
