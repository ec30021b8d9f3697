package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TicketStatusActive = "active"
	TicketStatusUsed   = "used"
)

// Ticket is owned by the sales side; this service only ever moves
// Status from active to used. Seat, row and area are denormalized so
// a token can be issued without extra joins.
type Ticket struct {
	gorm.Model
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Status      string    `gorm:"not null;default:'active'"`
	VisitorName string    `gorm:"not null"`
	EventID     uuid.UUID
	Event       Event
	SeatID      uuid.UUID `gorm:"type:uuid"`
	SeatNumber  string
	RowID       uuid.UUID `gorm:"type:uuid"`
	RowName     string
	AreaID      uuid.UUID `gorm:"type:uuid"`
	AreaName    string
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
