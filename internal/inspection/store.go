package inspection

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rainadr/veripass/internal/models"
)

// TicketTx is the view of a check-in transaction handed to the
// executor's callback. Everything done through it commits or rolls
// back as one unit with the row lock held.
type TicketTx interface {
	// Ticket returns the locked row, or nil when the id matched nothing.
	Ticket() *models.Ticket
	SetStatus(status string) error
	AppendRecord(record *models.InspectionRecord) error
}

// TicketStore is the ticket/event collaborator. FindWithEvent returns
// (nil, nil) for an unknown id; CheckIn runs fn inside a single
// transaction with the ticket row locked for update.
type TicketStore interface {
	FindWithEvent(id uuid.UUID) (*models.Ticket, error)
	CheckIn(id uuid.UUID, fn func(tx TicketTx) error) error
}

type dbTicketStore struct {
	db *gorm.DB
}

func NewTicketStore(db *gorm.DB) TicketStore {
	return &dbTicketStore{db: db}
}

func (s *dbTicketStore) FindWithEvent(id uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	err := s.db.Preload("Event").Where("id = ?", id).First(&ticket).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *dbTicketStore) CheckIn(id uuid.UUID, fn func(tx TicketTx) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var ticket models.Ticket
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&ticket).Error

		wrapped := &dbTicketTx{tx: tx}
		switch {
		case err == nil:
			wrapped.ticket = &ticket
		case errors.Is(err, gorm.ErrRecordNotFound):
			// fn sees a nil ticket and records the miss.
		default:
			return err
		}

		return fn(wrapped)
	})
}

type dbTicketTx struct {
	tx     *gorm.DB
	ticket *models.Ticket
}

func (t *dbTicketTx) Ticket() *models.Ticket {
	return t.ticket
}

func (t *dbTicketTx) SetStatus(status string) error {
	if err := t.tx.Model(t.ticket).Update("status", status).Error; err != nil {
		return err
	}
	t.ticket.Status = status
	return nil
}

func (t *dbTicketTx) AppendRecord(record *models.InspectionRecord) error {
	return t.tx.Create(record).Error
}
