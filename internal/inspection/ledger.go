package inspection

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/veripass/internal/models"
)

// Ledger is the append-only inspection history. There are deliberately
// no update or delete methods; a correction is a new record.
type Ledger interface {
	Append(record *models.InspectionRecord) error
	// AppendBatch writes all records in one transaction, or none.
	AppendBatch(records []*models.InspectionRecord) error
	History(ticketID uuid.UUID) ([]models.InspectionRecord, error)
}

type dbLedger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) Ledger {
	return &dbLedger{db: db}
}

func (l *dbLedger) Append(record *models.InspectionRecord) error {
	return l.db.Create(record).Error
}

func (l *dbLedger) AppendBatch(records []*models.InspectionRecord) error {
	if len(records) == 0 {
		return nil
	}
	return l.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
}

func (l *dbLedger) History(ticketID uuid.UUID) ([]models.InspectionRecord, error) {
	var records []models.InspectionRecord
	err := l.db.Where("ticket_id = ?", ticketID).
		Order("inspected_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
