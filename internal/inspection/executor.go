package inspection

import (
	"time"

	"github.com/google/uuid"

	"github.com/rainadr/veripass/internal/models"
)

// CheckInResult distinguishes the two successful check-in outcomes:
// the ticket was consumed now, or it had already been used and the
// re-scan is tolerated.
type CheckInResult struct {
	Ticket      *models.Ticket
	AlreadyUsed bool
}

// Executor owns the active -> used transition. All reads and writes of
// ticket status go through here so the ledger accounting stays total:
// every authorized call appends exactly one record.
type Executor struct {
	store  TicketStore
	ledger Ledger
	gate   Gate
}

func NewExecutor(store TicketStore, ledger Ledger, gate Gate) *Executor {
	return &Executor{store: store, ledger: ledger, gate: gate}
}

func newRecord(ticketID, inspectorID uuid.UUID, status string, at time.Time) *models.InspectionRecord {
	return &models.InspectionRecord{
		TicketID:    ticketID,
		InspectorID: inspectorID,
		Status:      status,
		InspectedAt: at,
	}
}

// Inspect verifies a ticket without consuming it. The snapshot comes
// back unchanged; the only side effect is one ledger record.
func (e *Executor) Inspect(ticketID, inspectorID uuid.UUID, activeOrgID *uuid.UUID) (*models.Ticket, error) {
	if !e.gate.CanAct(ticketID, inspectorID, activeOrgID) {
		return nil, errForbidden()
	}

	ticket, err := e.store.FindWithEvent(ticketID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if ticket == nil {
		if err := e.ledger.Append(newRecord(ticketID, inspectorID, models.InspectionStatusInvalid, now)); err != nil {
			return nil, err
		}
		return nil, errTicketNotFound()
	}

	status := models.InspectionStatusInvalid
	if ticket.Status == models.TicketStatusActive {
		status = models.InspectionStatusValid
	}
	if err := e.ledger.Append(newRecord(ticketID, inspectorID, status, now)); err != nil {
		return nil, err
	}

	return ticket, nil
}

// CheckIn consumes an active ticket. The status branch, the write and
// the ledger append all happen inside one transaction with the ticket
// row locked, so concurrent attempts on the same ticket serialize:
// first to commit gets valid, the rest get duplicate.
func (e *Executor) CheckIn(ticketID, inspectorID uuid.UUID, activeOrgID *uuid.UUID) (*CheckInResult, error) {
	if !e.gate.CanAct(ticketID, inspectorID, activeOrgID) {
		return nil, errForbidden()
	}

	var result *CheckInResult
	var outcome *Error

	err := e.store.CheckIn(ticketID, func(tx TicketTx) error {
		now := time.Now()
		ticket := tx.Ticket()

		// Rejections still commit their ledger record, so they are
		// reported through outcome instead of the callback error,
		// which would roll the transaction back.
		if ticket == nil {
			outcome = errTicketNotFound()
			return tx.AppendRecord(newRecord(ticketID, inspectorID, models.InspectionStatusInvalid, now))
		}

		switch ticket.Status {
		case models.TicketStatusUsed:
			result = &CheckInResult{Ticket: ticket, AlreadyUsed: true}
			return tx.AppendRecord(newRecord(ticketID, inspectorID, models.InspectionStatusDuplicate, now))
		case models.TicketStatusActive:
			if err := tx.SetStatus(models.TicketStatusUsed); err != nil {
				return err
			}
			result = &CheckInResult{Ticket: ticket}
			return tx.AppendRecord(newRecord(ticketID, inspectorID, models.InspectionStatusValid, now))
		default:
			outcome = errTicketNotActive()
			return tx.AppendRecord(newRecord(ticketID, inspectorID, models.InspectionStatusInvalid, now))
		}
	})
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		return nil, outcome
	}
	return result, nil
}

// History returns a ticket's full inspection trail, oldest first. It
// is gate-checked because the trail discloses visitor activity.
func (e *Executor) History(ticketID, inspectorID uuid.UUID, activeOrgID *uuid.UUID) ([]models.InspectionRecord, error) {
	if !e.gate.CanAct(ticketID, inspectorID, activeOrgID) {
		return nil, errForbidden()
	}
	return e.ledger.History(ticketID)
}
