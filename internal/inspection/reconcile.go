package inspection

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rainadr/veripass/internal/models"
)

// OfflineItem is one inspection captured by a disconnected scanner.
// The timestamp is unix milliseconds from the device clock and is
// trusted as-is, since no server clock was reachable.
type OfflineItem struct {
	TicketID  string `json:"ticket_id"`
	Timestamp int64  `json:"timestamp"`
}

// Reconciler replays offline-captured inspections into the ledger.
// It records provisional evidence only and never transitions ticket
// status; promotion to used stays a manual staff decision.
type Reconciler struct {
	ledger Ledger
	authz  BatchAuthorizer
}

func NewReconciler(ledger Ledger, authz BatchAuthorizer) *Reconciler {
	return &Reconciler{ledger: ledger, authz: authz}
}

// Reconcile validates the whole batch before writing anything: one
// malformed item rejects the lot, and the writes land as a single
// transaction. Returns the number of records written.
func (r *Reconciler) Reconcile(items []OfflineItem, inspectorID uuid.UUID, activeOrgID *uuid.UUID) (int, error) {
	if !r.authz.CanReconcile(inspectorID, activeOrgID) {
		return 0, errForbidden()
	}

	if len(items) == 0 {
		return 0, errInvalidInput("Batch contains no items.")
	}

	records := make([]*models.InspectionRecord, 0, len(items))
	for i, item := range items {
		ticketID, err := uuid.Parse(item.TicketID)
		if err != nil {
			return 0, errInvalidInput(fmt.Sprintf("Item %d has a malformed ticket id.", i))
		}
		if item.Timestamp <= 0 {
			return 0, errInvalidInput(fmt.Sprintf("Item %d has an invalid timestamp.", i))
		}
		records = append(records, newRecord(ticketID, inspectorID, models.InspectionStatusOffline, time.UnixMilli(item.Timestamp)))
	}

	if err := r.ledger.AppendBatch(records); err != nil {
		return 0, err
	}
	return len(records), nil
}
