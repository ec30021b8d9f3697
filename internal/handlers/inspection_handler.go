package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rainadr/veripass/internal/helpers"
	"github.com/rainadr/veripass/internal/inspection"
	"github.com/rainadr/veripass/internal/middleware"
	"github.com/rainadr/veripass/internal/models"
)

// InspectionRequest identifies a ticket either by its signed token
// (the normal scan path) or by bare id (manual entry at the desk).
type InspectionRequest struct {
	Token    string `json:"token"`
	TicketID string `json:"ticket_id"`
}

type inspectionContext struct {
	ticketID    uuid.UUID
	inspectorID uuid.UUID
	activeOrg   *uuid.UUID
	executor    *inspection.Executor
}

// resolveInspection binds the request, resolves the ticket id (via
// offline token verification when a token is presented) and builds the
// executor over the request's DB handle.
func resolveInspection(c *gin.Context) (*inspectionContext, bool) {
	var req InspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request payload.")
		return nil, false
	}

	var ticketID uuid.UUID
	switch {
	case req.Token != "":
		verifier := middleware.GetVerifier(c)
		if verifier == nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "INTERNAL", "Verification key not configured.")
			return nil, false
		}
		payload := verifier.Decode(req.Token)
		if payload == nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "INVALID_INPUT", "Ticket token could not be verified.")
			return nil, false
		}
		ticketID = payload.TicketID
	case req.TicketID != "":
		id, err := helpers.ParseUUID(req.TicketID)
		if err != nil {
			helpers.RespondWithError(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid ticket ID.")
			return nil, false
		}
		ticketID = id
	default:
		helpers.RespondWithError(c, http.StatusBadRequest, "INVALID_INPUT", "Either token or ticket_id is required.")
		return nil, false
	}

	executor, inspectorID, ok := inspectionExecutor(c)
	if !ok {
		return nil, false
	}

	return &inspectionContext{
		ticketID:    ticketID,
		inspectorID: inspectorID,
		activeOrg:   middleware.ActiveOrganization(c),
		executor:    executor,
	}, true
}

func inspectionExecutor(c *gin.Context) (*inspection.Executor, uuid.UUID, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "User ID not found in token.")
		return nil, uuid.Nil, false
	}

	executor := middleware.GetExecutor(c)
	if executor == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "INTERNAL", "Inspection executor not configured.")
		return nil, uuid.Nil, false
	}
	return executor, userID.(uuid.UUID), true
}

func ticketView(ticket *models.Ticket) gin.H {
	return gin.H{
		"id":           ticket.ID,
		"status":       ticket.Status,
		"visitor_name": ticket.VisitorName,
		"event_title":  ticket.Event.Title,
		"seat_number":  ticket.SeatNumber,
		"row_name":     ticket.RowName,
		"area_name":    ticket.AreaName,
	}
}

func InspectTicket(c *gin.Context) {
	ictx, ok := resolveInspection(c)
	if !ok {
		return
	}

	ticket, err := ictx.executor.Inspect(ictx.ticketID, ictx.inspectorID, ictx.activeOrg)
	if err != nil {
		helpers.RespondWithInspectionError(c, err)
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"ticket": ticketView(ticket)})
}

func CheckInTicket(c *gin.Context) {
	ictx, ok := resolveInspection(c)
	if !ok {
		return
	}

	result, err := ictx.executor.CheckIn(ictx.ticketID, ictx.inspectorID, ictx.activeOrg)
	if err != nil {
		helpers.RespondWithInspectionError(c, err)
		return
	}

	message := "Ticket checked in successfully."
	if result.AlreadyUsed {
		message = "Ticket was already used."
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{
		"message":      message,
		"already_used": result.AlreadyUsed,
		"ticket":       ticketView(result.Ticket),
	})
}

type OfflineBatchRequest struct {
	Items []inspection.OfflineItem `json:"items" binding:"required"`
}

func ReconcileOffline(c *gin.Context) {
	var req OfflineBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request payload.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "User ID not found in token.")
		return
	}

	reconciler := middleware.GetReconciler(c)
	if reconciler == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "INTERNAL", "Reconciler not configured.")
		return
	}

	written, err := reconciler.Reconcile(req.Items, userID.(uuid.UUID), middleware.ActiveOrganization(c))
	if err != nil {
		helpers.RespondWithInspectionError(c, err)
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"recorded": written})
}

func GetInspectionHistory(c *gin.Context) {
	ticketID, err := helpers.ParseUUID(c.Param("ticketId"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid ticket ID.")
		return
	}

	executor, inspectorID, ok := inspectionExecutor(c)
	if !ok {
		return
	}

	records, err := executor.History(ticketID, inspectorID, middleware.ActiveOrganization(c))
	if err != nil {
		helpers.RespondWithInspectionError(c, err)
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"records": records})
}
