package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rainadr/veripass/internal/helpers"
	"github.com/rainadr/veripass/internal/middleware"
	"github.com/rainadr/veripass/internal/models"
	"github.com/rainadr/veripass/internal/token"
)

// loadOwnTicket fetches a ticket and checks the requester organizes
// its event. Token issuance is an organizer-only action: inspectors
// verify credentials, they do not mint them.
func loadOwnTicket(c *gin.Context) (*models.Ticket, bool) {
	ticketID, err := helpers.ParseUUID(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid ticket ID.")
		return nil, false
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "UNAUTHORIZED", "User ID not found in token.")
		return nil, false
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "INTERNAL", "Database connection not found.")
		return nil, false
	}
	gormDB := db.(*gorm.DB)

	var ticket models.Ticket
	if err := gormDB.Preload("Event").Where("id = ?", ticketID).First(&ticket).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			helpers.RespondWithError(c, http.StatusNotFound, "TICKET_NOT_FOUND", "Ticket not found.")
			return nil, false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "INTERNAL", "Error retrieving ticket.")
		return nil, false
	}

	if ticket.Event.UserID != userID.(uuid.UUID) {
		helpers.RespondWithError(c, http.StatusForbidden, "FORBIDDEN", "You don't have permission to issue tokens for this ticket.")
		return nil, false
	}

	return &ticket, true
}

func issueForTicket(c *gin.Context, ticket *models.Ticket) (string, bool) {
	issuer := middleware.GetIssuer(c)
	if issuer == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "INTERNAL", "Signing key not configured.")
		return "", false
	}

	signed, err := issuer.Issue(
		ticket.ID,
		ticket.VisitorName,
		token.EventInfo{ID: ticket.EventID, Name: ticket.Event.Title},
		token.SeatInfo{ID: ticket.SeatID, Number: ticket.SeatNumber},
		token.RowInfo{ID: ticket.RowID, Name: ticket.RowName},
		token.AreaInfo{ID: ticket.AreaID, Name: ticket.AreaName},
	)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "INTERNAL", "Failed to sign ticket token.")
		return "", false
	}
	return signed, true
}

func IssueTicketToken(c *gin.Context) {
	ticket, ok := loadOwnTicket(c)
	if !ok {
		return
	}

	signed, ok := issueForTicket(c, ticket)
	if !ok {
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{
		"ticket_id": ticket.ID,
		"token":     signed,
	})
}

func GetTicketQR(c *gin.Context) {
	ticket, ok := loadOwnTicket(c)
	if !ok {
		return
	}

	signed, ok := issueForTicket(c, ticket)
	if !ok {
		return
	}

	c.Data(http.StatusOK, "image/png", token.Render(signed))
}
