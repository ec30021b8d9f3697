package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rainadr/veripass/internal/helpers"
	"github.com/rainadr/veripass/internal/models"
)

// ListActiveEvents returns events currently in progress, the set an
// inspector would be scanning for right now.
func ListActiveEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "INTERNAL", "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	now := time.Now()
	var events []models.Event
	if err := gormDB.Where("start_time <= ? AND end_time > ?", now, now).
		Order("start_time ASC").
		Find(&events).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "INTERNAL", "Error retrieving events.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"events": events})
}
