package handlers

import (
	"database/sql"
	"net/http"

	intconfig "transport-crm/internal/config"
	intdb "transport-crm/internal/db"

	"github.com/gin-gonic/gin"
)

// SystemHandler serves liveness and store-connectivity probes.
type SystemHandler struct {
	DB *sql.DB
}

func (h SystemHandler) db() *sql.DB {
	if h.DB != nil {
		return h.DB
	}
	return intconfig.DB
}

func (h SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h SystemHandler) DBCheck(c *gin.Context) {
	if err := intconfig.EnsureDB(h.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !intdb.HasTable(h.db(), intdb.BookingsTable) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "bookings table missing"})
		return
	}
	var count int
	err := h.db().QueryRow("SELECT COUNT(*) FROM " + intdb.BookingsTable).Scan(&count)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "database connection OK", "bookings_in_db": count})
}
