package handlers

import (
	"net/http"
	"strconv"

	"transport-crm/internal/domain"

	"github.com/gin-gonic/gin"
)

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		respondError(c, http.StatusBadRequest, "validation_error", "empty body")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid payload: "+err.Error())
		return false
	}
	return true
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "validation_error", "invalid id")
		return 0, false
	}
	return id, true
}

// filterFromQuery composes the booking filter from request parameters. The
// list view and the CSV export share it so their predicates can never drift.
func filterFromQuery(c *gin.Context) domain.BookingFilter {
	return domain.BookingFilter{
		DateFilterType: domain.DateFilterType(c.Query("date_filter_type")),
		Date:           c.Query("filter_date"),
		Month:          c.Query("filter_month"),
		Agency:         c.Query("filter_agency"),
		Provider:       c.Query("filter_provider"),
		Vehicle:        c.Query("filter_vehicle"),
	}
}

func pageFromQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("paged", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
