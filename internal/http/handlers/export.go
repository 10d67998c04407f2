package handlers

import (
	"net/http"

	"transport-crm/internal/http/middleware"
	"transport-crm/internal/repositories"
	"transport-crm/internal/services"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	Repo repositories.BookingRepository
}

// GET /api/bookings/export — CSV of the whole filtered set plus totals row.
func (h ExportHandler) ExportCSV(c *gin.Context) {
	svc := services.ExportService{Repo: h.Repo, RequestID: middleware.GetRequestID(c)}
	data, err := svc.ExportCSV(filterFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+services.ExportFilename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
