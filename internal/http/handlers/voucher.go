package handlers

import (
	"net/http"

	"transport-crm/internal/domain"
	"transport-crm/internal/http/middleware"
	"transport-crm/internal/repositories"
	"transport-crm/internal/services"

	"github.com/gin-gonic/gin"
)

type VoucherHandler struct {
	Repo repositories.BookingRepository
}

func (h VoucherHandler) service(c *gin.Context) services.VoucherService {
	return services.VoucherService{Repo: h.Repo, RequestID: middleware.GetRequestID(c)}
}

// GET /api/bookings/:id/voucher — printable bilingual HTML document. An
// unknown id yields a visible not-found page, not a crash.
func (h VoucherHandler) Voucher(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	html, err := h.service(c).RenderHTML(id)
	if err != nil {
		if domain.IsNotFound(err) {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8",
				[]byte("<h1>Servicio no encontrado / Service not found</h1>"))
			return
		}
		RespondDomainError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

// GET /api/bookings/:id/pdf — PDF download of the voucher.
func (h VoucherHandler) PDF(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	pdf, filename, err := h.service(c).RenderPDF(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
