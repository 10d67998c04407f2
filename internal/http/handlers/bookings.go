package handlers

import (
	"net/http"

	"transport-crm/internal/http/middleware"
	"transport-crm/internal/repositories"
	"transport-crm/internal/services"

	"github.com/gin-gonic/gin"
)

// BookingHandler wires the booking endpoints to an injected repository.
type BookingHandler struct {
	Repo repositories.BookingRepository
}

func (h BookingHandler) service(c *gin.Context) services.BookingService {
	return services.BookingService{Repo: h.Repo, RequestID: middleware.GetRequestID(c)}
}

// GET /api/bookings
func (h BookingHandler) List(c *gin.Context) {
	res, err := h.service(c).List(filterFromQuery(c), pageFromQuery(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/bookings/:id
func (h BookingHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	b, err := h.service(c).Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /api/bookings
func (h BookingHandler) Create(c *gin.Context) {
	var input services.BookingInput
	if !BindJSONOrError(c, &input) {
		return
	}
	id, err := h.service(c).Create(input)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id, "message": "booking saved"})
}

// PUT /api/bookings/:id
func (h BookingHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input services.BookingInput
	if !BindJSONOrError(c, &input) {
		return
	}
	if err := h.service(c).Update(id, input); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "booking updated"})
}

// DELETE /api/bookings/:id — deleting an absent id is a successful no-op.
func (h BookingHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.service(c).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "message": "booking deleted"})
}

type paymentStatusRequest struct {
	Status string `json:"status"`
}

// PUT /api/bookings/:id/payment-status
func (h BookingHandler) SetPaymentStatus(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req paymentStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := h.service(c).SetPaymentStatus(id, req.Status); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}
