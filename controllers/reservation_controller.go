package controllers

import (
	"net/http"

	"seapass-backend/models"
	"seapass-backend/services"
	"seapass-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReservationController struct {
	ReservationSvc *services.ReservationService
}

func NewReservationController(svc *services.ReservationService) *ReservationController {
	return &ReservationController{ReservationSvc: svc}
}

// ListReservations (GET /api/reservas)
func (ctrl *ReservationController) ListReservations(c *gin.Context) {
	reservations, err := ctrl.ReservationSvc.ListReservations(c.Request.Context())
	if err != nil {
		respondError(c, readStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, reservations)
}

// CreateReservation (POST /api/reservas)
func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, invalidJSON(err))
		return
	}

	id, err := ctrl.ReservationSvc.CreateReservation(c.Request.Context(), req)
	if err != nil {
		respondError(c, writeStatus(err), err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"reserva_id": id})
}

// ListPassengers (GET /api/passageiros)
func (ctrl *ReservationController) ListPassengers(c *gin.Context) {
	passengers, err := ctrl.ReservationSvc.ListPassengers(c.Request.Context())
	if err != nil {
		respondError(c, readStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, passengers)
}

// ListHotels (GET /api/hoteis)
func (ctrl *ReservationController) ListHotels(c *gin.Context) {
	hotels, err := ctrl.ReservationSvc.ListHotels(c.Request.Context())
	if err != nil {
		respondError(c, readStatus(err), err)
		return
	}
	c.JSON(http.StatusOK, hotels)
}

// Health (GET /api/health)
func (ctrl *ReservationController) Health(c *gin.Context) {
	if err := ctrl.ReservationSvc.Health(c.Request.Context()); err != nil {
		respondError(c, http.StatusServiceUnavailable, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "API funcionando!"})
}
