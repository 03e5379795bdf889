package controllers

import (
	"net/http"

	"seapass-backend/models"
	"seapass-backend/services"
	"seapass-backend/utils"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	ReservationSvc *services.ReservationService
}

func NewUserController(svc *services.ReservationService) *UserController {
	return &UserController{ReservationSvc: svc}
}

// CreateUser (POST /api/usuario)
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, invalidJSON(err))
		return
	}

	id, err := ctrl.ReservationSvc.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, writeStatus(err), err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"id": id})
}
