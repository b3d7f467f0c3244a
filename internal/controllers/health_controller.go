package controllers

import (
	"net/http"

	"github.com/Sl1me945/TaskManager/internal/utils"
)

type HealthCheckResponse struct {
	Status string `json:"status"`
}

type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, HealthCheckResponse{Status: "OK"})
}
