package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingResponse is the liveness reply of the forecast API
type PingResponse struct {
	Message string `json:"message" example:"pong"`
}

// handlePing godoc
// @Summary Liveness check
// @Description Reports that the forecast API is serving requests. Upstream providers are not contacted.
// @Tags health
// @Produce json
// @Success 200 {object} PingResponse
// @Router /ping [get]
func (app *App) handlePing(c *gin.Context) {
	c.JSON(http.StatusOK, PingResponse{Message: "pong"})
}
