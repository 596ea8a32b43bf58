package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"medi-forecast/internal/types"
)

// LocationsResponse lists the configured cities
type LocationsResponse struct {
	Default   string           `json:"default" example:"33598"`
	Locations []types.Location `json:"locations"`
}

// handleGetLocations godoc
// @Summary List configured locations
// @Description Cities offered by the location picker, with their postal codes and coordinates
// @Tags location
// @Produce json
// @Success 200 {object} LocationsResponse
// @Router /locations [get]
func (app *App) handleGetLocations(c *gin.Context) {
	c.JSON(http.StatusOK, LocationsResponse{
		Default:   app.cfg.App.DefaultLocation,
		Locations: app.locationService.Configured(),
	})
}
