package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"medi-forecast/internal/location"
	"medi-forecast/internal/providers/httpx"
	"medi-forecast/internal/providers/weatherapi"
	"medi-forecast/internal/store"
	"medi-forecast/internal/types"
	"medi-forecast/internal/weather"
)

// ForecastQuery defines the query parameters shared by the forecast endpoints
type ForecastQuery struct {
	Location  string `form:"location"`                       // Postal code or "lat,lon"
	Latitude  string `form:"lat"`                            // Latitude in decimal degrees, used with lon
	Longitude string `form:"lon"`                            // Longitude in decimal degrees, used with lat
	Days      int    `form:"days" binding:"omitempty,min=1"` // Days to forecast, defaults to the configured value
	Raw       bool   `form:"raw"`                            // Include raw provider payloads
}

// StoredQuery defines the query parameters for the stored forecast endpoints
type StoredQuery struct {
	Location string `form:"location"`
	Provider string `form:"provider"`
	Raw      bool   `form:"raw"`
}

// HistoryResponse lists the stored forecasts of one location, newest first
type HistoryResponse struct {
	Provider  weather.ProviderKind `json:"provider" example:"grid"`
	Location  string               `json:"location" example:"33598"`
	Forecasts []ForecastResponse   `json:"forecasts"`
}

// CurrentResponse is the current conditions block with display text
type CurrentResponse struct {
	weather.CurrentConditions
	Gust string `json:"gust" example:"12 mph"`
}

// DayResponse is one forecast day with its period breakdown
type DayResponse struct {
	weather.DailyForecast
	TotalPrecipitationIn *float64                `json:"totalPrecipitationIn"`
	Periods              []weather.PeriodSummary `json:"periods"`
}

// ForecastResponse is the normalized forecast returned by every forecast endpoint
type ForecastResponse struct {
	ID        string                                  `json:"id"`
	Provider  weather.ProviderKind                    `json:"provider" example:"grid"`
	Location  types.Location                          `json:"location"`
	FetchedAt time.Time                               `json:"fetchedAt"`
	Current   CurrentResponse                         `json:"current"`
	Days      []DayResponse                           `json:"days"`
	Alerts    []weather.Alert                         `json:"alerts"`
	Partial   bool                                    `json:"partial"`
	Message   string                                  `json:"message,omitempty"`
	Raw       map[weather.RequestKind]json.RawMessage `json:"raw,omitempty"`
}

func newForecastResponse(result *weather.Result, includeRaw bool) ForecastResponse {
	days := make([]DayResponse, 0, len(result.Days))
	for _, d := range result.Days {
		days = append(days, DayResponse{
			DailyForecast:        d,
			TotalPrecipitationIn: d.TotalPrecipitationIn(),
			Periods:              weather.SummarizePeriods(d, result.FetchedAt),
		})
	}

	resp := ForecastResponse{
		ID:        result.ID,
		Provider:  result.Provider,
		Location:  result.Location,
		FetchedAt: result.FetchedAt,
		Current: CurrentResponse{
			CurrentConditions: result.Current,
			Gust:              result.Current.GustText(),
		},
		Days:    days,
		Alerts:  result.Alerts,
		Partial: result.Partial.IsPartial(),
		Message: result.Partial.Message(),
	}
	if includeRaw {
		resp.Raw = result.Raw
	}
	return resp
}

// handleGetCommercialForecast godoc
// @Summary Get commercial forecast
// @Description Forecast from WeatherAPI.com normalized to daily summaries with morning, afternoon and evening periods
// @Tags forecast
// @Produce json
// @Param location query string false "5-digit postal code or lat,lon" example(33598)
// @Param lat query number false "Latitude in decimal degrees" minimum(-90) maximum(90)
// @Param lon query number false "Longitude in decimal degrees" minimum(-180) maximum(180)
// @Param days query int false "Days to forecast" minimum(1) maximum(14)
// @Param raw query bool false "Include raw provider payloads"
// @Success 200 {object} ForecastResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Failure 504 {object} map[string]string
// @Router /forecast/commercial [get]
func (app *App) handleGetCommercialForecast(c *gin.Context) {
	app.handleForecast(c, weather.ProviderCommercial)
}

// handleGetGridForecast godoc
// @Summary Get National Weather Service forecast
// @Description Hourly NWS grid forecast joined with gridpoint precipitation, grouped into daily summaries
// @Tags forecast
// @Produce json
// @Param location query string false "5-digit postal code or lat,lon" example(33598)
// @Param lat query number false "Latitude in decimal degrees" minimum(-90) maximum(90)
// @Param lon query number false "Longitude in decimal degrees" minimum(-180) maximum(180)
// @Param days query int false "Days to forecast" minimum(1) maximum(14)
// @Param raw query bool false "Include raw provider payloads"
// @Success 200 {object} ForecastResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Failure 504 {object} map[string]string
// @Router /forecast/grid [get]
func (app *App) handleGetGridForecast(c *gin.Context) {
	app.handleForecast(c, weather.ProviderGrid)
}

func (app *App) handleForecast(c *gin.Context, provider weather.ProviderKind) {
	var input ForecastQuery

	// Bind and validate query parameters
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc, err := app.parseLocation(input.Location, input.Latitude, input.Longitude)
	if err != nil {
		app.writeError(c, err)
		return
	}

	days := input.Days
	if days == 0 {
		days = app.cfg.App.DefaultDays
	}

	// Delegate to business layer
	result, err := app.weatherService.Fetch(c.Request.Context(), weather.Request{
		Provider: provider,
		Location: loc,
		Days:     days,
	})
	if err != nil {
		app.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newForecastResponse(result, input.Raw))
}

// handleGetLatestForecast godoc
// @Summary Get the last refreshed forecast
// @Description Most recent forecast stored by the background refresh for a configured location
// @Tags forecast
// @Produce json
// @Param location query string false "5-digit postal code" example(33598)
// @Param provider query string false "commercial or grid" Enums(commercial, grid)
// @Param raw query bool false "Include raw provider payloads"
// @Success 200 {object} ForecastResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /forecast/latest [get]
func (app *App) handleGetLatestForecast(c *gin.Context) {
	input, provider, loc, ok := app.bindStoredQuery(c)
	if !ok {
		return
	}

	result, err := app.store.Latest(provider, loc)
	if err != nil {
		app.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newForecastResponse(result, input.Raw))
}

// handleGetForecastHistory godoc
// @Summary Get refreshed forecast history
// @Description Forecasts stored by the background refresh for a configured location, newest first
// @Tags forecast
// @Produce json
// @Param location query string false "5-digit postal code" example(33598)
// @Param provider query string false "commercial or grid" Enums(commercial, grid)
// @Param raw query bool false "Include raw provider payloads"
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /forecast/history [get]
func (app *App) handleGetForecastHistory(c *gin.Context) {
	input, provider, loc, ok := app.bindStoredQuery(c)
	if !ok {
		return
	}

	results, err := app.store.History(provider, loc)
	if err != nil {
		app.writeError(c, err)
		return
	}

	forecasts := make([]ForecastResponse, 0, len(results))
	for _, result := range results {
		forecasts = append(forecasts, newForecastResponse(result, input.Raw))
	}

	c.JSON(http.StatusOK, HistoryResponse{
		Provider:  provider,
		Location:  loc.Key(),
		Forecasts: forecasts,
	})
}

// bindStoredQuery reads the provider and location of a stored forecast
// request, writing the error response itself when ok is false.
func (app *App) bindStoredQuery(c *gin.Context) (input StoredQuery, provider weather.ProviderKind, loc types.Location, ok bool) {
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return input, "", loc, false
	}

	providerName := input.Provider
	if providerName == "" {
		providerName = app.cfg.App.RefreshProvider
	}
	provider, err := weather.ParseProvider(providerName)
	if err != nil {
		app.writeError(c, err)
		return input, "", loc, false
	}

	loc, err = app.parseLocation(input.Location, "", "")
	if err != nil {
		app.writeError(c, err)
		return input, "", loc, false
	}

	return input, provider, loc, true
}

// parseLocation prefers explicit coordinates, then the location query, then
// the configured default.
func (app *App) parseLocation(query, latitude, longitude string) (types.Location, error) {
	if latitude != "" || longitude != "" {
		return location.FromCoordinates(latitude, longitude)
	}
	if query == "" {
		query = app.cfg.App.DefaultLocation
	}
	return location.Parse(query)
}

// writeError maps service errors to HTTP responses
func (app *App) writeError(c *gin.Context, err error) {
	status, message := errorStatus(err)
	if status >= http.StatusInternalServerError {
		app.logger.Error("request failed",
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"error", err,
		)
	}
	c.JSON(status, gin.H{"error": message})
}

func errorStatus(err error) (int, string) {
	var (
		fetchErr  *weather.FetchError
		statusErr *httpx.StatusError
	)

	switch {
	case errors.Is(err, location.ErrInvalidLocation),
		errors.Is(err, location.ErrInvalidLatitude),
		errors.Is(err, location.ErrInvalidLongitude),
		errors.Is(err, weather.ErrInvalidDays),
		errors.Is(err, weather.ErrUnknownProvider):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, location.ErrLocationNotFound):
		return http.StatusNotFound, "location not found"
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "no forecast has been refreshed for this location yet"
	case errors.Is(err, weatherapi.ErrMissingAPIKey):
		return http.StatusServiceUnavailable, "commercial provider is not configured"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "upstream request timed out"
	case errors.As(err, &fetchErr):
		if fetchErr.Request == weather.RequestPoints && errors.As(err, &statusErr) && statusErr.NotFound() {
			return http.StatusNotFound, "location is outside the grid provider's coverage"
		}
		if errors.Is(err, httpx.ErrCircuitOpen) {
			return http.StatusBadGateway, fmt.Sprintf("%s provider temporarily unavailable", fetchErr.Request)
		}
		return http.StatusBadGateway, fmt.Sprintf("failed to fetch %s", fetchErr.Request)
	case errors.As(err, &statusErr), errors.Is(err, httpx.ErrCircuitOpen):
		return http.StatusBadGateway, "upstream provider failed"
	case errors.Is(err, weather.ErrMissingHourlyData):
		return http.StatusBadGateway, err.Error()
	default:
		return http.StatusInternalServerError, "failed to fetch forecast"
	}
}
