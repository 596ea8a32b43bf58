package main

// @title Medi Forecast API
// @version 1.0
// @description Normalized daily forecasts from a commercial weather API and the National Weather Service grid.
// @BasePath /
