package domain

import "time"

// CreateLogRequest crosses the boundary to the persistence collaborator
// after a completed session plus user-confirmed outcome capture. The core
// never persists it itself.
type CreateLogRequest struct {
	BrewedAt   time.Time
	Method     Method
	RecipeID   string
	RecipeName string
	Dose       float64
	Yield      float64
	WaterTempC float64
	GrindLabel string
	BrewTime   time.Duration
	Rating     int    // 1..5
	Tag        string // optional
	Note       string // optional
}

// BrewLog is a persisted brew outcome.
type BrewLog struct {
	ID         string
	BrewedAt   time.Time
	Method     Method
	RecipeID   string
	RecipeName string
	Dose       float64
	Yield      float64
	WaterTempC float64
	GrindLabel string
	BrewTime   time.Duration
	Rating     int
	Tag        string
	Note       string
}
