package models

import "time"

// ReadingLog is an immutable audit record of one reading submission.
// Entries are append-only; nothing in the system mutates or deletes them.
type ReadingLog struct {
	LogID          string    `json:"log_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
	ObjectID       string    `json:"object_id"`
	PrevHours      float64   `json:"prev_hours"`
	NewHours       float64   `json:"new_hours"`
	HoursDelta     float64   `json:"hours_delta"`
	FuelAdded      float64   `json:"fuel_added"`
	FullTank       bool      `json:"full_tank"`
	CalculatedFuel float64   `json:"calculated_current_fuel"`
	UserID         int64     `json:"user_id"`
	Username       string    `json:"username"`
}
