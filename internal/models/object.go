package models

// ObjectRecord is one tracked piece of equipment with a fuel tank and an
// engine-hour meter. EngineHours never decreases across successful updates;
// CurrentFuel stays within [0, FuelCapacity] after every update.
type ObjectRecord struct {
	ObjectID         string  `json:"object_id"`
	EngineHours      float64 `json:"engine_hours"`
	FuelCapacity     float64 `json:"fuel_capacity"`       // liters
	CurrentFuel      float64 `json:"current_fuel"`        // liters
	FuelUsagePerHour float64 `json:"fuel_usage_per_hour"` // liters per engine-hour
}
