package model

// Vendedor is a salesperson with an assigned circular geofence.
// Stored in the secondary database when one is configured.
type Vendedor struct {
	BaseModel
	Code      string  `gorm:"type:varchar(100);uniqueIndex;not null" json:"code" validate:"required"`
	Name      string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusM   float64 `json:"radius_m"` // geofence radius in meters
	Status    string  `gorm:"type:varchar(1);default:'A'" json:"status"`
}
