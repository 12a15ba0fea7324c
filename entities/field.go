package entities

import (
	"time"

	"agrivision/pkg/geo"
)

type Field struct {
	FieldID      uint             `gorm:"primaryKey" json:"field_id"`
	UserID       string           `json:"user_id" gorm:"index"`
	Name         string           `json:"name"`
	Location     string           `json:"location"`
	Crop         string           `json:"crop"`
	Color        string           `json:"color"` // #rrggbb from the field palette
	Boundary     geo.FieldPolygon `json:"boundary" gorm:"serializer:json"`
	BoundaryWKT  string           `json:"boundary_wkt"`
	AreaHectares float64          `json:"area_hectares"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AreaAcres is the stored area in acres.
func (f Field) AreaAcres() float64 { return geo.HectaresToAcres(f.AreaHectares) }
