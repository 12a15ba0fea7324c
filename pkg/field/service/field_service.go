package service

import (
	"context"
	"errors"

	"agrivision/entities"
	"agrivision/pkg/field/repository"
	"agrivision/pkg/geo"
)

var (
	ErrFieldNotFound  = repository.ErrFieldNotFound
	ErrInvalidPolygon = errors.New("field boundary needs at least 3 valid points")
	ErrNameRequired   = errors.New("field name is required")
)

// NotSpecified fills an empty location or crop.
const NotSpecified = "Not specified"

// Palette is the set of map colors handed out to new fields in turn.
var Palette = []string{
	"#10b981", "#3b82f6", "#f59e0b", "#ef4444",
	"#8b5cf6", "#ec4899", "#14b8a6", "#f97316",
}

type FieldInput struct {
	Name     string
	Location string
	Crop     string
	Boundary geo.FieldPolygon
}

// FieldUpdate changes only the non-nil attributes.
type FieldUpdate struct {
	Name     *string
	Location *string
	Crop     *string
}

type Summary struct {
	FieldCount    int     `json:"field_count"`
	TotalHectares float64 `json:"total_hectares"`
	TotalAcres    float64 `json:"total_acres"`
}

// AreaPreview describes a ring that has not been saved yet.
type AreaPreview struct {
	Vertices int          `json:"vertices"`
	Hectares float64      `json:"hectares"`
	Acres    float64      `json:"acres"`
	Centroid geo.GeoPoint `json:"centroid"`
	Bounds   geo.Bounds   `json:"bounds"`
}

type FieldService interface {
	CreateField(ctx context.Context, uid string, in FieldInput) (*entities.Field, error)
	UpdateField(ctx context.Context, id uint, uid string, up FieldUpdate) (*entities.Field, error)
	DeleteField(ctx context.Context, id uint, uid string) error
	GetFieldByID(ctx context.Context, id uint, uid string) (*entities.Field, error)
	ListFields(ctx context.Context, uid string) ([]entities.Field, error)
	Summary(ctx context.Context, uid string) (Summary, error)
	PreviewArea(poly geo.FieldPolygon) AreaPreview
}
