package serviceImp

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"agrivision/entities"
	activity "agrivision/pkg/activity/service"
	repo "agrivision/pkg/field/repository"
	"agrivision/pkg/field/service"
	"agrivision/pkg/geo"
)

type fieldSvc struct {
	r        repo.FieldRepository
	activity activity.ActivityService
	log      *zap.Logger
}

func NewFieldService(r repo.FieldRepository, act activity.ActivityService, log *zap.Logger) service.FieldService {
	return &fieldSvc{r: r, activity: act, log: log}
}

func (s *fieldSvc) CreateField(ctx context.Context, uid string, in service.FieldInput) (*entities.Field, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, service.ErrNameRequired
	}
	ring := in.Boundary.Open()
	if err := validateRing(ring); err != nil {
		return nil, err
	}

	n, err := s.r.CountByUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("count fields: %w", err)
	}
	f := &entities.Field{
		UserID:       uid,
		Name:         name,
		Location:     orNotSpecified(in.Location),
		Crop:         orNotSpecified(in.Crop),
		Color:        service.Palette[int(n)%len(service.Palette)],
		Boundary:     ring,
		AreaHectares: geo.ComputeAreaHectares(ring),
	}
	if f.BoundaryWKT, err = ring.WKT(); err != nil {
		return nil, fmt.Errorf("encode boundary: %w", err)
	}
	if err := s.r.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create field: %w", err)
	}

	desc := fmt.Sprintf("%s (%.2f ha)", f.Name, f.AreaHectares)
	if _, err := s.activity.Record(ctx, uid, entities.ActivityFieldSaved, desc); err != nil {
		s.log.Warn("record field activity", zap.Uint("field_id", f.FieldID), zap.Error(err))
	}
	s.log.Info("field saved", zap.String("uid", uid), zap.Uint("field_id", f.FieldID),
		zap.Int("vertices", len(ring)), zap.Float64("hectares", f.AreaHectares))
	return f, nil
}

func (s *fieldSvc) UpdateField(ctx context.Context, id uint, uid string, up service.FieldUpdate) (*entities.Field, error) {
	f, err := s.r.FindByID(ctx, id, uid)
	if err != nil {
		return nil, err
	}
	if up.Name != nil {
		name := strings.TrimSpace(*up.Name)
		if name == "" {
			return nil, service.ErrNameRequired
		}
		f.Name = name
	}
	if up.Location != nil {
		f.Location = orNotSpecified(*up.Location)
	}
	if up.Crop != nil {
		f.Crop = orNotSpecified(*up.Crop)
	}
	if err := s.r.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fieldSvc) DeleteField(ctx context.Context, id uint, uid string) error {
	return s.r.Delete(ctx, id, uid)
}

func (s *fieldSvc) GetFieldByID(ctx context.Context, id uint, uid string) (*entities.Field, error) {
	return s.r.FindByID(ctx, id, uid)
}

func (s *fieldSvc) ListFields(ctx context.Context, uid string) ([]entities.Field, error) {
	return s.r.ListByUser(ctx, uid)
}

func (s *fieldSvc) Summary(ctx context.Context, uid string) (service.Summary, error) {
	fields, err := s.r.ListByUser(ctx, uid)
	if err != nil {
		return service.Summary{}, err
	}
	sum := service.Summary{FieldCount: len(fields)}
	for _, f := range fields {
		sum.TotalHectares += f.AreaHectares
	}
	sum.TotalAcres = geo.HectaresToAcres(sum.TotalHectares)
	return sum, nil
}

func (s *fieldSvc) PreviewArea(poly geo.FieldPolygon) service.AreaPreview {
	ring := poly.Open()
	ha := geo.ComputeAreaHectares(ring)
	return service.AreaPreview{
		Vertices: len(ring),
		Hectares: ha,
		Acres:    geo.HectaresToAcres(ha),
		Centroid: geo.Centroid(ring),
		Bounds:   geo.BoundingBox(ring),
	}
}

func validateRing(ring geo.FieldPolygon) error {
	if len(ring) < geo.MinVertices {
		return service.ErrInvalidPolygon
	}
	for _, p := range ring {
		if !finite(p.Lat) || !finite(p.Lng) || math.Abs(p.Lat) > 90 || math.Abs(p.Lng) > 180 {
			return service.ErrInvalidPolygon
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func orNotSpecified(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return service.NotSpecified
	}
	return s
}
