package repository

import (
	"context"
	"errors"

	"agrivision/entities"
)

var ErrAnalysisNotFound = errors.New("soil analysis not found")

type SoilRepository interface {
	Create(ctx context.Context, a *entities.SoilAnalysis) error
	FindByID(ctx context.Context, id uint, uid string) (*entities.SoilAnalysis, error)
	// List returns newest first; a nil fieldID lists every analysis of uid.
	List(ctx context.Context, uid string, fieldID *uint, limit int) ([]entities.SoilAnalysis, error)
}
