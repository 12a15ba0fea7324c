package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"agrivision/entities"
	"agrivision/pkg/soil/repository"
)

type soilRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SoilRepository { return &soilRepo{db} }

func (r *soilRepo) Create(ctx context.Context, a *entities.SoilAnalysis) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *soilRepo) FindByID(ctx context.Context, id uint, uid string) (*entities.SoilAnalysis, error) {
	var a entities.SoilAnalysis
	err := r.db.WithContext(ctx).Where("analysis_id = ? AND user_id = ?", id, uid).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrAnalysisNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *soilRepo) List(ctx context.Context, uid string, fieldID *uint, limit int) ([]entities.SoilAnalysis, error) {
	var out []entities.SoilAnalysis
	q := r.db.WithContext(ctx).Where("user_id = ?", uid)
	if fieldID != nil {
		q = q.Where("field_id = ?", *fieldID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Order("created_at DESC, analysis_id DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
