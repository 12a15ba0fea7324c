package repositoryImp

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"agrivision/entities"
	"agrivision/pkg/field/repository"
)

type fieldRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.FieldRepository { return &fieldRepo{db} }

func (r *fieldRepo) Create(ctx context.Context, f *entities.Field) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *fieldRepo) FindByID(ctx context.Context, id uint, uid string) (*entities.Field, error) {
	var f entities.Field
	err := r.db.WithContext(ctx).Where("field_id = ? AND user_id = ?", id, uid).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrFieldNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fieldRepo) ListByUser(ctx context.Context, uid string) ([]entities.Field, error) {
	var out []entities.Field
	if err := r.db.WithContext(ctx).Where("user_id = ?", uid).Order("created_at ASC, field_id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *fieldRepo) CountByUser(ctx context.Context, uid string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Field{}).Where("user_id = ?", uid).Count(&n).Error
	return n, err
}

// Update writes the editable attributes of f.
func (r *fieldRepo) Update(ctx context.Context, f *entities.Field) error {
	res := r.db.WithContext(ctx).Model(&entities.Field{}).
		Where("field_id = ? AND user_id = ?", f.FieldID, f.UserID).
		Updates(map[string]any{"name": f.Name, "location": f.Location, "crop": f.Crop})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrFieldNotFound
	}
	return nil
}

func (r *fieldRepo) Delete(ctx context.Context, id uint, uid string) error {
	res := r.db.WithContext(ctx).Where("field_id = ? AND user_id = ?", id, uid).Delete(&entities.Field{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrFieldNotFound
	}
	return nil
}
