package repositoryImp

import (
	"context"

	"gorm.io/gorm"

	"agrivision/entities"
	"agrivision/pkg/activity/repository"
)

type activityRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.ActivityRepository { return &activityRepo{db} }

// newestFirst breaks timestamp ties by insertion order.
const newestFirst = "timestamp DESC, rowid DESC"

func (r *activityRepo) Insert(ctx context.Context, a *entities.Activity) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *activityRepo) Recent(ctx context.Context, uid string, limit int) ([]entities.Activity, error) {
	var out []entities.Activity
	q := r.db.WithContext(ctx).Where("user_id = ?", uid).Order(newestFirst)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *activityRepo) Prune(ctx context.Context, uid string, keep int) error {
	db := r.db.WithContext(ctx)
	newest := db.Model(&entities.Activity{}).Select("id").
		Where("user_id = ?", uid).Order(newestFirst).Limit(keep)
	return db.Where("user_id = ? AND id NOT IN (?)", uid, newest).Delete(&entities.Activity{}).Error
}
