package repository

import (
	"context"
	"errors"

	"agrivision/entities"
)

var ErrFieldNotFound = errors.New("field not found")

// FieldRepository scopes every lookup to the owning user; a field of another
// user is reported as ErrFieldNotFound.
type FieldRepository interface {
	Create(ctx context.Context, f *entities.Field) error
	FindByID(ctx context.Context, id uint, uid string) (*entities.Field, error)
	ListByUser(ctx context.Context, uid string) ([]entities.Field, error)
	CountByUser(ctx context.Context, uid string) (int64, error)
	Update(ctx context.Context, f *entities.Field) error
	Delete(ctx context.Context, id uint, uid string) error
}
