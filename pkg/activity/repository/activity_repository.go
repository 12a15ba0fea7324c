package repository

import (
	"context"

	"agrivision/entities"
)

type ActivityRepository interface {
	Insert(ctx context.Context, a *entities.Activity) error
	Recent(ctx context.Context, uid string, limit int) ([]entities.Activity, error)
	// Prune keeps only the newest keep entries of uid.
	Prune(ctx context.Context, uid string, keep int) error
}
