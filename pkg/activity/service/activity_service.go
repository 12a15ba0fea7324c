package service

import (
	"context"
	"errors"

	"agrivision/entities"
)

var ErrUnknownActivityType = errors.New("unknown activity type")

type ActivityService interface {
	Record(ctx context.Context, uid, kind, description string) (*entities.Activity, error)
	List(ctx context.Context, uid string) ([]entities.Activity, error)
}
