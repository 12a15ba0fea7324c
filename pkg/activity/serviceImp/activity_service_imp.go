package serviceImp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"agrivision/entities"
	repo "agrivision/pkg/activity/repository"
	"agrivision/pkg/activity/service"
)

type activitySvc struct {
	r     repo.ActivityRepository
	limit int
	log   *zap.Logger
	now   func() time.Time
}

// NewActivityService keeps at most limit entries per user.
func NewActivityService(r repo.ActivityRepository, limit int, log *zap.Logger) service.ActivityService {
	if limit <= 0 {
		limit = 5
	}
	return &activitySvc{r: r, limit: limit, log: log, now: time.Now}
}

func (s *activitySvc) Record(ctx context.Context, uid, kind, description string) (*entities.Activity, error) {
	switch kind {
	case entities.ActivityQuickAnalysis, entities.ActivityDetailedAnalysis, entities.ActivityFieldSaved:
	default:
		return nil, fmt.Errorf("%w: %q", service.ErrUnknownActivityType, kind)
	}
	a := &entities.Activity{
		ID:          uuid.NewString(),
		UserID:      uid,
		Type:        kind,
		Description: description,
		Timestamp:   s.now().UTC(),
	}
	if err := s.r.Insert(ctx, a); err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}
	if err := s.r.Prune(ctx, uid, s.limit); err != nil {
		// the entry is stored; an over-long history is trimmed next time
		s.log.Warn("prune activity history", zap.String("uid", uid), zap.Error(err))
	}
	return a, nil
}

func (s *activitySvc) List(ctx context.Context, uid string) ([]entities.Activity, error) {
	return s.r.Recent(ctx, uid, s.limit)
}
