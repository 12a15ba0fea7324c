package serviceImp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"agrivision/entities"
	activity "agrivision/pkg/activity/service"
	"agrivision/pkg/advisory"
	"agrivision/pkg/ai"
	fieldrepo "agrivision/pkg/field/repository"
	"agrivision/pkg/report"
	repo "agrivision/pkg/soil/repository"
	"agrivision/pkg/soil/service"
)

type SoilSvc struct {
	engine   *advisory.Engine
	llm      ai.Client
	r        repo.SoilRepository
	fields   fieldrepo.FieldRepository
	activity activity.ActivityService
	log      *zap.Logger
	now      func() time.Time
}

func NewSoilService(engine *advisory.Engine, llm ai.Client, r repo.SoilRepository, fields fieldrepo.FieldRepository,
	act activity.ActivityService, log *zap.Logger) *SoilSvc {
	return &SoilSvc{engine: engine, llm: llm, r: r, fields: fields, activity: act, log: log, now: time.Now}
}

var _ service.SoilService = (*SoilSvc)(nil)

func (s *SoilSvc) Analyze(ctx context.Context, uid string, in service.AnalyzeInput) (*entities.SoilAnalysis, error) {
	mode := strings.ToLower(strings.TrimSpace(in.Mode))
	kind := entities.ActivityQuickAnalysis
	switch mode {
	case "", entities.ModeQuick:
		mode = entities.ModeQuick
	case entities.ModeDetailed:
		kind = entities.ActivityDetailedAnalysis
	default:
		return nil, service.ErrInvalidMode
	}

	fieldName := ""
	if in.FieldID != nil {
		f, err := s.fields.FindByID(ctx, *in.FieldID, uid)
		if err != nil {
			return nil, err
		}
		fieldName = f.Name
	}

	res := s.engine.Run(in.Sample)
	a := &entities.SoilAnalysis{
		UserID:    uid,
		FieldID:   in.FieldID,
		Mode:      mode,
		Sample:    in.Sample,
		Result:    res,
		Note:      strings.TrimSpace(in.Note),
		CreatedAt: s.now().UTC(),
	}
	if in.Narrative {
		a.Narrative = s.llm.SummarizeAdvisory(ctx, in.Sample, res)
	}
	if err := s.r.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("save soil analysis: %w", err)
	}

	desc := fmt.Sprintf("Soil analysis: %s fertility, irrigation %d/%d", res.Fertility.Overall, res.Irrigation.Score, advisory.MaxIrrigationScore)
	if fieldName != "" {
		desc += " (" + fieldName + ")"
	}
	if _, err := s.activity.Record(ctx, uid, kind, desc); err != nil {
		s.log.Warn("record analysis activity", zap.Uint("analysis_id", a.AnalysisID), zap.Error(err))
	}
	s.log.Info("soil analyzed",
		zap.String("uid", uid),
		zap.Uint("analysis_id", a.AnalysisID),
		zap.String("mode", mode),
		zap.String("fertility", string(res.Fertility.Overall)),
		zap.Int("irrigation_score", res.Irrigation.Score),
		zap.Strings("crops", res.RecommendedCrops))
	return a, nil
}

func (s *SoilSvc) List(ctx context.Context, uid string, fieldID *uint) ([]entities.SoilAnalysis, error) {
	return s.r.List(ctx, uid, fieldID, service.ListLimit)
}

func (s *SoilSvc) Get(ctx context.Context, id uint, uid string) (*entities.SoilAnalysis, error) {
	return s.r.FindByID(ctx, id, uid)
}

func (s *SoilSvc) Report(ctx context.Context, id uint, uid string) (report.Document, error) {
	a, err := s.r.FindByID(ctx, id, uid)
	if err != nil {
		return report.Document{}, err
	}
	fieldName := ""
	if a.FieldID != nil {
		f, err := s.fields.FindByID(ctx, *a.FieldID, uid)
		switch {
		case err == nil:
			fieldName = f.Name
		case errors.Is(err, fieldrepo.ErrFieldNotFound):
			// the field was deleted after the analysis; report without it
		default:
			return report.Document{}, err
		}
	}
	return report.NewDocument(a, fieldName, s.now()), nil
}
