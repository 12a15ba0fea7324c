package service

import (
	"context"
	"errors"

	"agrivision/entities"
	"agrivision/pkg/advisory"
	"agrivision/pkg/report"
	"agrivision/pkg/soil/repository"
)

var (
	ErrAnalysisNotFound = repository.ErrAnalysisNotFound
	ErrInvalidMode      = errors.New("mode must be quick or detailed")
)

// ListLimit caps GET /soil/analyses.
const ListLimit = 100

type AnalyzeInput struct {
	Sample  advisory.SoilSample
	FieldID *uint
	Mode    string // quick|detailed; empty means quick
	Note    string
	// Narrative asks for an LLM-written summary next to the result.
	Narrative bool
}

type SoilService interface {
	Analyze(ctx context.Context, uid string, in AnalyzeInput) (*entities.SoilAnalysis, error)
	List(ctx context.Context, uid string, fieldID *uint) ([]entities.SoilAnalysis, error)
	Get(ctx context.Context, id uint, uid string) (*entities.SoilAnalysis, error)
	Report(ctx context.Context, id uint, uid string) (report.Document, error)
}
