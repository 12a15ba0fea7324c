// Package advisory turns a soil/weather sample into fertility tags, an
// irrigation score, crop recommendations and improvement suggestions.
//
// Every stage is a pure function of its inputs and the Engine's tables, so an
// Engine can be shared between goroutines without locking.
package advisory

import "fmt"

// Engine evaluates samples against one immutable Config.
type Engine struct {
	cfg Config
}

// New validates cfg and returns an Engine holding a private copy of it.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg.Clone()}, nil
}

var defaultEngine = mustNew(DefaultConfig())

func mustNew(cfg Config) *Engine {
	e, err := New(cfg)
	if err != nil {
		panic(fmt.Sprintf("advisory: default config: %v", err))
	}
	return e
}

// Default returns the engine built from DefaultConfig.
func Default() *Engine { return defaultEngine }

// Config returns a copy of the engine's tables.
func (e *Engine) Config() Config { return e.cfg.Clone() }

func (e *Engine) ClassifyFertility(s SoilSample) FertilityAssessment {
	return classifyFertility(e.cfg, s)
}

func (e *Engine) ScoreIrrigation(s SoilSample) IrrigationAssessment {
	return scoreIrrigation(e.cfg, s)
}

func (e *Engine) RecommendCrops(s SoilSample, f FertilityAssessment) []string {
	return recommendCrops(e.cfg, s, f)
}

func (e *Engine) SuggestImprovements(s SoilSample, f FertilityAssessment, irrigationScore int) []string {
	return suggestImprovements(e.cfg, ImprovementInput{Sample: s, Fertility: f, IrrigationScore: irrigationScore})
}

// Run executes the four stages in order.
func (e *Engine) Run(s SoilSample) AdvisoryResult {
	f := e.ClassifyFertility(s)
	irr := e.ScoreIrrigation(s)
	return AdvisoryResult{
		Fertility:              f,
		Irrigation:             irr,
		RecommendedCrops:       e.RecommendCrops(s, f),
		ImprovementSuggestions: e.SuggestImprovements(s, f, irr.Score),
	}
}

// ClassifyFertility uses the default tables.
func ClassifyFertility(s SoilSample) FertilityAssessment { return defaultEngine.ClassifyFertility(s) }

// ScoreIrrigation uses the default tables.
func ScoreIrrigation(s SoilSample) IrrigationAssessment { return defaultEngine.ScoreIrrigation(s) }

// RecommendCrops uses the default tables.
func RecommendCrops(s SoilSample, f FertilityAssessment) []string {
	return defaultEngine.RecommendCrops(s, f)
}

// SuggestImprovements uses the default tables.
func SuggestImprovements(s SoilSample, f FertilityAssessment, irrigationScore int) []string {
	return defaultEngine.SuggestImprovements(s, f, irrigationScore)
}

// RunAdvisory uses the default tables.
func RunAdvisory(s SoilSample) AdvisoryResult { return defaultEngine.Run(s) }
