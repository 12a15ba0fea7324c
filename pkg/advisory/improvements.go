package advisory

// SoilInGoodCondition is returned when no improvement rule fires.
const SoilInGoodCondition = "Your soil is in good condition! Maintain current practices."

// HeatStressC is the temperature above which shading is suggested.
const HeatStressC = 35.0

// ImprovementInput is what an improvement rule sees.
type ImprovementInput struct {
	Sample          SoilSample
	Fertility       FertilityAssessment
	IrrigationScore int
}

// ImprovementRule contributes Suggestion when When holds.
type ImprovementRule struct {
	Name       string
	When       func(ImprovementInput) bool
	Suggestion string
}

func tagIs(n Nutrient, want Tag) func(ImprovementInput) bool {
	return func(in ImprovementInput) bool { return in.Fertility.Tag(n) == want }
}

// DefaultImprovementRules is the improvement table in evaluation order. Each
// rule names one cause.
func DefaultImprovementRules() []ImprovementRule {
	return []ImprovementRule{
		{Name: "ph-low", When: tagIs(NutrientPH, TagLow),
			Suggestion: "Add lime or wood ash to increase soil pH (reduce acidity)"},
		{Name: "ph-high", When: tagIs(NutrientPH, TagHigh),
			Suggestion: "Add sulfur or organic compost to decrease soil pH (reduce alkalinity)"},
		{Name: "nitrogen-low", When: tagIs(NutrientNitrogen, TagLow),
			Suggestion: "Apply nitrogen-rich fertilizers (urea, ammonium sulfate) or use legume cover crops"},
		{Name: "nitrogen-high", When: tagIs(NutrientNitrogen, TagHigh),
			Suggestion: "Reduce nitrogen fertilizer application to prevent nutrient runoff"},
		{Name: "phosphorus-low", When: tagIs(NutrientPhosphorus, TagLow),
			Suggestion: "Add phosphate fertilizers (DAP, SSP) or bone meal"},
		{Name: "phosphorus-high", When: tagIs(NutrientPhosphorus, TagHigh),
			Suggestion: "Avoid phosphorus fertilizers; excess can harm water bodies"},
		{Name: "potassium-low", When: tagIs(NutrientPotassium, TagLow),
			Suggestion: "Apply potassium-rich fertilizers (muriate of potash) or wood ash"},
		{Name: "potassium-high", When: tagIs(NutrientPotassium, TagHigh),
			Suggestion: "Skip potash this season; excess potassium limits calcium and magnesium uptake"},
		{Name: "irrigation-deficit", When: func(in ImprovementInput) bool { return in.IrrigationScore <= 1 },
			Suggestion: "Install drip irrigation and mulch around plants to retain soil moisture"},
		{Name: "irrigation-excess", When: func(in ImprovementInput) bool { return in.IrrigationScore >= MaxIrrigationScore },
			Suggestion: "Improve drainage with raised beds or channels and reduce irrigation frequency to prevent waterlogging"},
		{Name: "fertility-not-good", When: func(in ImprovementInput) bool { return in.Fertility.Overall != FertilityGood },
			Suggestion: "Add organic matter (compost, manure) and rotate crops to rebuild soil structure"},
		{Name: "heat-stress", When: func(in ImprovementInput) bool { return in.Sample.TemperatureC > HeatStressC },
			Suggestion: "Use shade nets or mulching to reduce soil temperature"},
	}
}

// suggestImprovements runs every rule once in order; each firing rule adds its
// suggestion unless the same text was already added.
func suggestImprovements(cfg Config, in ImprovementInput) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, r := range cfg.Improvements {
		if r.When == nil || !r.When(in) {
			continue
		}
		if _, dup := seen[r.Suggestion]; dup {
			continue
		}
		seen[r.Suggestion] = struct{}{}
		out = append(out, r.Suggestion)
	}
	if len(out) == 0 {
		return []string{SoilInGoodCondition}
	}
	return out
}
