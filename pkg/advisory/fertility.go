package advisory

// classifyFertility tags each indicator against its band and derives the
// overall summary from the tags alone.
func classifyFertility(cfg Config, s SoilSample) FertilityAssessment {
	f := FertilityAssessment{
		PH:         cfg.Thresholds[NutrientPH].Classify(s.PH),
		Nitrogen:   cfg.Thresholds[NutrientNitrogen].Classify(s.Nitrogen),
		Phosphorus: cfg.Thresholds[NutrientPhosphorus].Classify(s.Phosphorus),
		Potassium:  cfg.Thresholds[NutrientPotassium].Classify(s.Potassium),
	}
	f.Overall = cfg.Overall.Classify(f.OffCount())
	return f
}

// Tag returns the classification of one nutrient.
func (f FertilityAssessment) Tag(n Nutrient) Tag {
	switch n {
	case NutrientPH:
		return f.PH
	case NutrientNitrogen:
		return f.Nitrogen
	case NutrientPhosphorus:
		return f.Phosphorus
	case NutrientPotassium:
		return f.Potassium
	}
	return ""
}
