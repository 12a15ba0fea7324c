package advisory

import "math"

const (
	MinIrrigationScore = 0
	MaxIrrigationScore = 5
)

var irrigationDescriptions = [MaxIrrigationScore + 1]string{
	0: "Severe water deficit: increase irrigation frequency immediately",
	1: "Water deficit: increase irrigation frequency",
	2: "Adequate moisture: maintain current irrigation schedule",
	3: "Good moisture: maintain current irrigation schedule",
	4: "Moisture slightly high: reduce irrigation slightly",
	5: "Excess water: risk of waterlogging, improve drainage",
}

// IrrigationDescription returns the fixed text bound to score. Scores outside
// 0–5 are clamped first.
func IrrigationDescription(score int) string {
	return irrigationDescriptions[clampScore(score)]
}

// scoreIrrigation counts the rainfall steps reached and nudges the result by
// one point for very dry or very humid air. NaN readings count as the dry extreme.
func scoreIrrigation(cfg Config, s SoilSample) IrrigationAssessment {
	score := 0
	if !math.IsNaN(s.RainfallMM) {
		for _, step := range cfg.Irrigation.RainfallStepsMM {
			if s.RainfallMM >= step {
				score++
			}
		}
	}
	switch {
	case math.IsNaN(s.HumidityPct) || s.HumidityPct < cfg.Irrigation.DryHumidityPct:
		score--
	case s.HumidityPct > cfg.Irrigation.HumidHumidityPct:
		score++
	}
	score = clampScore(score)
	return IrrigationAssessment{Score: score, Description: irrigationDescriptions[score]}
}

func clampScore(score int) int {
	if score < MinIrrigationScore {
		return MinIrrigationScore
	}
	if score > MaxIrrigationScore {
		return MaxIrrigationScore
	}
	return score
}
