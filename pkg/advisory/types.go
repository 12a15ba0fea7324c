package advisory

// SoilSample is one soil/weather measurement as entered on the soil page.
// Nutrient values are index units (expected 0–200).
type SoilSample struct {
	Nitrogen     float64 `json:"nitrogen"`
	Phosphorus   float64 `json:"phosphorus"`
	Potassium    float64 `json:"potassium"`
	PH           float64 `json:"ph"`
	TemperatureC float64 `json:"temperature_c"`
	HumidityPct  float64 `json:"humidity_pct"`
	RainfallMM   float64 `json:"rainfall_mm"`
}

// Tag is a three-level classification of a single indicator.
type Tag string

const (
	TagLow     Tag = "Low"
	TagOptimal Tag = "Optimal"
	TagHigh    Tag = "High"
)

// Fertility is the overall summary derived from the four indicator tags.
type Fertility string

const (
	FertilityGood     Fertility = "Good"
	FertilityModerate Fertility = "Moderate"
	FertilityPoor     Fertility = "Poor"
)

type FertilityAssessment struct {
	PH         Tag       `json:"ph"`
	Nitrogen   Tag       `json:"nitrogen"`
	Phosphorus Tag       `json:"phosphorus"`
	Potassium  Tag       `json:"potassium"`
	Overall    Fertility `json:"overall_fertility"`
}

// OffCount is the number of indicators outside their optimal band.
func (f FertilityAssessment) OffCount() int {
	n := 0
	for _, t := range []Tag{f.PH, f.Nitrogen, f.Phosphorus, f.Potassium} {
		if t != TagOptimal {
			n++
		}
	}
	return n
}

type IrrigationAssessment struct {
	Score       int    `json:"score"`
	Description string `json:"description"`
}

// AdvisoryResult is everything the soil page shows for one sample.
type AdvisoryResult struct {
	Fertility              FertilityAssessment  `json:"fertility_analysis"`
	Irrigation             IrrigationAssessment `json:"irrigation_analysis"`
	RecommendedCrops       []string             `json:"recommended_crops"`
	ImprovementSuggestions []string             `json:"improvement_suggestions"`
}
