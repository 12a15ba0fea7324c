package advisory

import (
	"fmt"
	"math"
	"strings"
)

// ConsultExpert is returned when no crop rule matches a sample.
const ConsultExpert = "Consult local agricultural expert for specific recommendations"

// Metric names a raw reading a crop condition can test.
type Metric string

const (
	MetricRainfall    Metric = "rainfall_mm"
	MetricPH          Metric = "ph"
	MetricTemperature Metric = "temperature_c"
	MetricHumidity    Metric = "humidity_pct"
	MetricNitrogen    Metric = "nitrogen"
	MetricPhosphorus  Metric = "phosphorus"
	MetricPotassium   Metric = "potassium"
)

// Value reads the metric from s.
func (m Metric) Value(s SoilSample) (float64, bool) {
	switch m {
	case MetricRainfall:
		return s.RainfallMM, true
	case MetricPH:
		return s.PH, true
	case MetricTemperature:
		return s.TemperatureC, true
	case MetricHumidity:
		return s.HumidityPct, true
	case MetricNitrogen:
		return s.Nitrogen, true
	case MetricPhosphorus:
		return s.Phosphorus, true
	case MetricPotassium:
		return s.Potassium, true
	}
	return 0, false
}

// ParseMetric accepts the metric names plus a few short aliases.
func ParseMetric(s string) (Metric, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rainfall_mm", "rainfall", "rain":
		return MetricRainfall, nil
	case "ph":
		return MetricPH, nil
	case "temperature_c", "temperature", "temp":
		return MetricTemperature, nil
	case "humidity_pct", "humidity":
		return MetricHumidity, nil
	case "nitrogen", "n":
		return MetricNitrogen, nil
	case "phosphorus", "p":
		return MetricPhosphorus, nil
	case "potassium", "k":
		return MetricPotassium, nil
	}
	return "", fmt.Errorf("unknown metric %q", s)
}

// Range is an interval over a metric. Infinite ends are unbounded.
type Range struct {
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	MinExclusive bool    `json:"min_exclusive,omitempty"`
}

func Between(lo, hi float64) Range { return Range{Min: lo, Max: hi} }
func AtLeast(lo float64) Range     { return Range{Min: lo, Max: math.Inf(1)} }
func Above(lo float64) Range       { return Range{Min: lo, Max: math.Inf(1), MinExclusive: true} }
func AtMost(hi float64) Range      { return Range{Min: math.Inf(-1), Max: hi} }

// Contains reports whether v lies in r. A NaN reading never satisfies a range.
func (r Range) Contains(v float64) bool {
	if math.IsNaN(v) {
		return false
	}
	if r.MinExclusive {
		if v <= r.Min {
			return false
		}
	} else if v < r.Min {
		return false
	}
	return v <= r.Max
}

// Condition is one range predicate of a crop rule.
type Condition struct {
	Metric Metric `json:"metric"`
	Range  Range  `json:"range"`
}

func (c Condition) Holds(s SoilSample) bool {
	v, ok := c.Metric.Value(s)
	return ok && c.Range.Contains(v)
}

// CropRule recommends Crop when every condition holds and, if FertilityIn is
// set, the overall fertility is one of the listed values.
type CropRule struct {
	Crop        string      `json:"crop"`
	Conditions  []Condition `json:"conditions"`
	FertilityIn []Fertility `json:"fertility_in,omitempty"`
}

func (r CropRule) Matches(s SoilSample, f FertilityAssessment) bool {
	for _, c := range r.Conditions {
		if !c.Holds(s) {
			return false
		}
	}
	if len(r.FertilityIn) == 0 {
		return len(r.Conditions) > 0
	}
	for _, want := range r.FertilityIn {
		if f.Overall == want {
			return true
		}
	}
	return false
}

// WithCondition replaces the condition on m, or appends one.
func (r CropRule) WithCondition(m Metric, rg Range) CropRule {
	out := r.clone()
	for i, c := range out.Conditions {
		if c.Metric == m {
			out.Conditions[i].Range = rg
			return out
		}
	}
	out.Conditions = append(out.Conditions, Condition{Metric: m, Range: rg})
	return out
}

func (r CropRule) clone() CropRule {
	r.Conditions = append([]Condition(nil), r.Conditions...)
	r.FertilityIn = append([]Fertility(nil), r.FertilityIn...)
	return r
}

func when(m Metric, rg Range) Condition { return Condition{Metric: m, Range: rg} }

// DefaultCropRules is the crop table in evaluation order.
func DefaultCropRules() []CropRule {
	return []CropRule{
		{Crop: "Rice", Conditions: []Condition{
			when(MetricRainfall, Above(100)),
			when(MetricPH, Between(5.5, 7.0)),
			when(MetricTemperature, Between(20, 35)),
		}},
		{Crop: "Wheat", Conditions: []Condition{
			when(MetricRainfall, Between(50, 150)),
			when(MetricPH, Between(6.0, 7.5)),
			when(MetricTemperature, Between(15, 25)),
			when(MetricNitrogen, AtLeast(60)),
		}},
		{Crop: "Maize", Conditions: []Condition{
			when(MetricPH, Between(5.5, 7.5)),
			when(MetricTemperature, Between(20, 30)),
			when(MetricNitrogen, AtLeast(50)),
		}},
		{Crop: "Cotton", Conditions: []Condition{
			when(MetricTemperature, Between(25, 35)),
			when(MetricRainfall, Between(60, 120)),
			when(MetricPH, Between(6.0, 8.0)),
		}},
		{Crop: "Sugarcane", Conditions: []Condition{
			when(MetricRainfall, Above(120)),
			when(MetricTemperature, AtLeast(25)),
			when(MetricNitrogen, AtLeast(80)),
			when(MetricPotassium, AtLeast(60)),
		}},
		{Crop: "Pulses (Lentils/Chickpeas)", Conditions: []Condition{
			when(MetricRainfall, Between(40, 100)),
			when(MetricPH, Between(6.0, 7.5)),
			when(MetricTemperature, Between(20, 30)),
		}},
		{Crop: "Vegetables (Tomato, Potato, Onion)",
			FertilityIn: []Fertility{FertilityGood, FertilityModerate}},
		{Crop: "Millets (Pearl/Finger)", Conditions: []Condition{
			when(MetricRainfall, Between(30, 80)),
			when(MetricTemperature, Between(25, 35)),
		}},
	}
}

// recommendCrops returns every matching crop in table order, or ConsultExpert.
func recommendCrops(cfg Config, s SoilSample, f FertilityAssessment) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, r := range cfg.Crops {
		if _, dup := seen[r.Crop]; dup || !r.Matches(s, f) {
			continue
		}
		seen[r.Crop] = struct{}{}
		out = append(out, r.Crop)
	}
	if len(out) == 0 {
		return []string{ConsultExpert}
	}
	return out
}
