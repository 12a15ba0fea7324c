package advisory

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrInvalidThresholds is returned for tuning tables that cannot classify consistently.
var ErrInvalidThresholds = errors.New("invalid advisory thresholds")

// Nutrient names an indicator with a Low/High band.
type Nutrient string

const (
	NutrientPH         Nutrient = "ph"
	NutrientNitrogen   Nutrient = "nitrogen"
	NutrientPhosphorus Nutrient = "phosphorus"
	NutrientPotassium  Nutrient = "potassium"
)

// Nutrients lists every indicator the fertility stage classifies, in report order.
var Nutrients = []Nutrient{NutrientPH, NutrientNitrogen, NutrientPhosphorus, NutrientPotassium}

// Default bands. Values strictly below Low are Low, strictly above High are High.
const (
	DefaultPHLow          = 6.0
	DefaultPHHigh         = 7.5
	DefaultNitrogenLow    = 40.0
	DefaultNitrogenHigh   = 120.0
	DefaultPhosphorusLow  = 40.0
	DefaultPhosphorusHigh = 80.0
	DefaultPotassiumLow   = 40.0
	DefaultPotassiumHigh  = 80.0
)

// Default overall-fertility cut-offs on the count of non-optimal indicators.
const (
	DefaultGoodMaxOff     = 0
	DefaultModerateMaxOff = 1
)

// Band is the optimal interval of one indicator.
type Band struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Classify maps v into Low/Optimal/High. NaN counts as Low.
func (b Band) Classify(v float64) Tag {
	switch {
	case math.IsNaN(v) || v < b.Low:
		return TagLow
	case v > b.High:
		return TagHigh
	default:
		return TagOptimal
	}
}

// Thresholds maps each nutrient to its band.
type Thresholds map[Nutrient]Band

// OverallBands converts the count of non-optimal indicators into a Fertility.
type OverallBands struct {
	GoodMaxOff     int `json:"good_max_off"`
	ModerateMaxOff int `json:"moderate_max_off"`
}

func (o OverallBands) Classify(off int) Fertility {
	switch {
	case off <= o.GoodMaxOff:
		return FertilityGood
	case off <= o.ModerateMaxOff:
		return FertilityModerate
	default:
		return FertilityPoor
	}
}

// IrrigationBands drives the 0–5 irrigation score. Each rainfall step reached
// adds one point; humidity below DryHumidityPct removes one and humidity above
// HumidHumidityPct adds one.
type IrrigationBands struct {
	RainfallStepsMM  []float64 `json:"rainfall_steps_mm"`
	DryHumidityPct   float64   `json:"dry_humidity_pct"`
	HumidHumidityPct float64   `json:"humid_humidity_pct"`
}

// DefaultRainfallStepsMM are the rainfall levels for scores 1 through 5.
var DefaultRainfallStepsMM = []float64{25, 50, 100, 150, 200}

const (
	DefaultDryHumidityPct   = 30.0
	DefaultHumidHumidityPct = 85.0
)

// Config is the complete tuning data of an Engine.
type Config struct {
	Thresholds   Thresholds        `json:"thresholds"`
	Overall      OverallBands      `json:"overall"`
	Irrigation   IrrigationBands   `json:"irrigation"`
	Crops        []CropRule        `json:"-"`
	Improvements []ImprovementRule `json:"-"`
}

// DefaultConfig returns the bands and rule tables the soil page ships with.
func DefaultConfig() Config {
	return Config{
		Thresholds: Thresholds{
			NutrientPH:         {Low: DefaultPHLow, High: DefaultPHHigh},
			NutrientNitrogen:   {Low: DefaultNitrogenLow, High: DefaultNitrogenHigh},
			NutrientPhosphorus: {Low: DefaultPhosphorusLow, High: DefaultPhosphorusHigh},
			NutrientPotassium:  {Low: DefaultPotassiumLow, High: DefaultPotassiumHigh},
		},
		Overall: OverallBands{GoodMaxOff: DefaultGoodMaxOff, ModerateMaxOff: DefaultModerateMaxOff},
		Irrigation: IrrigationBands{
			RainfallStepsMM:  append([]float64(nil), DefaultRainfallStepsMM...),
			DryHumidityPct:   DefaultDryHumidityPct,
			HumidHumidityPct: DefaultHumidHumidityPct,
		},
		Crops:        DefaultCropRules(),
		Improvements: DefaultImprovementRules(),
	}
}

// Validate reports the first inconsistency in c.
func (c Config) Validate() error {
	for _, n := range Nutrients {
		b, ok := c.Thresholds[n]
		if !ok {
			return fmt.Errorf("%w: missing band for %s", ErrInvalidThresholds, n)
		}
		if math.IsNaN(b.Low) || math.IsNaN(b.High) || b.Low > b.High {
			return fmt.Errorf("%w: %s low %.2f > high %.2f", ErrInvalidThresholds, n, b.Low, b.High)
		}
	}
	if c.Overall.GoodMaxOff < 0 || c.Overall.ModerateMaxOff < c.Overall.GoodMaxOff {
		return fmt.Errorf("%w: overall bands good<=%d moderate<=%d", ErrInvalidThresholds,
			c.Overall.GoodMaxOff, c.Overall.ModerateMaxOff)
	}
	steps := c.Irrigation.RainfallStepsMM
	if len(steps) != MaxIrrigationScore {
		return fmt.Errorf("%w: need %d rainfall steps, got %d", ErrInvalidThresholds, MaxIrrigationScore, len(steps))
	}
	if !sort.Float64sAreSorted(steps) {
		return fmt.Errorf("%w: rainfall steps must ascend", ErrInvalidThresholds)
	}
	if c.Irrigation.DryHumidityPct > c.Irrigation.HumidHumidityPct {
		return fmt.Errorf("%w: dry humidity above humid humidity", ErrInvalidThresholds)
	}
	seen := map[string]struct{}{}
	for _, r := range c.Crops {
		if r.Crop == "" {
			return fmt.Errorf("%w: crop rule without a name", ErrInvalidThresholds)
		}
		if _, dup := seen[r.Crop]; dup {
			return fmt.Errorf("%w: duplicate crop rule %q", ErrInvalidThresholds, r.Crop)
		}
		seen[r.Crop] = struct{}{}
	}
	return nil
}

// Clone deep-copies c so an Engine never shares tables with its caller.
func (c Config) Clone() Config {
	out := c
	out.Thresholds = make(Thresholds, len(c.Thresholds))
	for k, v := range c.Thresholds {
		out.Thresholds[k] = v
	}
	out.Irrigation.RainfallStepsMM = append([]float64(nil), c.Irrigation.RainfallStepsMM...)
	out.Crops = make([]CropRule, len(c.Crops))
	for i, r := range c.Crops {
		out.Crops[i] = r.clone()
	}
	out.Improvements = append([]ImprovementRule(nil), c.Improvements...)
	return out
}
