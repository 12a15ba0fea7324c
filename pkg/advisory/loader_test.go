package advisory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadFromFiles_Empty(t *testing.T) {
	e, err := LoadFromFiles(Sources{})
	require.NoError(t, err)
	assert.Equal(t, RunAdvisory(formDefaults()), e.Run(formDefaults()))
	assert.True(t, Sources{}.Empty())
}

func TestLoadFromFiles_ThresholdsCSV(t *testing.T) {
	p := writeFile(t, "thresholds.csv", "\uFEFFNutrient,Low Threshold,High Threshold\nnitrogen,60,120\n,,\nK,20,60\n")
	e, err := LoadFromFiles(Sources{ThresholdsCSV: p})
	require.NoError(t, err)

	f := e.ClassifyFertility(formDefaults())
	assert.Equal(t, TagLow, f.Nitrogen)
	assert.Equal(t, TagOptimal, f.Potassium)
	assert.Equal(t, Band{Low: 20, High: 60}, e.Config().Thresholds[NutrientPotassium])
	assert.Equal(t, Band{Low: DefaultPHLow, High: DefaultPHHigh}, e.Config().Thresholds[NutrientPH])
}

func TestLoadFromFiles_ThresholdsCSVErrors(t *testing.T) {
	cases := map[string]string{
		"low above high": "nutrient,low,high\nphosphorus,90,40\n",
		"missing column": "nutrient,low\nphosphorus,40\n",
		"bad number":     "nutrient,low,high\nph,six,7.5\n",
		"unknown":        "nutrient,low,high\nsulfur,1,2\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFromFiles(Sources{ThresholdsCSV: writeFile(t, "t.csv", body)})
			assert.Error(t, err)
		})
	}

	_, err := LoadFromFiles(Sources{ThresholdsCSV: writeFile(t, "t.csv", "nutrient,low,high\nphosphorus,90,40\n")})
	assert.ErrorIs(t, err, ErrInvalidThresholds)

	_, err = LoadFromFiles(Sources{ThresholdsCSV: filepath.Join(t.TempDir(), "missing.csv")})
	assert.Error(t, err)
}

func TestLoadFromFiles_CropRulesCSV(t *testing.T) {
	p := writeFile(t, "crops.csv", "crop,metric,min,max,min_exclusive\nRice,rainfall,80,,true\nQuinoa,temperature,5,20,\nQuinoa,ph,6,8.5,\n")
	e, err := LoadFromFiles(Sources{CropRulesCSV: p})
	require.NoError(t, err)

	s := SoilSample{Nitrogen: 50, Phosphorus: 50, Potassium: 50, PH: 6.5, TemperatureC: 18, HumidityPct: 50, RainfallMM: 90}
	got := e.RecommendCrops(s, e.ClassifyFertility(s))
	assert.Contains(t, got, "Quinoa")
	assert.Equal(t, "Quinoa", got[len(got)-1])
	assert.NotContains(t, got, "Rice", "rice still needs 20–35 °C")

	s.TemperatureC = 22
	assert.Contains(t, e.RecommendCrops(s, e.ClassifyFertility(s)), "Rice")
	assert.NotContains(t, RecommendCrops(s, ClassifyFertility(s)), "Rice")
}

func TestLoadFromFiles_CropRulesCSVErrors(t *testing.T) {
	cases := map[string]string{
		"bad min_exclusive": "crop,metric,min,max,min_exclusive\nRice,rainfall,80,,sometimes\n",
		"bad min":           "crop,metric,min,max\nRice,rainfall,eighty,\n",
		"min above max":     "crop,metric,min,max\nRice,ph,7,5\n",
		"unknown metric":    "crop,metric,min,max\nRice,salinity,1,2\n",
		"no range columns":  "crop,metric\nRice,ph\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFromFiles(Sources{CropRulesCSV: writeFile(t, "c.csv", body)})
			assert.Error(t, err)
		})
	}

	_, err := LoadFromFiles(Sources{CropRulesCSV: writeFile(t, "c.csv", "crop,metric,min,max,min_exclusive\nRice,rainfall,80,,sometimes\n")})
	assert.ErrorContains(t, err, "row 2: min_exclusive")
}

func TestLoadFromFiles_Workbook(t *testing.T) {
	x := excelize.NewFile()
	defer x.Close()
	_, err := x.NewSheet(SheetThresholds)
	require.NoError(t, err)
	require.NoError(t, x.SetSheetRow(SheetThresholds, "A1", &[]interface{}{"nutrient", "low", "high"}))
	require.NoError(t, x.SetSheetRow(SheetThresholds, "A2", &[]interface{}{"potassium", 55, 90}))
	_, err = x.NewSheet(SheetCrops)
	require.NoError(t, err)
	require.NoError(t, x.SetSheetRow(SheetCrops, "A1", &[]interface{}{"crop", "metric", "min", "max"}))
	require.NoError(t, x.SetSheetRow(SheetCrops, "A2", &[]interface{}{"Millets (Pearl/Finger)", "rainfall", 10, 120}))

	p := filepath.Join(t.TempDir(), "tuning.xlsx")
	require.NoError(t, x.SaveAs(p))

	e, err := LoadFromFiles(Sources{WorkbookXLSX: p})
	require.NoError(t, err)
	assert.Equal(t, TagLow, e.ClassifyFertility(formDefaults()).Potassium)

	s := SoilSample{PH: 6.5, TemperatureC: 30, RainfallMM: 110, HumidityPct: 50}
	assert.Contains(t, e.RecommendCrops(s, e.ClassifyFertility(s)), "Millets (Pearl/Finger)")
}

func TestLoadFromFiles_WorkbookWithoutTables(t *testing.T) {
	x := excelize.NewFile()
	defer x.Close()
	p := filepath.Join(t.TempDir(), "blank.xlsx")
	require.NoError(t, x.SaveAs(p))

	_, err := LoadFromFiles(Sources{WorkbookXLSX: p})
	assert.Error(t, err)
}

func TestLoadFromFiles_OverallBands(t *testing.T) {
	e, err := LoadFromFiles(Sources{Overall: &OverallBands{GoodMaxOff: 1, ModerateMaxOff: 3}})
	require.NoError(t, err)

	s := formDefaults()
	s.Nitrogen, s.Phosphorus = 5, 5
	assert.Equal(t, FertilityModerate, e.ClassifyFertility(s).Overall)

	_, err = LoadFromFiles(Sources{Overall: &OverallBands{GoodMaxOff: -1, ModerateMaxOff: 1}})
	assert.ErrorIs(t, err, ErrInvalidThresholds)
}
