package advisory

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet names read from a tuning workbook.
const (
	SheetThresholds = "Thresholds"
	SheetCrops      = "Crops"
)

// Sources lists optional tuning tables. Empty paths are skipped.
type Sources struct {
	ThresholdsCSV string
	CropRulesCSV  string
	WorkbookXLSX  string
	Overall       *OverallBands
}

// Empty reports whether no table was configured.
func (s Sources) Empty() bool {
	return s.ThresholdsCSV == "" && s.CropRulesCSV == "" && s.WorkbookXLSX == "" && s.Overall == nil
}

// LoadFromFiles starts from DefaultConfig, applies the configured tables in
// order (thresholds CSV, crop CSV, workbook, overall bands) and validates the
// result.
func LoadFromFiles(src Sources) (*Engine, error) {
	cfg := DefaultConfig()

	if src.ThresholdsCSV != "" {
		head, rows, err := readCSV(src.ThresholdsCSV)
		if err != nil {
			return nil, err
		}
		if err := applyThresholdRows(&cfg, head, rows); err != nil {
			return nil, fmt.Errorf("%s: %w", src.ThresholdsCSV, err)
		}
	}
	if src.CropRulesCSV != "" {
		head, rows, err := readCSV(src.CropRulesCSV)
		if err != nil {
			return nil, err
		}
		if err := applyCropRows(&cfg, head, rows); err != nil {
			return nil, fmt.Errorf("%s: %w", src.CropRulesCSV, err)
		}
	}
	if src.WorkbookXLSX != "" {
		if err := applyWorkbook(&cfg, src.WorkbookXLSX); err != nil {
			return nil, fmt.Errorf("%s: %w", src.WorkbookXLSX, err)
		}
	}
	if src.Overall != nil {
		cfg.Overall = *src.Overall
	}
	return New(cfg)
}

func readCSV(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("%s: read header: %w", path, err)
	}
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, nil, fmt.Errorf("%s: %w", path, err)
		}
		rows = append(rows, rec)
	}
	return head, rows, nil
}

func applyWorkbook(cfg *Config, path string) error {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer x.Close()

	applied := false
	for _, sheet := range x.GetSheetList() {
		var apply func(*Config, []string, [][]string) error
		switch norm(sheet) {
		case norm(SheetThresholds):
			apply = applyThresholdRows
		case norm(SheetCrops):
			apply = applyCropRows
		default:
			continue
		}
		rows, err := x.GetRows(sheet)
		if err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
		if len(rows) == 0 {
			continue
		}
		if err := apply(cfg, rows[0], rows[1:]); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
		applied = true
	}
	if !applied {
		return fmt.Errorf("no %s or %s sheet", SheetThresholds, SheetCrops)
	}
	return nil
}

// norm folds header spelling: case, spaces, dashes, underscores and a BOM.
func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

type header map[string]int

func newHeader(head []string) header {
	h := header{}
	for i, col := range head {
		h[norm(col)] = i
	}
	return h
}

// findAny returns the column of the first alias present, or -1.
func (h header) findAny(keys ...string) int {
	for _, k := range keys {
		if idx, ok := h[norm(k)]; ok {
			return idx
		}
	}
	return -1
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

func parseNutrient(s string) (Nutrient, error) {
	switch norm(s) {
	case "ph":
		return NutrientPH, nil
	case "nitrogen", "n":
		return NutrientNitrogen, nil
	case "phosphorus", "p":
		return NutrientPhosphorus, nil
	case "potassium", "k":
		return NutrientPotassium, nil
	}
	return "", fmt.Errorf("unknown nutrient %q", s)
}

func applyThresholdRows(cfg *Config, head []string, rows [][]string) error {
	h := newHeader(head)
	cName := h.findAny("nutrient", "indicator", "name")
	cLow := h.findAny("low", "low_threshold", "min")
	cHigh := h.findAny("high", "high_threshold", "max")
	if cName == -1 || cLow == -1 || cHigh == -1 {
		return fmt.Errorf("%w: thresholds table needs nutrient, low, high columns; found %v", ErrInvalidThresholds, head)
	}

	for i, rec := range rows {
		name := cell(rec, cName)
		if name == "" {
			continue
		}
		n, err := parseNutrient(name)
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		low, err := strconv.ParseFloat(cell(rec, cLow), 64)
		if err != nil {
			return fmt.Errorf("row %d: low: %w", i+2, err)
		}
		high, err := strconv.ParseFloat(cell(rec, cHigh), 64)
		if err != nil {
			return fmt.Errorf("row %d: high: %w", i+2, err)
		}
		if low > high {
			return fmt.Errorf("%w: row %d: %s low %.2f > high %.2f", ErrInvalidThresholds, i+2, n, low, high)
		}
		cfg.Thresholds[n] = Band{Low: low, High: high}
	}
	return nil
}

// applyCropRows reads crop,metric,min,max[,min_exclusive] rows. A row replaces
// the crop's condition on that metric; unknown crops are appended to the table.
func applyCropRows(cfg *Config, head []string, rows [][]string) error {
	h := newHeader(head)
	cCrop := h.findAny("crop", "name")
	cMetric := h.findAny("metric", "parameter", "field")
	cMin := h.findAny("min", "lower")
	cMax := h.findAny("max", "upper")
	cExcl := h.findAny("min_exclusive", "exclusive")
	if cCrop == -1 || cMetric == -1 || (cMin == -1 && cMax == -1) {
		return fmt.Errorf("%w: crop table needs crop, metric and min/max columns; found %v", ErrInvalidThresholds, head)
	}

	index := map[string]int{}
	for i, r := range cfg.Crops {
		index[norm(r.Crop)] = i
	}
	for i, rec := range rows {
		crop := cell(rec, cCrop)
		if crop == "" {
			continue
		}
		m, err := ParseMetric(cell(rec, cMetric))
		if err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
		rg := Range{Min: math.Inf(-1), Max: math.Inf(1)}
		if v := cell(rec, cMin); v != "" {
			if rg.Min, err = strconv.ParseFloat(v, 64); err != nil {
				return fmt.Errorf("row %d: min: %w", i+2, err)
			}
		}
		if v := cell(rec, cMax); v != "" {
			if rg.Max, err = strconv.ParseFloat(v, 64); err != nil {
				return fmt.Errorf("row %d: max: %w", i+2, err)
			}
		}
		if v := cell(rec, cExcl); v != "" {
			if rg.MinExclusive, err = strconv.ParseBool(v); err != nil {
				return fmt.Errorf("row %d: min_exclusive: %w", i+2, err)
			}
		}
		if rg.Min > rg.Max {
			return fmt.Errorf("%w: row %d: %s %s min > max", ErrInvalidThresholds, i+2, crop, m)
		}

		if idx, ok := index[norm(crop)]; ok {
			cfg.Crops[idx] = cfg.Crops[idx].WithCondition(m, rg)
			continue
		}
		index[norm(crop)] = len(cfg.Crops)
		cfg.Crops = append(cfg.Crops, CropRule{Crop: crop}.WithCondition(m, rg))
	}
	return nil
}
