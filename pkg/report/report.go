// Package report renders a stored soil analysis as a downloadable document.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"agrivision/entities"
	"agrivision/pkg/advisory"
)

var ErrUnsupportedFormat = errors.New("unsupported report format")

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts a format name; the empty string means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatCSV, FormatXLSX, FormatHTML, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/json"
}

// Document is one exported report. The JSON form keeps the
// {soilData, analysis, generatedAt} layout of the downloaded report files.
type Document struct {
	ReportID    string                  `json:"reportId"`
	SoilData    advisory.SoilSample     `json:"soilData"`
	Analysis    advisory.AdvisoryResult `json:"analysis"`
	GeneratedAt time.Time               `json:"generatedAt"`
	Field       string                  `json:"field,omitempty"`
	Narrative   string                  `json:"narrative,omitempty"`
}

func NewDocument(a *entities.SoilAnalysis, fieldName string, now time.Time) Document {
	return Document{
		ReportID:    uuid.NewString(),
		SoilData:    a.Sample,
		Analysis:    a.Result,
		GeneratedAt: now.UTC(),
		Field:       fieldName,
		Narrative:   a.Narrative,
	}
}

// Filename is the suggested download name, dated by generation day.
func Filename(d Document, f Format) string {
	return fmt.Sprintf("soil-analysis-report-%s.%s", d.GeneratedAt.Format("2006-01-02"), f)
}

// Render writes d to w in format f.
func Render(w io.Writer, d Document, f Format) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(d)
	case FormatCSV:
		return renderCSV(w, d)
	case FormatXLSX:
		return renderXLSX(w, d)
	case FormatHTML:
		return renderHTML(w, d)
	case FormatPDF:
		return renderPDF(w, d)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
}

// row is one line of the tabular renderings (CSV, XLSX, PDF).
type row struct {
	Section, Item, Value string
}

var tableHeader = []string{"Section", "Item", "Value"}

func rows(d Document) []row {
	s, a := d.SoilData, d.Analysis
	out := []row{
		{"Soil data", "Nitrogen", num(s.Nitrogen)},
		{"Soil data", "Phosphorus", num(s.Phosphorus)},
		{"Soil data", "Potassium", num(s.Potassium)},
		{"Soil data", "pH", num(s.PH)},
		{"Soil data", "Temperature (°C)", num(s.TemperatureC)},
		{"Soil data", "Humidity (%)", num(s.HumidityPct)},
		{"Soil data", "Rainfall (mm)", num(s.RainfallMM)},
		{"Fertility", "pH", string(a.Fertility.PH)},
		{"Fertility", "Nitrogen", string(a.Fertility.Nitrogen)},
		{"Fertility", "Phosphorus", string(a.Fertility.Phosphorus)},
		{"Fertility", "Potassium", string(a.Fertility.Potassium)},
		{"Fertility", "Overall", string(a.Fertility.Overall)},
		{"Irrigation", "Score", fmt.Sprintf("%d/%d", a.Irrigation.Score, advisory.MaxIrrigationScore)},
		{"Irrigation", "Advice", a.Irrigation.Description},
	}
	if d.Field != "" {
		out = append([]row{{"Report", "Field", d.Field}}, out...)
	}
	for i, c := range a.RecommendedCrops {
		out = append(out, row{"Recommended crops", fmt.Sprint(i + 1), c})
	}
	for i, sug := range a.ImprovementSuggestions {
		out = append(out, row{"Improvements", fmt.Sprint(i + 1), sug})
	}
	return out
}

func num(v float64) string { return fmt.Sprintf("%.2f", v) }
