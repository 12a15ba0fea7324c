package entities

import (
	"time"

	"agrivision/pkg/advisory"
)

// Analysis modes as recorded in the activity history.
const (
	ModeQuick    = "quick"
	ModeDetailed = "detailed"
)

type SoilAnalysis struct {
	AnalysisID uint                    `gorm:"primaryKey" json:"analysis_id"`
	UserID     string                  `gorm:"index" json:"user_id"`
	FieldID    *uint                   `gorm:"index" json:"field_id,omitempty"`
	Mode       string                  `json:"mode"` // quick|detailed
	Sample     advisory.SoilSample     `gorm:"serializer:json" json:"soil_data"`
	Result     advisory.AdvisoryResult `gorm:"serializer:json" json:"analysis"`
	Narrative  string                  `json:"narrative,omitempty"`
	Note       string                  `json:"note,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
}
