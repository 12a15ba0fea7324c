package entities

import "time"

// Activity types shown in the recent-activity list.
const (
	ActivityQuickAnalysis    = "Quick Analysis"
	ActivityDetailedAnalysis = "Detailed Analysis"
	ActivityFieldSaved       = "Field Saved"
)

type Activity struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      string    `gorm:"index" json:"user_id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `gorm:"index" json:"timestamp"`
}
