package models

import (
	"time"

	"github.com/google/uuid"
)

// PredictionRecord is one persisted prediction. Rows are append-only from the
// prediction path; only the history endpoint deletes them.
type PredictionRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"type:text;index;not null" json:"user_id"`
	CGPA      string    `gorm:"type:text" json:"cgpa"`
	Degree    string    `gorm:"type:text" json:"degree"`
	Major     string    `gorm:"type:text" json:"major"`
	Skills    string    `gorm:"type:text" json:"skills"`
	Role      string    `gorm:"type:text" json:"role"`
	TopJobs   string    `gorm:"type:text" json:"top_jobs"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"date"`
}

func (PredictionRecord) TableName() string {
	return "predictions"
}
