package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a write-only submission from the console: it is created and
// never read back through the API.
type Feedback struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid"`
	UserEmail   string    `json:"user_email" gorm:"size:255"`
	Type        string    `json:"type" gorm:"size:64"`
	Description string    `json:"description" gorm:"type:text"`
	Rating      int       `json:"rating"`
	Context     string    `json:"context" gorm:"size:255"`
	CreatedAt   time.Time `json:"created_at"`
}
