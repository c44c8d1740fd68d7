package models

import "time"

// Append-only audit trail. Writes are fire-and-forget.
type ActionLog struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:60;not null;index"`
	Action    string    `json:"action" gorm:"size:60;not null"`
	Target    string    `json:"target,omitempty" gorm:"size:120"`
	Details   string    `json:"details,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
}
