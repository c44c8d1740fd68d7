package models

import "time"

type Class struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:60;not null"`
	Schedule     string    `json:"schedule" gorm:"size:120"` // e.g. "Mon/Wed 17:00"
	Duration     int       `json:"duration"`                 // minutes
	Instructor   string    `json:"instructor,omitempty" gorm:"size:60"`
	DisplayOrder int       `json:"display_order" gorm:"not null;default:0"`
	UserID       uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
