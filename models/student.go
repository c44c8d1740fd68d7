package models

import "time"

type Student struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:60;not null"`
	Birthdate   string    `json:"birthdate" gorm:"size:10"` // YYYY-MM-DD
	Phone       string    `json:"phone,omitempty" gorm:"size:20"`
	ParentPhone string    `json:"parent_phone,omitempty" gorm:"size:20"`
	ClassIDs    IDList    `json:"class_ids" gorm:"type:text"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
