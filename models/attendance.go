package models

import "time"

// One student checked into one class on one calendar day. No uniqueness
// constraint on (student_id, class_id, date): the bulk check flow keeps the
// invariant by deleting the day's rows before reinserting.
type Attendance struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"student_id" gorm:"index;not null"`
	Student   *Student  `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	ClassID   uint      `json:"class_id" gorm:"index;not null"`
	Date      string    `json:"date" gorm:"size:10;not null;index"` // YYYY-MM-DD
	CheckedAt time.Time `json:"checked_at"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
}
