package models

import "time"

type Competition struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:120;not null"`
	Date      string    `json:"date" gorm:"size:10"` // YYYY-MM-DD
	Location  string    `json:"location" gorm:"size:120"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompetitionStudent links a student to a competition with per-participation
// event and payment metadata. Deleting either parent removes the row.
type CompetitionStudent struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	CompetitionID uint         `json:"competition_id" gorm:"uniqueIndex:idx_comp_student;not null"`
	Competition   *Competition `json:"-" gorm:"foreignKey:CompetitionID;constraint:OnDelete:CASCADE"`
	StudentID     uint         `json:"student_id" gorm:"uniqueIndex:idx_comp_student;not null"`
	Student       *Student     `json:"-" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	Events        EventList    `json:"events" gorm:"type:text"`
	Paid          bool         `json:"paid"`
	CoachFeePaid  bool         `json:"coach_fee_paid"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
