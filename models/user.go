package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:60;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         string    `json:"role" gorm:"size:20;not null;default:user"` // "admin" | "user"
	Email        string    `json:"email,omitempty" gorm:"size:120"`
	KakaoID      string    `json:"kakao_id,omitempty" gorm:"size:40;index"`
	KakaoConsent bool      `json:"kakao_message_consent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
