package model

import "time"

type Profile struct {
	ID          string    `json:"id" gorm:"primaryKey"` // same as the token subject
	DisplayName string    `json:"display_name" gorm:"not null"`
	Email       string    `json:"email" gorm:"index"`
	Role        string    `json:"role" gorm:"not null;default:student;index"`
	GradeLevel  int       `json:"grade_level"`
	GuardianID  *string   `json:"guardian_id,omitempty" gorm:"index"`
	AvatarURL   string    `json:"avatar_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
